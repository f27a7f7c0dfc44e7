// Package persistence 按配置选择仓储实现，给各服务进程做统一装配。
package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"Strategus/internal/shared/infrastructure/db"
	sharedmongo "Strategus/internal/shared/infrastructure/mongo"
	"Strategus/internal/shared/serverconfig"
	"Strategus/internal/strategus/app"
	"Strategus/internal/strategus/infra/persistence/memory"
	"Strategus/internal/strategus/infra/persistence/mongodb"
	"Strategus/internal/strategus/infra/persistence/mysql"
)

const (
	StorageMySQL   = "mysql"
	StorageMongoDB = "mongodb"
	StorageMemory  = "memory"
)

// Repos 聚合应用层需要的全部仓储端口。
type Repos struct {
	Parties     app.PartyRepo
	Settlements app.SettlementRepo
	Battles     app.BattleRepo
	Offers      app.OfferRepo
	Terrains    app.TerrainRepo
}

// Open 按 storage 打开仓储，返回的 cleanup 在进程退出前调用。
//   - mysql:   游戏状态走 gorm，地形走 mongodb（地图编辑工具直接写 mongo）
//   - mongodb: 游戏状态驻内存，地形走 mongodb
//   - memory:  全内存，地形/据点/队伍从 map_data 种子文件装载
func Open(storage string, cfg serverconfig.Config, l *zap.Logger) (*Repos, func(), error) {
	switch storage {
	case StorageMySQL:
		gdb, err := db.Open(cfg.MySQL)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}

		mongoClient, err := sharedmongo.Open(cfg.MongoDB, l)
		if err != nil {
			return nil, nil, fmt.Errorf("open mongodb: %w", err)
		}
		cleanup := func() {
			_ = mongoClient.Disconnect(context.Background())
		}

		return &Repos{
			Parties:     mysql.NewPartyRepo(gdb),
			Settlements: mysql.NewSettlementRepo(gdb),
			Battles:     mysql.NewBattleRepo(gdb),
			Offers:      mysql.NewOfferRepo(gdb),
			Terrains:    mongodb.NewTerrainRepository(mongoClient.Database(cfg.MongoDB.Database)),
		}, cleanup, nil

	case StorageMongoDB:
		mongoClient, err := sharedmongo.Open(cfg.MongoDB, l)
		if err != nil {
			return nil, nil, fmt.Errorf("open mongodb: %w", err)
		}
		cleanup := func() {
			_ = mongoClient.Disconnect(context.Background())
		}

		store := memory.NewStore()
		if cfg.Logic.MapData != "" {
			if err := store.LoadSeed(cfg.Logic.MapData); err != nil {
				cleanup()
				return nil, nil, err
			}
		}

		return &Repos{
			Parties:     store.PartyRepo(),
			Settlements: store.SettlementRepo(),
			Battles:     store.BattleRepo(),
			Offers:      store.OfferRepo(),
			Terrains:    mongodb.NewTerrainRepository(mongoClient.Database(cfg.MongoDB.Database)),
		}, cleanup, nil

	case StorageMemory, "":
		store := memory.NewStore()
		if cfg.Logic.MapData != "" {
			if err := store.LoadSeed(cfg.Logic.MapData); err != nil {
				return nil, nil, err
			}
		}

		return &Repos{
			Parties:     store.PartyRepo(),
			Settlements: store.SettlementRepo(),
			Battles:     store.BattleRepo(),
			Offers:      store.OfferRepo(),
			Terrains:    store.TerrainRepo(),
		}, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage %q", storage)
	}
}
