package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"

	"Strategus/internal/strategus/domain"
	"Strategus/internal/strategus/infra/persistence/model"
)

// 种子文件格式：地形沿用 mongodb 的文档结构，据点/队伍只带启动需要的字段。
type seedFile struct {
	Terrains    []model.TerrainDoc `json:"terrains"`
	Settlements []seedSettlement   `json:"settlements"`
	Parties     []seedParty        `json:"parties"`
}

type seedSettlement struct {
	Id           int64      `json:"id"`
	Name         string     `json:"name"`
	Region       int8       `json:"region"`
	Position     [2]float64 `json:"position"`
	Troops       float64    `json:"troops"`
	OwnerPartyId int64      `json:"ownerPartyId"`
}

type seedParty struct {
	Id       int64                       `json:"id"`
	UserId   int64                       `json:"userId"`
	Name     string                      `json:"name"`
	Region   int8                        `json:"region"`
	Gold     int                         `json:"gold"`
	Troops   float64                     `json:"troops"`
	Position [2]float64                  `json:"position"`
	Windows  domain.VulnerabilityWindows `json:"windows"`
}

// LoadSeed 从地图数据文件初始化内存仓储。
func (s *Store) LoadSeed(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read map data: %w", err)
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse map data: %w", err)
	}

	terrains := make([]domain.Terrain, 0, len(seed.Terrains))
	for _, doc := range seed.Terrains {
		terrains = append(terrains, model.TerrainDocToDomain(doc))
	}
	s.SetTerrains(terrains)

	for _, row := range seed.Settlements {
		s.AddSettlement(&domain.Settlement{
			ID:           row.Id,
			Name:         row.Name,
			Region:       domain.Region(row.Region),
			Position:     orb.Point{row.Position[0], row.Position[1]},
			Troops:       row.Troops,
			OwnerPartyID: row.OwnerPartyId,
		})
	}
	for _, row := range seed.Parties {
		s.AddParty(&domain.Party{
			ID:                   row.Id,
			UserID:               row.UserId,
			Name:                 row.Name,
			Region:               domain.Region(row.Region),
			Gold:                 row.Gold,
			Troops:               row.Troops,
			Position:             orb.Point{row.Position[0], row.Position[1]},
			Status:               domain.PartyIdle,
			VulnerabilityWindows: row.Windows,
		})
	}
	return nil
}
