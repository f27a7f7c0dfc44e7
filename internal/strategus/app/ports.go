package app

import (
	"context"
	"time"

	"github.com/paulmach/orb"

	"Strategus/internal/strategus/domain"
)

// 仓储端口约定：返回的实体图已装配好本次调用需要的关联
// （指令的目标队伍/据点/战局、战局的参战方与申请、队伍的坐骑物品），
// 核心只做内存变更，由每个 tick 末尾的一次 Save 落库。

type PartyRepo interface {
	Get(ctx context.Context, id int64) (*domain.Party, error)
	// ListWithOrders 返回所有带指令的队伍（行军 tick 的批量装载）。
	ListWithOrders(ctx context.Context) ([]*domain.Party, error)
	ListByStatus(ctx context.Context, status domain.PartyStatus) ([]*domain.Party, error)
	ListVisible(ctx context.Context, center orb.Point, radius float64) ([]*domain.Party, error)
	Save(ctx context.Context, parties ...*domain.Party) error
}

type SettlementRepo interface {
	Get(ctx context.Context, id int64) (*domain.Settlement, error)
	ListVisible(ctx context.Context, center orb.Point, radius float64) ([]*domain.Settlement, error)
}

type BattleRepo interface {
	Get(ctx context.Context, id int64) (*domain.Battle, error)
	GetByMercenaryApplication(ctx context.Context, applicationID int64) (*domain.Battle, error)
	GetByFighterApplication(ctx context.Context, applicationID int64) (*domain.Battle, error)
	// ListDuePhaseChange 返回到点需要推进阶段的战局：
	// Preparation 超过备战时长、Hiring 超过备战+招募时长、Scheduled 已到开战时刻。
	ListDuePhaseChange(ctx context.Context, now time.Time, prep, hiring time.Duration) ([]*domain.Battle, error)
	ListVisible(ctx context.Context, center orb.Point, radius float64) ([]*domain.Battle, error)
	// HasActiveSettlementBattle 该据点是否已有未结束的战局。
	HasActiveSettlementBattle(ctx context.Context, settlementID int64) (bool, error)
	// DeleteIntentFighterApplicationsOfParty 删除队伍所有 Intent 状态的参战申请（重下指令时清理草稿）。
	DeleteIntentFighterApplicationsOfParty(ctx context.Context, partyID int64) error
	Create(ctx context.Context, battle *domain.Battle) error
	Save(ctx context.Context, battles ...*domain.Battle) error
}

type TerrainRepo interface {
	ListAll(ctx context.Context) ([]domain.Terrain, error)
}

type OfferRepo interface {
	Get(ctx context.Context, id int64) (*domain.PartyTransferOffer, error)
	// FindByParties 返回 partyID 发给 targetPartyID 的报价；没有返回 domain.ErrOfferNotFound。
	FindByParties(ctx context.Context, partyID, targetPartyID int64) (*domain.PartyTransferOffer, error)
	// DeleteIntentOfParty 删除队伍所有 Intent 状态的报价（重下指令时清理草稿）。
	DeleteIntentOfParty(ctx context.Context, partyID int64) error
	Create(ctx context.Context, offer *domain.PartyTransferOffer) error
	Save(ctx context.Context, offer *domain.PartyTransferOffer) error
	Delete(ctx context.Context, offer *domain.PartyTransferOffer) error
}

// ActivityLog 行为留痕（外部协作方，失败不阻断主流程）。
type ActivityLog interface {
	BattleCreated(ctx context.Context, battle *domain.Battle, attackerPartyID int64)
	ApplicationResponded(ctx context.Context, battleID, applicationID, responderPartyID int64, accepted bool)
}

// Notifier 给玩家推送通知（外部协作方）。
type Notifier interface {
	ApplicationResponded(ctx context.Context, userID, battleID int64, accepted bool)
}

// GameServerLauncher Scheduled -> Live 时拉起战斗实例。
type GameServerLauncher interface {
	Launch(ctx context.Context, battle *domain.Battle) error
}

// NextID 生成新实体主键（雪花 id）。
type NextID func() int64
