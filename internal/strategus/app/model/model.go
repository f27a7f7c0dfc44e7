package model

import (
	"github.com/paulmach/orb"

	"Strategus/internal/strategus/domain"
)

// UpdatePartyOrdersReq 整体替换某支队伍的指令队列。
type UpdatePartyOrdersReq struct {
	PartyID int64            `json:"-"`
	Orders  []PartyOrderItem `json:"orders"`
}

// PartyOrderItem 是一条待下发的指令。
type PartyOrderItem struct {
	Type                 domain.PartyOrderType `json:"type"`
	Waypoints            []orb.Point           `json:"waypoints"`
	TargetedPartyID      int64                 `json:"targetedPartyId"`
	TargetedSettlementID int64                 `json:"targetedSettlementId"`
	TargetedBattleID     int64                 `json:"targetedBattleId"`
	BattleJoinIntents    []BattleJoinIntent    `json:"battleJoinIntents"`
	TransferOffer        *TransferOfferUpdate  `json:"transferOffer"`
}

type BattleJoinIntent struct {
	Side domain.BattleSide `json:"side"`
}

// TransferOfferUpdate 既用于随指令创建 Intent 报价，也用于应答方声明实收部分。
type TransferOfferUpdate struct {
	Gold   int                       `json:"gold"`
	Troops float64                   `json:"troops"`
	Items  []TransferOfferItemUpdate `json:"items"`
}

type TransferOfferItemUpdate struct {
	ItemID string `json:"itemId"`
	Count  int    `json:"count"`
}

// RespondToApplicationReq 指挥方裁决一条参战/雇佣申请。
type RespondToApplicationReq struct {
	PartyID       int64 `json:"-"`
	ApplicationID int64 `json:"-"`
	Accept        bool  `json:"accept"`
}

// RespondToTransferOfferReq 目标队伍应答一份交接报价。
type RespondToTransferOfferReq struct {
	PartyID  int64                `json:"-"`
	OfferID  int64                `json:"-"`
	Accept   bool                 `json:"accept"`
	Accepted *TransferOfferUpdate `json:"accepted"`
}

// UpdateSideBriefingReq 指挥官编辑一方的战前说明。
type UpdateSideBriefingReq struct {
	PartyID  int64             `json:"-"`
	BattleID int64             `json:"-"`
	Side     domain.BattleSide `json:"side"`
	Note     string            `json:"note"`
}

// ClaimBattleReq 战斗实例认领一场已排期的战局。
type ClaimBattleReq struct {
	BattleID int64  `json:"-"`
	Instance string `json:"instance"`
}

// StrategusUpdate 是某支队伍视角下的大地图快照。
type StrategusUpdate struct {
	Party              *domain.Party        `json:"party"`
	Speed              PartySpeedView       `json:"speed"`
	VisibleParties     []*domain.Party      `json:"visibleParties"`
	VisibleSettlements []*domain.Settlement `json:"visibleSettlements"`
	VisibleBattles     []*domain.Battle     `json:"visibleBattles"`
}

// PartySpeedView 行军速度分解，给前端展示。
type PartySpeedView struct {
	BaseSpeed      float64 `json:"baseSpeed"`
	TroopInfluence float64 `json:"troopInfluence"`
	MountInfluence float64 `json:"mountInfluence"`
	FinalSpeed     float64 `json:"finalSpeed"`
}
