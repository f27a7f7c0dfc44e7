package domain

import "github.com/paulmach/orb"

// PartyOrderType 表示一条排队指令的意图。
// 新增类型时必须同步 movement 引擎的 dispatch switch（default 分支会丢弃未知指令并告警）。
type PartyOrderType int8

const (
	// OrderMoveToPoint 按路径点序列行军
	OrderMoveToPoint PartyOrderType = iota
	// OrderFollowParty 跟随另一支队伍（永不自行完成，每 tick 耗尽时间预算）
	OrderFollowParty
	// OrderAttackParty 追击并攻击另一支队伍
	OrderAttackParty
	// OrderTransferOfferParty 靠近后向另一支队伍递交交换报价
	OrderTransferOfferParty
	// OrderMoveToSettlement 行军到据点并驻扎
	OrderMoveToSettlement
	// OrderAttackSettlement 行军到据点并发起攻城
	OrderAttackSettlement
	// OrderJoinBattle 行军到战局位置并递交参战申请（Intent -> Pending）
	OrderJoinBattle
)

func (t PartyOrderType) String() string {
	switch t {
	case OrderMoveToPoint:
		return "MoveToPoint"
	case OrderFollowParty:
		return "FollowParty"
	case OrderAttackParty:
		return "AttackParty"
	case OrderTransferOfferParty:
		return "TransferOfferParty"
	case OrderMoveToSettlement:
		return "MoveToSettlement"
	case OrderAttackSettlement:
		return "AttackSettlement"
	case OrderJoinBattle:
		return "JoinBattle"
	default:
		return "Unknown"
	}
}

// PartyOrder 是指令队列中的一项；只有 OrderIndex 最小的一条处于激活状态。
// 目标实体由仓储在加载时解析成指针（同一次调用内有效）。
type PartyOrder struct {
	ID         int64
	PartyID    int64
	Type       PartyOrderType
	OrderIndex int

	// Waypoints 仅 MoveToPoint 使用；消费掉的路径点会被移除
	Waypoints []orb.Point

	TargetedPartyID      int64
	TargetedSettlementID int64
	TargetedBattleID     int64

	TargetedParty      *Party
	TargetedSettlement *Settlement
	TargetedBattle     *Battle
}

// BattleJoinIntent 是 JoinBattle 指令的参战意向（想加入哪一方）。
type BattleJoinIntent struct {
	Side BattleSide `json:"side"`
}
