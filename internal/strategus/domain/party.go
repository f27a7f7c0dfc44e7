package domain

import "github.com/paulmach/orb"

// PartyStatus 表示队伍在大地图上的状态。
// 状态决定哪些指令合法：InBattle / AwaitingBattleJoinDecision 期间禁止下新指令。
type PartyStatus int8

const (
	// PartyIdle 空闲
	PartyIdle PartyStatus = iota
	// PartyIdleInSettlement 在据点中休整
	PartyIdleInSettlement
	// PartyRecruitingInSettlement 在据点中募兵（troops tick 增长）
	PartyRecruitingInSettlement
	// PartyAwaitingPartyOfferDecision 等待对方答复交换报价
	PartyAwaitingPartyOfferDecision
	// PartyInBattle 卷入战局，不可移动
	PartyInBattle
	// PartyAwaitingBattleJoinDecision 等待参战申请的裁决；不可移动，但可被攻击（防滥用）
	PartyAwaitingBattleJoinDecision
)

func (s PartyStatus) String() string {
	switch s {
	case PartyIdle:
		return "Idle"
	case PartyIdleInSettlement:
		return "IdleInSettlement"
	case PartyRecruitingInSettlement:
		return "RecruitingInSettlement"
	case PartyAwaitingPartyOfferDecision:
		return "AwaitingPartyOfferDecision"
	case PartyInBattle:
		return "InBattle"
	case PartyAwaitingBattleJoinDecision:
		return "AwaitingBattleJoinDecision"
	default:
		return "Unknown"
	}
}

// Mount 是坐骑数值（速度按耐力 HitPoints/100 折算，长途行军看耐力不看冲刺）。
type Mount struct {
	HitPoints int
}

// PartyItem 是队伍携带的一组同类物品；Mount 非 nil 表示坐骑。
type PartyItem struct {
	ItemID string
	Count  int
	Mount  *Mount
}

// Party 是大地图上一支由玩家统领的队伍。
// entity
type Party struct {
	ID     int64
	UserID int64
	Name   string
	Region Region

	Gold int
	// Troops 用浮点累计，便于每 tick 增长零点几个兵
	Troops   float64
	Items    []PartyItem
	Position orb.Point
	Status   PartyStatus
	Orders   []*PartyOrder

	// 正在交互的对象（按 Status 语义解释）
	CurrentPartyID      int64
	CurrentSettlementID int64
	CurrentBattleID     int64
	CurrentParty        *Party
	CurrentSettlement   *Settlement
	CurrentBattle       *Battle

	VulnerabilityWindows VulnerabilityWindows
}

// CanAcceptOrders 是否允许下新指令。
func (p *Party) CanAcceptOrders() bool {
	return p.Status != PartyInBattle && p.Status != PartyAwaitingBattleJoinDecision
}

// Attackable 是否可被其他队伍攻击。
func (p *Party) Attackable() bool {
	switch p.Status {
	case PartyIdleInSettlement, PartyRecruitingInSettlement, PartyInBattle:
		return false
	default:
		return true
	}
}

// ActiveOrder 返回 OrderIndex 最小的指令；队列为空返回 nil。
func (p *Party) ActiveOrder() *PartyOrder {
	var active *PartyOrder
	for _, o := range p.Orders {
		if active == nil || o.OrderIndex < active.OrderIndex {
			active = o
		}
	}
	return active
}

// RemoveOrder 把指令从队列中消费掉。
func (p *Party) RemoveOrder(order *PartyOrder) {
	for i, o := range p.Orders {
		if o == order {
			p.Orders = append(p.Orders[:i], p.Orders[i+1:]...)
			return
		}
	}
}

// ClearOrders 清空指令队列（入战、发起报价等场景）。
func (p *Party) ClearOrders() {
	p.Orders = p.Orders[:0]
}
