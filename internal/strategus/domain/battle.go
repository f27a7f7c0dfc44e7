package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// BattlePhase 表示战局生命周期阶段。
// 阶段只会单向推进：Preparation -> Hiring -> Scheduled -> Live -> End。
type BattlePhase int8

const (
	// BattlePreparation 备战期：双方指挥官就位，接收参战申请（Intent/Pending）
	BattlePreparation BattlePhase = iota
	// BattleHiring 招募期：分配参战名额、裁决雇佣兵/参战方申请
	BattleHiring
	// BattleScheduled 已排期：等待开战时刻
	BattleScheduled
	// BattleLive 实时战斗中（由战斗实例接管）
	BattleLive
	// BattleEnd 结束（由战报回传触发，不走 tick）
	BattleEnd
)

func (p BattlePhase) String() string {
	switch p {
	case BattlePreparation:
		return "Preparation"
	case BattleHiring:
		return "Hiring"
	case BattleScheduled:
		return "Scheduled"
	case BattleLive:
		return "Live"
	case BattleEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// BattleSide 攻守方。
type BattleSide int8

const (
	SideAttacker BattleSide = iota
	SideDefender
)

func (s BattleSide) String() string {
	if s == SideAttacker {
		return "Attacker"
	}
	return "Defender"
}

// ApplicationStatus 参战/雇佣申请状态。
// Intent 是随指令创建的草稿；队伍抵达战局后提升为 Pending；
// Hiring 期内裁决为 Accepted/Declined，窗口关闭时仍 Pending 的一律强制 Declined。
type ApplicationStatus int8

const (
	ApplicationIntent ApplicationStatus = iota
	ApplicationPending
	ApplicationAccepted
	ApplicationDeclined
)

func (s ApplicationStatus) String() string {
	switch s {
	case ApplicationIntent:
		return "Intent"
	case ApplicationPending:
		return "Pending"
	case ApplicationAccepted:
		return "Accepted"
	case ApplicationDeclined:
		return "Declined"
	default:
		return "Unknown"
	}
}

// BattleParticipantType 参战者来源。
type BattleParticipantType int8

const (
	ParticipantParty BattleParticipantType = iota
	ParticipantMercenary
	ParticipantSettlement
)

// BattleFighter 是压上战局某一方的队伍或据点（可能是指挥官）。
type BattleFighter struct {
	ID           int64
	BattleID     int64
	Side         BattleSide
	Commander    bool
	PartyID      int64
	SettlementID int64
	Party        *Party
	Settlement   *Settlement

	// ParticipantSlots 是名额分配模型算出的可带参战者数（不含自身）
	ParticipantSlots int
}

// Troops 参与名额分配的兵力。
// todo 据点守军兵力尚未纳入分配模型，目前按 0 计
func (f *BattleFighter) Troops() float64 {
	if f.Party != nil {
		return f.Party.Troops
	}
	return 0
}

// BattleFighterApplication 是队伍作为参战方加入战局的申请。
type BattleFighterApplication struct {
	ID       int64
	BattleID int64
	PartyID  int64
	Party    *Party
	Side     BattleSide
	Status   ApplicationStatus
}

// BattleMercenaryApplication 是单个角色作为雇佣兵加入战局的申请。
type BattleMercenaryApplication struct {
	ID          int64
	BattleID    int64
	CharacterID int64
	UserID      int64
	Side        BattleSide
	Wage        int
	Note        string
	Status      ApplicationStatus
}

// BattleParticipant 是被录取进战局名单的具体角色。
type BattleParticipant struct {
	ID                     int64
	BattleID               int64
	Side                   BattleSide
	Type                   BattleParticipantType
	CharacterID            int64
	CaptainFighterID       int64
	MercenaryApplicationID int64
}

// BattleSideBriefing 是每一方的战前说明（指挥官在 Hiring 结束前可编辑）。
type BattleSideBriefing struct {
	ID       int64
	BattleID int64
	Side     BattleSide
	Note     string
}

// Battle 是两方之间的一场战局。
// entity
type Battle struct {
	ID           int64
	Phase        BattlePhase
	Region       Region
	Position     orb.Point
	CreatedAt    time.Time
	ScheduledFor *time.Time

	// InstanceToken 由战斗实例认领时占用（防止重复拉起）
	InstanceToken string

	Fighters              []*BattleFighter
	FighterApplications   []*BattleFighterApplication
	Participants          []*BattleParticipant
	MercenaryApplications []*BattleMercenaryApplication
	SideBriefings         []*BattleSideBriefing
}

// Commander 返回某一方的指挥官；阶段 <= Hiring 期间每方必须恰好一名。
func (b *Battle) Commander(side BattleSide) *BattleFighter {
	for _, f := range b.Fighters {
		if f.Side == side && f.Commander {
			return f
		}
	}
	return nil
}

// FighterOfParty 返回某队伍对应的参战方记录；不在战局中返回 nil。
func (b *Battle) FighterOfParty(partyID int64) *BattleFighter {
	for _, f := range b.Fighters {
		if f.PartyID == partyID && partyID != 0 {
			return f
		}
	}
	return nil
}

// TotalParticipantSlots 某一方可容纳的参战者总数。
// 名额分配时每个参战方扣掉了一个自用名额，这里按参战方数量加回来。
func (b *Battle) TotalParticipantSlots(side BattleSide) int {
	total := 0
	for _, f := range b.Fighters {
		if f.Side == side {
			total += f.ParticipantSlots + 1
		}
	}
	return total
}

// ParticipantCount 某一方当前已录取的参战者数。
func (b *Battle) ParticipantCount(side BattleSide) int {
	n := 0
	for _, p := range b.Participants {
		if p.Side == side {
			n++
		}
	}
	return n
}
