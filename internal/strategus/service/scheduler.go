package service

import (
	"time"

	"Strategus/internal/strategus/domain"
	"Strategus/modules/kit/errx"
)

// Clock 与 Rand 以端口形式注入，测试时可替换成固定时钟/固定随机源。
type Clock interface {
	Now() time.Time
}

type Rand interface {
	Intn(n int) int
}

var (
	ErrNoDefenderCommander   = errx.NewBiz("STRATEGUS_NO_DEFENDER_COMMANDER", "防守方没有指挥官")
	ErrNoVulnerabilityWindow = errx.NewBiz("STRATEGUS_NO_VULNERABILITY_WINDOW", "防守方未配置可攻击时段")
	ErrHourOutOfRange        = errx.NewBiz("STRATEGUS_HOUR_OUT_OF_RANGE", "小时必须在 [0,23]")
)

// BattleScheduler 从防守方的可攻击时段里为战局挑一个开战时刻。
type BattleScheduler struct {
	clock   Clock
	rand    Rand
	minLead time.Duration
}

func NewBattleScheduler(clock Clock, rand Rand, minLead time.Duration) *BattleScheduler {
	return &BattleScheduler{clock: clock, rand: rand, minLead: minLead}
}

// ScheduleBattle 为战局写入 ScheduledFor；已排期则跳过。
// 可攻击时段取防守方指挥官（队伍，或据点主人）按战局分区配置的小时集合，均匀随机取一个。
func (s *BattleScheduler) ScheduleBattle(battle *domain.Battle) error {
	if battle.ScheduledFor != nil {
		return nil // 已排期
	}

	defender := battle.Commander(domain.SideDefender)
	if defender == nil {
		return ErrNoDefenderCommander.WithData("battleId", battle.ID)
	}

	var hours []int
	switch {
	case defender.Party != nil:
		hours = defender.Party.VulnerabilityWindows.Get(battle.Region)
	case defender.Settlement != nil && defender.Settlement.Owner != nil:
		hours = defender.Settlement.Owner.VulnerabilityWindows.Get(battle.Region)
	}
	if len(hours) == 0 {
		return ErrNoVulnerabilityWindow.WithData("battleId", battle.ID)
	}

	attackHour := hours[s.rand.Intn(len(hours))]
	scheduledFor, err := s.NextBattleDateFromHour(attackHour)
	if err != nil {
		return err
	}
	battle.ScheduledFor = &scheduledFor
	return nil
}

// NextBattleDateFromHour 返回“今天的该小时”作为开战时刻。
func (s *BattleScheduler) NextBattleDateFromHour(hour int) (time.Time, error) {
	if hour < 0 || hour > 23 {
		return time.Time{}, ErrHourOutOfRange.WithData("hour", hour)
	}

	now := s.clock.Now().UTC()
	baseTime := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !baseTime.After(now) || baseTime.Sub(now) < s.minLead {
		// todo 已过时刻/提前量不足时应顺延到次日，但顺延结果一直没有生效，
		// 修正会改变现有排期行为，先保持原样（见 DESIGN.md 开放问题）。
		baseTime.AddDate(0, 0, 1)
	}

	return baseTime, nil
}
