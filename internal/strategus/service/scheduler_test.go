package service

import (
	"errors"
	"testing"
	"time"

	"Strategus/internal/strategus/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fixedRand struct {
	n int
}

func (r fixedRand) Intn(n int) int { return r.n % n }

func defendedBattle(hours []int) *domain.Battle {
	return &domain.Battle{
		Region: domain.RegionEurope,
		Fighters: []*domain.BattleFighter{
			{
				Side:      domain.SideDefender,
				Commander: true,
				Party: &domain.Party{
					VulnerabilityWindows: domain.VulnerabilityWindows{
						{Region: domain.RegionEurope, Hours: hours},
					},
				},
			},
		},
	}
}

func TestScheduleBattle_取防守方时段排在当天(t *testing.T) {
	now := time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC)
	s := NewBattleScheduler(fixedClock{now: now}, fixedRand{n: 1}, 12*time.Hour)
	battle := defendedBattle([]int{3, 18})

	if err := s.ScheduleBattle(battle); err != nil {
		t.Fatalf("排期不应报错: %v", err)
	}
	want := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	if battle.ScheduledFor == nil || !battle.ScheduledFor.Equal(want) {
		t.Fatalf("期望排在 %v, got=%v", want, battle.ScheduledFor)
	}
}

func TestScheduleBattle_提前量不足仍排当天(t *testing.T) {
	// todo 顺延到次日的逻辑一直没生效（见 NextBattleDateFromHour），
	// 这里锁定现状，修复时同步改断言
	now := time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC)
	s := NewBattleScheduler(fixedClock{now: now}, fixedRand{n: 0}, 12*time.Hour)
	battle := defendedBattle([]int{3})

	if err := s.ScheduleBattle(battle); err != nil {
		t.Fatalf("排期不应报错: %v", err)
	}
	want := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	if battle.ScheduledFor == nil || !battle.ScheduledFor.Equal(want) {
		t.Fatalf("期望排在 %v, got=%v", want, battle.ScheduledFor)
	}
}

func TestScheduleBattle_已排期不重排(t *testing.T) {
	now := time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC)
	s := NewBattleScheduler(fixedClock{now: now}, fixedRand{n: 0}, 12*time.Hour)

	existing := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	battle := defendedBattle([]int{3})
	battle.ScheduledFor = &existing

	if err := s.ScheduleBattle(battle); err != nil {
		t.Fatalf("已排期应直接跳过: %v", err)
	}
	if !battle.ScheduledFor.Equal(existing) {
		t.Fatalf("已排期时刻不应被改写, got=%v", battle.ScheduledFor)
	}
}

func TestScheduleBattle_无防守指挥官返回错误(t *testing.T) {
	s := NewBattleScheduler(fixedClock{now: time.Now()}, fixedRand{n: 0}, 12*time.Hour)
	battle := &domain.Battle{Region: domain.RegionEurope}

	err := s.ScheduleBattle(battle)
	if !errors.Is(err, ErrNoDefenderCommander) {
		t.Fatalf("期望 ErrNoDefenderCommander, got=%v", err)
	}
}

func TestScheduleBattle_未配置时段返回错误(t *testing.T) {
	s := NewBattleScheduler(fixedClock{now: time.Now()}, fixedRand{n: 0}, 12*time.Hour)
	battle := defendedBattle(nil)

	err := s.ScheduleBattle(battle)
	if !errors.Is(err, ErrNoVulnerabilityWindow) {
		t.Fatalf("期望 ErrNoVulnerabilityWindow, got=%v", err)
	}
}

func TestScheduleBattle_据点主人的时段也可用(t *testing.T) {
	now := time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC)
	s := NewBattleScheduler(fixedClock{now: now}, fixedRand{n: 0}, 12*time.Hour)
	battle := &domain.Battle{
		Region: domain.RegionAsia,
		Fighters: []*domain.BattleFighter{
			{
				Side:      domain.SideDefender,
				Commander: true,
				Settlement: &domain.Settlement{
					Owner: &domain.Party{
						VulnerabilityWindows: domain.VulnerabilityWindows{
							{Region: domain.RegionAsia, Hours: []int{20}},
						},
					},
				},
			},
		},
	}

	if err := s.ScheduleBattle(battle); err != nil {
		t.Fatalf("据点战局排期不应报错: %v", err)
	}
	want := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	if battle.ScheduledFor == nil || !battle.ScheduledFor.Equal(want) {
		t.Fatalf("期望排在 %v, got=%v", want, battle.ScheduledFor)
	}
}

func TestNextBattleDateFromHour_小时越界返回错误(t *testing.T) {
	s := NewBattleScheduler(fixedClock{now: time.Now()}, fixedRand{n: 0}, 0)

	for _, hour := range []int{-1, 24} {
		if _, err := s.NextBattleDateFromHour(hour); !errors.Is(err, ErrHourOutOfRange) {
			t.Fatalf("hour=%d 期望 ErrHourOutOfRange, got=%v", hour, err)
		}
	}
}
