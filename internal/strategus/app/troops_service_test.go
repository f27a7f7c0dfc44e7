package app

import (
	"context"
	"math"
	"testing"
	"time"

	"Strategus/internal/strategus/domain"
)

func TestGrowTroops_按时长比例增长(t *testing.T) {
	recruiting := &domain.Party{ID: 1, Status: domain.PartyRecruitingInSettlement, Troops: 10}
	idle := &domain.Party{ID: 2, Status: domain.PartyIdle, Troops: 10}
	parties := newFakePartyRepo(recruiting, idle)
	svc := NewTroopsService(parties, nopLogger{}, 5, 1000)

	if err := svc.GrowTroops(context.Background(), 30*time.Minute); err != nil {
		t.Fatalf("tick 不应报错: %v", err)
	}

	// 每小时 5 个兵，半小时 2.5 个
	if math.Abs(recruiting.Troops-12.5) > 1e-9 {
		t.Fatalf("募兵队伍期望 12.5, got=%v", recruiting.Troops)
	}
	if idle.Troops != 10 {
		t.Fatalf("非募兵队伍不应增长, got=%v", idle.Troops)
	}
}

func TestGrowTroops_兵力封顶(t *testing.T) {
	party := &domain.Party{ID: 1, Status: domain.PartyRecruitingInSettlement, Troops: 999}
	svc := NewTroopsService(newFakePartyRepo(party), nopLogger{}, 5, 1000)

	if err := svc.GrowTroops(context.Background(), 10*time.Hour); err != nil {
		t.Fatalf("tick 不应报错: %v", err)
	}
	if party.Troops != 1000 {
		t.Fatalf("兵力应封顶在 1000, got=%v", party.Troops)
	}
}
