package app

import (
	"context"
	"errors"
	"testing"

	"Strategus/internal/strategus/app/model"
	"Strategus/internal/strategus/domain"
)

func TestUpdateSideBriefing_指挥官可以编辑并覆盖(t *testing.T) {
	commander := &domain.Party{ID: 1}
	battle := hiringBattle(commander)
	battles := newFakeBattleRepo(battle)
	svc := NewBattleService(battles, nopLogger{}, seqID())

	briefing, err := svc.UpdateSideBriefing(context.Background(), model.UpdateSideBriefingReq{
		PartyID: 1, BattleID: 100, Side: domain.SideAttacker, Note: "沿河列阵",
	})
	if err != nil {
		t.Fatalf("编辑不应报错: %v", err)
	}
	if briefing.Note != "沿河列阵" || briefing.Side != domain.SideAttacker {
		t.Fatalf("说明内容不符: %+v", briefing)
	}

	// 再次编辑同一方应覆盖，不新建
	_, err = svc.UpdateSideBriefing(context.Background(), model.UpdateSideBriefingReq{
		PartyID: 1, BattleID: 100, Side: domain.SideAttacker, Note: "改为夜袭",
	})
	if err != nil {
		t.Fatalf("覆盖不应报错: %v", err)
	}
	if len(battle.SideBriefings) != 1 {
		t.Fatalf("同一方应只有一份说明, got=%d", len(battle.SideBriefings))
	}
	if battle.SideBriefings[0].Note != "改为夜袭" {
		t.Fatalf("说明应被覆盖, got=%q", battle.SideBriefings[0].Note)
	}
}

func TestUpdateSideBriefing_非指挥官不能编辑(t *testing.T) {
	commander := &domain.Party{ID: 1}
	battle := hiringBattle(commander)
	svc := NewBattleService(newFakeBattleRepo(battle), nopLogger{}, seqID())

	_, err := svc.UpdateSideBriefing(context.Background(), model.UpdateSideBriefingReq{
		PartyID: 2, BattleID: 100, Side: domain.SideAttacker, Note: "x",
	})
	if !errors.Is(err, ErrNotCommander) {
		t.Fatalf("期望 ErrNotCommander, got=%v", err)
	}

	// 本方指挥官也不能编辑对方的说明
	_, err = svc.UpdateSideBriefing(context.Background(), model.UpdateSideBriefingReq{
		PartyID: 1, BattleID: 100, Side: domain.SideDefender, Note: "x",
	})
	if !errors.Is(err, ErrNotCommander) {
		t.Fatalf("期望 ErrNotCommander, got=%v", err)
	}
}

func TestUpdateSideBriefing_排期后锁定(t *testing.T) {
	commander := &domain.Party{ID: 1}
	battle := hiringBattle(commander)
	battle.Phase = domain.BattleScheduled
	svc := NewBattleService(newFakeBattleRepo(battle), nopLogger{}, seqID())

	_, err := svc.UpdateSideBriefing(context.Background(), model.UpdateSideBriefingReq{
		PartyID: 1, BattleID: 100, Side: domain.SideAttacker, Note: "x",
	})
	if !errors.Is(err, ErrBattleInvalidPhase) {
		t.Fatalf("期望 ErrBattleInvalidPhase, got=%v", err)
	}
}

func TestClaimBattle_首次认领成功重复认领报错(t *testing.T) {
	battle := hiringBattle(&domain.Party{ID: 1})
	battle.Phase = domain.BattleScheduled
	battles := newFakeBattleRepo(battle)
	svc := NewBattleService(battles, nopLogger{}, seqID())

	claimed, err := svc.ClaimBattle(context.Background(), model.ClaimBattleReq{BattleID: 100, Instance: "gs-eu-1"})
	if err != nil {
		t.Fatalf("首次认领不应报错: %v", err)
	}
	if claimed.InstanceToken != "gs-eu-1" {
		t.Fatalf("实例标记未写入, got=%q", claimed.InstanceToken)
	}
	if battles.saveCalls != 1 {
		t.Fatalf("认领应落库一次, got=%d", battles.saveCalls)
	}

	_, err = svc.ClaimBattle(context.Background(), model.ClaimBattleReq{BattleID: 100, Instance: "gs-eu-2"})
	if !errors.Is(err, ErrBattleAlreadyClaimed) {
		t.Fatalf("期望 ErrBattleAlreadyClaimed, got=%v", err)
	}
	if battle.InstanceToken != "gs-eu-1" {
		t.Fatalf("重复认领不应改写实例标记, got=%q", battle.InstanceToken)
	}
}
