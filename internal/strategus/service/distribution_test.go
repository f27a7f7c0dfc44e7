package service

import (
	"testing"

	"Strategus/internal/strategus/domain"
)

func fighterWithTroops(side domain.BattleSide, troops float64) *domain.BattleFighter {
	return &domain.BattleFighter{
		Side:  side,
		Party: &domain.Party{Troops: troops},
	}
}

func TestDistributeParticipants_按兵力占比分配(t *testing.T) {
	f1 := fighterWithTroops(domain.SideAttacker, 10)
	f2 := fighterWithTroops(domain.SideAttacker, 30)

	DistributionModel{}.DistributeParticipants([]*domain.BattleFighter{f1, f2}, 100)

	// 份额 25/75，扣掉参战方自身各一个名额
	if f1.ParticipantSlots != 24 {
		t.Fatalf("f1 名额期望 24, got=%d", f1.ParticipantSlots)
	}
	if f2.ParticipantSlots != 74 {
		t.Fatalf("f2 名额期望 74, got=%d", f2.ParticipantSlots)
	}
}

func TestDistributeParticipants_余数按顺序逐个补发(t *testing.T) {
	fighters := []*domain.BattleFighter{
		fighterWithTroops(domain.SideDefender, 10),
		fighterWithTroops(domain.SideDefender, 10),
		fighterWithTroops(domain.SideDefender, 10),
	}

	DistributionModel{}.DistributeParticipants(fighters, 100)

	// 各 33 个名额扣自身得 32，取整剩下 1 个补给第一个
	want := []int{33, 32, 32}
	for i, f := range fighters {
		if f.ParticipantSlots != want[i] {
			t.Fatalf("第 %d 个参战方名额期望 %d, got=%d", i, want[i], f.ParticipantSlots)
		}
	}
}

func TestDistributeParticipants_名额总数守恒(t *testing.T) {
	const battleSlots = 100
	fighters := []*domain.BattleFighter{
		fighterWithTroops(domain.SideAttacker, 17),
		fighterWithTroops(domain.SideAttacker, 23),
		fighterWithTroops(domain.SideAttacker, 61),
		fighterWithTroops(domain.SideDefender, 7),
		fighterWithTroops(domain.SideDefender, 900),
	}

	DistributionModel{}.DistributeParticipants(fighters, battleSlots)

	for _, side := range []domain.BattleSide{domain.SideAttacker, domain.SideDefender} {
		total := 0
		for _, f := range fighters {
			if f.Side == side {
				total += f.ParticipantSlots + 1 // 参战方自身也占一个名额
			}
		}
		if total != battleSlots {
			t.Fatalf("%v 方名额总数期望 %d, got=%d", side, battleSlots, total)
		}
	}
}

func TestDistributeParticipants_无兵力一方跳过分配(t *testing.T) {
	settlementFighter := &domain.BattleFighter{
		Side:       domain.SideDefender,
		Settlement: &domain.Settlement{},
	}
	attacker := fighterWithTroops(domain.SideAttacker, 50)

	DistributionModel{}.DistributeParticipants([]*domain.BattleFighter{attacker, settlementFighter}, 100)

	if settlementFighter.ParticipantSlots != 0 {
		t.Fatalf("无兵力一方名额期望保持 0, got=%d", settlementFighter.ParticipantSlots)
	}
	if attacker.ParticipantSlots != 99 {
		t.Fatalf("攻方独占全部名额期望 99, got=%d", attacker.ParticipantSlots)
	}
}

func TestDistributeParticipants_总名额加回参战方自身(t *testing.T) {
	f := fighterWithTroops(domain.SideAttacker, 100)

	DistributionModel{}.DistributeParticipants([]*domain.BattleFighter{f}, 100)

	// 分配扣掉了自用名额
	if f.ParticipantSlots != 99 {
		t.Fatalf("单独参战方名额期望 99, got=%d", f.ParticipantSlots)
	}
	// 一方总容量把每个参战方自身加回来
	battle := &domain.Battle{Fighters: []*domain.BattleFighter{f}}
	if got := battle.TotalParticipantSlots(domain.SideAttacker); got != 100 {
		t.Fatalf("总名额期望 100, got=%d", got)
	}
}
