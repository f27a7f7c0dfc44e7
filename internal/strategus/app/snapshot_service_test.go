package app

import (
	"context"
	"testing"

	"github.com/paulmach/orb"

	"Strategus/internal/strategus/domain"
	"Strategus/internal/strategus/service"
)

func TestGetUpdate_视野过滤(t *testing.T) {
	self := &domain.Party{ID: 1, Position: orb.Point{0, 0}, Status: domain.PartyIdle, Troops: 90}
	near := &domain.Party{ID: 2, Position: orb.Point{10, 0}, Status: domain.PartyIdle}
	far := &domain.Party{ID: 3, Position: orb.Point{100, 0}, Status: domain.PartyIdle}
	hidden := &domain.Party{ID: 4, Position: orb.Point{10, 10}, Status: domain.PartyInBattle}
	parties := newFakePartyRepo(self, near, far, hidden)

	settlements := newFakeSettlementRepo(
		&domain.Settlement{ID: 5, Position: orb.Point{20, 0}},
		&domain.Settlement{ID: 6, Position: orb.Point{200, 0}},
	)

	live := &domain.Battle{ID: 7, Position: orb.Point{0, 20}, Phase: domain.BattleHiring}
	ended := &domain.Battle{ID: 8, Position: orb.Point{0, 25}, Phase: domain.BattleEnd}
	battles := newFakeBattleRepo(live, ended)

	speed := service.NewSpeedModel(service.NewRouting())
	svc := NewSnapshotService(parties, settlements, battles, speed, 50)

	update, err := svc.GetUpdate(context.Background(), 1)
	if err != nil {
		t.Fatalf("快照不应报错: %v", err)
	}

	if update.Party != self {
		t.Fatalf("快照应以本队视角出发")
	}
	if len(update.VisibleParties) != 1 || update.VisibleParties[0].ID != 2 {
		t.Fatalf("可见队伍应只剩视野内的空闲队伍: %+v", update.VisibleParties)
	}
	if len(update.VisibleSettlements) != 1 || update.VisibleSettlements[0].ID != 5 {
		t.Fatalf("可见据点不符: %+v", update.VisibleSettlements)
	}
	if len(update.VisibleBattles) != 1 || update.VisibleBattles[0].ID != 7 {
		t.Fatalf("已结束的战局不该出现在快照里: %+v", update.VisibleBattles)
	}
	if update.Speed.FinalSpeed <= 0 {
		t.Fatalf("速度拆解应随快照下发, got=%+v", update.Speed)
	}
}
