package app

import (
	"context"
	"errors"
	"testing"

	"Strategus/internal/strategus/app/model"
	"Strategus/internal/strategus/domain"
)

// hiringBattle 攻守各一个指挥官，攻方名额 2（自身 1 + 可带 1）。
func hiringBattle(commanderParty *domain.Party) *domain.Battle {
	return &domain.Battle{
		ID:    100,
		Phase: domain.BattleHiring,
		Fighters: []*domain.BattleFighter{
			{ID: 11, BattleID: 100, Side: domain.SideAttacker, Commander: true,
				PartyID: commanderParty.ID, Party: commanderParty, ParticipantSlots: 1},
			{ID: 12, BattleID: 100, Side: domain.SideDefender, Commander: true,
				PartyID: 99, Party: &domain.Party{ID: 99}, ParticipantSlots: 1},
		},
	}
}

func newApplicationService(parties *fakePartyRepo, battles *fakeBattleRepo) (*ApplicationService, *fakeActivityLog, *fakeNotifier) {
	activity := &fakeActivityLog{}
	notifier := &fakeNotifier{}
	return NewApplicationService(parties, battles, activity, notifier, nopLogger{}, seqID()), activity, notifier
}

func TestRespondToMercenaryApplication_接受并录取(t *testing.T) {
	commander := &domain.Party{ID: 1, UserID: 10}
	battle := hiringBattle(commander)
	battle.MercenaryApplications = []*domain.BattleMercenaryApplication{
		{ID: 31, BattleID: 100, CharacterID: 7, UserID: 70, Side: domain.SideAttacker, Status: domain.ApplicationPending},
		{ID: 32, BattleID: 100, CharacterID: 8, UserID: 70, Side: domain.SideAttacker, Status: domain.ApplicationPending},
	}
	battles := newFakeBattleRepo(battle)
	svc, activity, notifier := newApplicationService(newFakePartyRepo(commander), battles)

	application, err := svc.RespondToMercenaryApplication(context.Background(),
		model.RespondToApplicationReq{PartyID: 1, ApplicationID: 31, Accept: true})
	if err != nil {
		t.Fatalf("裁决不应报错: %v", err)
	}

	if application.Status != domain.ApplicationAccepted {
		t.Fatalf("期望录取, got=%v", application.Status)
	}
	if len(battle.Participants) != 1 {
		t.Fatalf("期望生成 1 名参战者, got=%d", len(battle.Participants))
	}
	p := battle.Participants[0]
	if p.Type != domain.ParticipantMercenary || p.CharacterID != 7 || p.CaptainFighterID != 11 {
		t.Fatalf("参战者内容不符: %+v", p)
	}
	// 同一玩家的其他待裁决申请一并拒掉
	if battle.MercenaryApplications[1].Status != domain.ApplicationDeclined {
		t.Fatalf("同玩家其他申请应被拒绝, got=%v", battle.MercenaryApplications[1].Status)
	}
	if activity.applicationResponded != 1 || notifier.notified != 1 {
		t.Fatalf("应有留痕和通知: activity=%d notifier=%d", activity.applicationResponded, notifier.notified)
	}
}

func TestRespondToMercenaryApplication_名额满返回容量错误(t *testing.T) {
	commander := &domain.Party{ID: 1}
	battle := hiringBattle(commander)
	battle.Participants = []*domain.BattleParticipant{
		{ID: 41, BattleID: 100, Side: domain.SideAttacker, Type: domain.ParticipantMercenary},
		{ID: 42, BattleID: 100, Side: domain.SideAttacker, Type: domain.ParticipantMercenary},
	}
	battle.MercenaryApplications = []*domain.BattleMercenaryApplication{
		{ID: 31, BattleID: 100, CharacterID: 7, Side: domain.SideAttacker, Status: domain.ApplicationPending},
	}
	svc, _, _ := newApplicationService(newFakePartyRepo(commander), newFakeBattleRepo(battle))

	_, err := svc.RespondToMercenaryApplication(context.Background(),
		model.RespondToApplicationReq{PartyID: 1, ApplicationID: 31, Accept: true})
	if !errors.Is(err, ErrParticipantSlotsExceeded) {
		t.Fatalf("期望容量错误, got=%v", err)
	}
	if battle.MercenaryApplications[0].Status != domain.ApplicationPending {
		t.Fatalf("容量错误不应改申请状态, got=%v", battle.MercenaryApplications[0].Status)
	}
}

func TestRespondToMercenaryApplication_容量含参战方自身名额(t *testing.T) {
	commander := &domain.Party{ID: 1}
	battle := hiringBattle(commander)
	// 攻方总容量 2（可带 1 + 自身 1），已有 1 人时仍可录取
	battle.Participants = []*domain.BattleParticipant{
		{ID: 41, BattleID: 100, Side: domain.SideAttacker, Type: domain.ParticipantMercenary},
	}
	battle.MercenaryApplications = []*domain.BattleMercenaryApplication{
		{ID: 31, BattleID: 100, CharacterID: 7, Side: domain.SideAttacker, Status: domain.ApplicationPending},
	}
	svc, _, _ := newApplicationService(newFakePartyRepo(commander), newFakeBattleRepo(battle))

	application, err := svc.RespondToMercenaryApplication(context.Background(),
		model.RespondToApplicationReq{PartyID: 1, ApplicationID: 31, Accept: true})
	if err != nil {
		t.Fatalf("名额未满不应报错: %v", err)
	}
	if application.Status != domain.ApplicationAccepted {
		t.Fatalf("期望录取, got=%v", application.Status)
	}
}

func TestRespondToMercenaryApplication_非参战方不能裁决(t *testing.T) {
	commander := &domain.Party{ID: 1}
	outsider := &domain.Party{ID: 5}
	battle := hiringBattle(commander)
	battle.MercenaryApplications = []*domain.BattleMercenaryApplication{
		{ID: 31, BattleID: 100, Side: domain.SideAttacker, Status: domain.ApplicationPending},
	}
	svc, _, _ := newApplicationService(newFakePartyRepo(commander, outsider), newFakeBattleRepo(battle))

	_, err := svc.RespondToMercenaryApplication(context.Background(),
		model.RespondToApplicationReq{PartyID: 5, ApplicationID: 31, Accept: true})
	if !errors.Is(err, ErrPartyNotAFighter) {
		t.Fatalf("期望 ErrPartyNotAFighter, got=%v", err)
	}
}

func TestRespondToMercenaryApplication_跨侧裁决被拒(t *testing.T) {
	commander := &domain.Party{ID: 1}
	battle := hiringBattle(commander)
	battle.MercenaryApplications = []*domain.BattleMercenaryApplication{
		{ID: 31, BattleID: 100, Side: domain.SideDefender, Status: domain.ApplicationPending},
	}
	svc, _, _ := newApplicationService(newFakePartyRepo(commander), newFakeBattleRepo(battle))

	_, err := svc.RespondToMercenaryApplication(context.Background(),
		model.RespondToApplicationReq{PartyID: 1, ApplicationID: 31, Accept: true})
	if !errors.Is(err, ErrSidesMismatch) {
		t.Fatalf("期望 ErrSidesMismatch, got=%v", err)
	}
}

func TestRespondToMercenaryApplication_非招募期拒绝(t *testing.T) {
	commander := &domain.Party{ID: 1}
	battle := hiringBattle(commander)
	battle.Phase = domain.BattleScheduled
	battle.MercenaryApplications = []*domain.BattleMercenaryApplication{
		{ID: 31, BattleID: 100, Side: domain.SideAttacker, Status: domain.ApplicationPending},
	}
	svc, _, _ := newApplicationService(newFakePartyRepo(commander), newFakeBattleRepo(battle))

	_, err := svc.RespondToMercenaryApplication(context.Background(),
		model.RespondToApplicationReq{PartyID: 1, ApplicationID: 31, Accept: true})
	if !errors.Is(err, ErrBattleInvalidPhase) {
		t.Fatalf("期望 ErrBattleInvalidPhase, got=%v", err)
	}
}

func TestRespondToFighterApplication_接受收编为参战方(t *testing.T) {
	commander := &domain.Party{ID: 1}
	applicant := &domain.Party{ID: 3, UserID: 30, Status: domain.PartyAwaitingBattleJoinDecision}
	battle := hiringBattle(commander)
	battle.FighterApplications = []*domain.BattleFighterApplication{
		{ID: 21, BattleID: 100, PartyID: 3, Party: applicant, Side: domain.SideAttacker, Status: domain.ApplicationPending},
	}
	svc, _, _ := newApplicationService(newFakePartyRepo(commander, applicant), newFakeBattleRepo(battle))

	application, err := svc.RespondToFighterApplication(context.Background(),
		model.RespondToApplicationReq{PartyID: 1, ApplicationID: 21, Accept: true})
	if err != nil {
		t.Fatalf("裁决不应报错: %v", err)
	}

	if application.Status != domain.ApplicationAccepted {
		t.Fatalf("期望录取, got=%v", application.Status)
	}
	fighter := battle.FighterOfParty(3)
	if fighter == nil || fighter.Commander {
		t.Fatalf("申请队伍应成为非指挥官参战方, got=%+v", fighter)
	}
	if applicant.Status != domain.PartyInBattle || applicant.CurrentBattleID != battle.ID {
		t.Fatalf("申请队伍应入战, got=%v", applicant.Status)
	}
}

func TestRespondToFighterApplication_拒绝后恢复行动(t *testing.T) {
	commander := &domain.Party{ID: 1}
	applicant := &domain.Party{ID: 3, Status: domain.PartyAwaitingBattleJoinDecision, CurrentBattleID: 100}
	battle := hiringBattle(commander)
	battle.FighterApplications = []*domain.BattleFighterApplication{
		{ID: 21, BattleID: 100, PartyID: 3, Party: applicant, Side: domain.SideAttacker, Status: domain.ApplicationPending},
	}
	svc, _, _ := newApplicationService(newFakePartyRepo(commander, applicant), newFakeBattleRepo(battle))

	application, err := svc.RespondToFighterApplication(context.Background(),
		model.RespondToApplicationReq{PartyID: 1, ApplicationID: 21, Accept: false})
	if err != nil {
		t.Fatalf("裁决不应报错: %v", err)
	}
	if application.Status != domain.ApplicationDeclined {
		t.Fatalf("期望拒绝, got=%v", application.Status)
	}
	if applicant.Status != domain.PartyIdle || applicant.CurrentBattleID != 0 {
		t.Fatalf("被拒后应恢复空闲, got=%v", applicant.Status)
	}
	if battle.FighterOfParty(3) != nil {
		t.Fatalf("被拒队伍不应成为参战方")
	}
}
