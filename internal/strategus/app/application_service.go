package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"Strategus/internal/strategus/app/model"
	"Strategus/internal/strategus/domain"
	"Strategus/modules/kit/logx"
)

// ApplicationService 处理招募期内对雇佣兵/参战方申请的裁决。
// 裁决只在 Hiring 阶段、申请 Pending 时合法；接受前复查名额。
type ApplicationService struct {
	parties  PartyRepo
	battles  BattleRepo
	activity ActivityLog
	notifier Notifier
	log      logx.Logger
	nextID   NextID
}

func NewApplicationService(
	parties PartyRepo,
	battles BattleRepo,
	activity ActivityLog,
	notifier Notifier,
	log logx.Logger,
	nextID NextID,
) *ApplicationService {
	return &ApplicationService{
		parties:  parties,
		battles:  battles,
		activity: activity,
		notifier: notifier,
		log:      log,
		nextID:   nextID,
	}
}

// RespondToMercenaryApplication 裁决一条雇佣兵申请。
// 接受时录取为 Mercenary 参战者，并顺带拒掉同一角色在该战局的其他待裁决申请
// （一个角色在一场战局里只能有一份有效录用）。
func (s *ApplicationService) RespondToMercenaryApplication(ctx context.Context, req model.RespondToApplicationReq) (*domain.BattleMercenaryApplication, error) {
	battle, err := s.battles.GetByMercenaryApplication(ctx, req.ApplicationID)
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return nil, err
		}
		return nil, ErrUnavailable.WithCause(err)
	}

	var application *domain.BattleMercenaryApplication
	for _, a := range battle.MercenaryApplications {
		if a.ID == req.ApplicationID {
			application = a
			break
		}
	}
	if application == nil {
		return nil, domain.ErrApplicationNotFound.WithData("applicationId", req.ApplicationID)
	}

	fighter, err := s.guardResponder(battle, req.PartyID, application.Side, application.Status)
	if err != nil {
		return nil, err
	}

	if req.Accept {
		if err := s.guardCapacity(battle, application.Side); err != nil {
			return nil, err
		}

		application.Status = domain.ApplicationAccepted
		battle.Participants = append(battle.Participants, &domain.BattleParticipant{
			ID:                     s.nextID(),
			BattleID:               battle.ID,
			Side:                   application.Side,
			Type:                   domain.ParticipantMercenary,
			CharacterID:            application.CharacterID,
			CaptainFighterID:       fighter.ID,
			MercenaryApplicationID: application.ID,
		})

		for _, other := range battle.MercenaryApplications {
			if other.ID != application.ID && other.UserID == application.UserID &&
				other.Status == domain.ApplicationPending {
				other.Status = domain.ApplicationDeclined
			}
		}
	} else {
		application.Status = domain.ApplicationDeclined
	}

	if err := s.battles.Save(ctx, battle); err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}

	s.activity.ApplicationResponded(ctx, battle.ID, application.ID, req.PartyID, req.Accept)
	s.notifier.ApplicationResponded(ctx, application.UserID, battle.ID, req.Accept)
	s.log.WithContext(ctx).Info("雇佣兵申请已裁决",
		zap.Int64("battleId", battle.ID), zap.Int64("applicationId", application.ID),
		zap.Int64("responderPartyId", req.PartyID), zap.Bool("accept", req.Accept))
	return application, nil
}

// RespondToFighterApplication 裁决一条参战方申请。
// 接受时把申请队伍收编为非指挥官参战方，状态从等待裁决切到入战。
func (s *ApplicationService) RespondToFighterApplication(ctx context.Context, req model.RespondToApplicationReq) (*domain.BattleFighterApplication, error) {
	battle, err := s.battles.GetByFighterApplication(ctx, req.ApplicationID)
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return nil, err
		}
		return nil, ErrUnavailable.WithCause(err)
	}

	var application *domain.BattleFighterApplication
	for _, a := range battle.FighterApplications {
		if a.ID == req.ApplicationID {
			application = a
			break
		}
	}
	if application == nil {
		return nil, domain.ErrApplicationNotFound.WithData("applicationId", req.ApplicationID)
	}

	if _, err := s.guardResponder(battle, req.PartyID, application.Side, application.Status); err != nil {
		return nil, err
	}

	applicant := application.Party
	if applicant == nil {
		return nil, domain.ErrPartyNotFound.WithData("partyId", application.PartyID)
	}

	if req.Accept {
		if err := s.guardCapacity(battle, application.Side); err != nil {
			return nil, err
		}

		application.Status = domain.ApplicationAccepted
		battle.Fighters = append(battle.Fighters, &domain.BattleFighter{
			ID:       s.nextID(),
			BattleID: battle.ID,
			Side:     application.Side,
			PartyID:  applicant.ID,
			Party:    applicant,
		})

		applicant.Status = domain.PartyInBattle
		applicant.CurrentBattle = battle
		applicant.CurrentBattleID = battle.ID

		for _, other := range battle.FighterApplications {
			if other.ID != application.ID && other.PartyID == application.PartyID &&
				other.Status == domain.ApplicationPending {
				other.Status = domain.ApplicationDeclined
			}
		}
	} else {
		application.Status = domain.ApplicationDeclined
		// 被拒后恢复行动自由
		applicant.Status = domain.PartyIdle
		applicant.CurrentBattle = nil
		applicant.CurrentBattleID = 0
	}

	if err := s.battles.Save(ctx, battle); err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}
	if err := s.parties.Save(ctx, applicant); err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}

	s.activity.ApplicationResponded(ctx, battle.ID, application.ID, req.PartyID, req.Accept)
	if applicant.UserID != 0 {
		s.notifier.ApplicationResponded(ctx, applicant.UserID, battle.ID, req.Accept)
	}
	s.log.WithContext(ctx).Info("参战方申请已裁决",
		zap.Int64("battleId", battle.ID), zap.Int64("applicationId", application.ID),
		zap.Int64("responderPartyId", req.PartyID), zap.Bool("accept", req.Accept))
	return application, nil
}

// guardResponder 共同前置校验：裁决方必须是该战局同侧的参战方，
// 战局在招募期，申请还在待裁决。
func (s *ApplicationService) guardResponder(battle *domain.Battle, responderPartyID int64, side domain.BattleSide, status domain.ApplicationStatus) (*domain.BattleFighter, error) {
	fighter := battle.FighterOfParty(responderPartyID)
	if fighter == nil {
		return nil, ErrPartyNotAFighter.WithData("partyId", responderPartyID).WithData("battleId", battle.ID)
	}
	if fighter.Side != side {
		return nil, ErrSidesMismatch.WithData("partyId", responderPartyID).WithData("battleId", battle.ID)
	}
	if battle.Phase != domain.BattleHiring {
		return nil, ErrBattleInvalidPhase.WithData("battleId", battle.ID).WithData("phase", battle.Phase.String())
	}
	if status != domain.ApplicationPending {
		return nil, ErrApplicationClosed
	}
	return fighter, nil
}

func (s *ApplicationService) guardCapacity(battle *domain.Battle, side domain.BattleSide) error {
	total := battle.TotalParticipantSlots(side)
	current := battle.ParticipantCount(side)
	if current >= total {
		return ErrParticipantSlotsExceeded.
			WithData("battleId", battle.ID).
			WithData("side", side.String()).
			WithData("totalSlots", total)
	}
	return nil
}
