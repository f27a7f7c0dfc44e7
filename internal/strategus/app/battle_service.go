package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"Strategus/internal/strategus/app/model"
	"Strategus/internal/strategus/domain"
	"Strategus/modules/kit/logx"
)

// BattleService 承载战局上的小操作：战前说明编辑、战斗实例认领。
type BattleService struct {
	battles BattleRepo
	log     logx.Logger
	nextID  NextID
}

func NewBattleService(battles BattleRepo, log logx.Logger, nextID NextID) *BattleService {
	return &BattleService{battles: battles, log: log, nextID: nextID}
}

// UpdateSideBriefing 指挥官编辑本方的战前说明；招募期结束后锁定。
func (s *BattleService) UpdateSideBriefing(ctx context.Context, req model.UpdateSideBriefingReq) (*domain.BattleSideBriefing, error) {
	battle, err := s.battles.Get(ctx, req.BattleID)
	if err != nil {
		if errors.Is(err, domain.ErrBattleNotFound) {
			return nil, err
		}
		return nil, ErrUnavailable.WithCause(err)
	}

	commander := battle.Commander(req.Side)
	if commander == nil || commander.PartyID != req.PartyID {
		return nil, ErrNotCommander.WithData("partyId", req.PartyID).WithData("battleId", battle.ID)
	}
	if battle.Phase > domain.BattleHiring {
		return nil, ErrBattleInvalidPhase.WithData("battleId", battle.ID).WithData("phase", battle.Phase.String())
	}

	var briefing *domain.BattleSideBriefing
	for _, b := range battle.SideBriefings {
		if b.Side == req.Side {
			briefing = b
			break
		}
	}
	if briefing == nil {
		briefing = &domain.BattleSideBriefing{
			ID:       s.nextID(),
			BattleID: battle.ID,
			Side:     req.Side,
		}
		battle.SideBriefings = append(battle.SideBriefings, briefing)
	}
	briefing.Note = req.Note

	if err := s.battles.Save(ctx, battle); err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}
	return briefing, nil
}

// ClaimBattle 战斗实例占用一场战局，防止同一场被重复拉起。
func (s *BattleService) ClaimBattle(ctx context.Context, req model.ClaimBattleReq) (*domain.Battle, error) {
	battle, err := s.battles.Get(ctx, req.BattleID)
	if err != nil {
		if errors.Is(err, domain.ErrBattleNotFound) {
			return nil, err
		}
		return nil, ErrUnavailable.WithCause(err)
	}

	if battle.InstanceToken != "" {
		return nil, ErrBattleAlreadyClaimed.
			WithData("battleId", battle.ID).
			WithData("instance", battle.InstanceToken)
	}

	battle.InstanceToken = req.Instance
	if err := s.battles.Save(ctx, battle); err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}

	s.log.WithContext(ctx).Info("战局已被实例认领",
		zap.Int64("battleId", battle.ID), zap.String("instance", req.Instance))
	return battle, nil
}
