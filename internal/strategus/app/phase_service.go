package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"Strategus/internal/strategus/domain"
	"Strategus/internal/strategus/service"
	"Strategus/modules/kit/logx"
)

// PhaseService 是战局阶段 tick：Preparation -> Hiring -> Scheduled -> Live。
// 阶段只会单向推进；Live -> End 由战报回传触发，不走这里。
type PhaseService struct {
	battles      BattleRepo
	distribution *service.DistributionModel
	scheduler    *service.BattleScheduler
	launcher     GameServerLauncher
	clock        service.Clock
	log          logx.Logger

	battleSlots    int
	prepDuration   time.Duration
	hiringDuration time.Duration
}

func NewPhaseService(
	battles BattleRepo,
	distribution *service.DistributionModel,
	scheduler *service.BattleScheduler,
	launcher GameServerLauncher,
	clock service.Clock,
	log logx.Logger,
	battleSlots int,
	prepDuration, hiringDuration time.Duration,
) *PhaseService {
	return &PhaseService{
		battles:        battles,
		distribution:   distribution,
		scheduler:      scheduler,
		launcher:       launcher,
		clock:          clock,
		log:            log,
		battleSlots:    battleSlots,
		prepDuration:   prepDuration,
		hiringDuration: hiringDuration,
	}
}

// AdvanceBattlePhases 推进一个阶段 tick。
func (s *PhaseService) AdvanceBattlePhases(ctx context.Context) error {
	battles, err := s.battles.ListDuePhaseChange(ctx, s.clock.Now(), s.prepDuration, s.hiringDuration)
	if err != nil {
		return ErrUnavailable.WithCause(err)
	}

	for _, battle := range battles {
		if err := ctx.Err(); err != nil {
			return err
		}

		oldPhase := battle.Phase
		switch battle.Phase {
		case domain.BattlePreparation:
			s.enterHiring(battle)
		case domain.BattleHiring:
			s.enterScheduled(ctx, battle)
		case domain.BattleScheduled:
			if !s.enterLive(ctx, battle) {
				continue // 拉起实例失败，下个 tick 重试
			}
		default:
			continue
		}

		s.log.WithContext(ctx).Info("战局阶段推进",
			zap.Int64("battleId", battle.ID),
			zap.String("from", oldPhase.String()), zap.String("to", battle.Phase.String()))
	}

	if err := s.battles.Save(ctx, battles...); err != nil {
		return ErrUnavailable.WithCause(err)
	}
	return nil
}

// enterHiring 分配参战名额，清掉还没裁决的参战方申请。
func (s *PhaseService) enterHiring(battle *domain.Battle) {
	// todo 名额池应随双方兵力规模浮动
	s.distribution.DistributeParticipants(battle.Fighters, s.battleSlots)

	for _, application := range battle.FighterApplications {
		if application.Status == domain.ApplicationPending {
			application.Status = domain.ApplicationDeclined
		}
	}

	battle.Phase = domain.BattleHiring
}

// enterScheduled 排开战时刻，清掉还没裁决的雇佣兵申请。
func (s *PhaseService) enterScheduled(ctx context.Context, battle *domain.Battle) {
	if err := s.scheduler.ScheduleBattle(battle); err != nil {
		// 排期失败不阻断批次；没排上时刻的战局会停在 Scheduled
		s.log.WithContext(ctx).Warn("战局排期失败",
			zap.Int64("battleId", battle.ID), zap.Error(err))
	}

	for _, application := range battle.MercenaryApplications {
		if application.Status == domain.ApplicationPending {
			application.Status = domain.ApplicationDeclined
		}
	}

	battle.Phase = domain.BattleScheduled
}

func (s *PhaseService) enterLive(ctx context.Context, battle *domain.Battle) bool {
	if err := s.launcher.Launch(ctx, battle); err != nil {
		s.log.WithContext(ctx).Warn("战斗实例拉起失败",
			zap.Int64("battleId", battle.ID), zap.Error(err))
		return false
	}
	battle.Phase = domain.BattleLive
	return true
}
