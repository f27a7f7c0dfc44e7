package actors

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"Strategus/internal/strategus/app"
	"Strategus/modules/kit/logx"
)

// tick 消息。所有大地图推进都经由同一个 actor 串行执行，
// 行军/阶段/募兵之间不会并发改同一支队伍。
type MoveTick struct{ Delta time.Duration }
type PhaseTick struct{}
type RecruitTick struct{ Delta time.Duration }

// UpdatePusher 在一次行军 tick 落库后把最新快照推给在线客户端。
type UpdatePusher interface {
	PushUpdates(ctx context.Context)
}

// TickActor 驱动 Strategus 世界前进。
type TickActor struct {
	movement *app.MovementService
	phases   *app.PhaseService
	troops   *app.TroopsService
	pusher   UpdatePusher
	log      logx.Logger
}

func NewTickActor(
	movement *app.MovementService,
	phases *app.PhaseService,
	troops *app.TroopsService,
	pusher UpdatePusher,
	log logx.Logger,
) *TickActor {
	return &TickActor{
		movement: movement,
		phases:   phases,
		troops:   troops,
		pusher:   pusher,
		log:      log,
	}
}

func (a *TickActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.log.Info("strategus tick actor started")
	case *actor.Stopping:
		a.log.Info("strategus tick actor stopping")
	case MoveTick:
		if err := a.movement.AdvanceParties(context.Background(), msg.Delta); err != nil {
			a.log.Error("行军 tick 失败", zap.Error(err))
			return
		}
		if a.pusher != nil {
			a.pusher.PushUpdates(context.Background())
		}
	case PhaseTick:
		if err := a.phases.AdvanceBattlePhases(context.Background()); err != nil {
			a.log.Error("战局阶段 tick 失败", zap.Error(err))
		}
	case RecruitTick:
		if err := a.troops.GrowTroops(context.Background(), msg.Delta); err != nil {
			a.log.Error("募兵 tick 失败", zap.Error(err))
		}
	}
}
