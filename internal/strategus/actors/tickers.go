package actors

import (
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"Strategus/internal/shared/serverconfig"
)

// StartTickers 按配置周期向 tick actor 投递消息，返回停止函数。
// 行军/募兵的 delta 用真实流逝时间，进程卡顿时不会丢推进量。
func StartTickers(root *actor.RootContext, pid *actor.PID, cfg serverconfig.TickServerConfig) func() {
	stop := make(chan struct{})

	moveEvery := secondsOr(cfg.MoveTickS, 1)
	phaseEvery := secondsOr(cfg.PhaseTickS, 60)
	recruitEvery := secondsOr(cfg.RecruitTickS, 60)

	go func() {
		moveTicker := time.NewTicker(moveEvery)
		phaseTicker := time.NewTicker(phaseEvery)
		recruitTicker := time.NewTicker(recruitEvery)
		defer moveTicker.Stop()
		defer phaseTicker.Stop()
		defer recruitTicker.Stop()

		lastMove := time.Now()
		lastRecruit := time.Now()
		for {
			select {
			case now := <-moveTicker.C:
				root.Send(pid, MoveTick{Delta: now.Sub(lastMove)})
				lastMove = now
			case <-phaseTicker.C:
				root.Send(pid, PhaseTick{})
			case now := <-recruitTicker.C:
				root.Send(pid, RecruitTick{Delta: now.Sub(lastRecruit)})
				lastRecruit = now
			case <-stop:
				return
			}
		}
	}()

	return func() { close(stop) }
}

func secondsOr(s int, fallback int) time.Duration {
	if s <= 0 {
		s = fallback
	}
	return time.Duration(s) * time.Second
}
