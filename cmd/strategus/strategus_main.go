package main

import (
	"Strategus/internal/shared/logs"
	"Strategus/internal/shared/serverconfig"
	transporthttp "Strategus/internal/shared/transport/http"
	"Strategus/internal/shared/transport/http/middleware"
	"Strategus/internal/shared/utils"
	strategusactors "Strategus/internal/strategus/actors"
	"Strategus/internal/strategus/app"
	"Strategus/internal/strategus/infra/activity"
	"Strategus/internal/strategus/infra/gameserver"
	"Strategus/internal/strategus/infra/persistence"
	"Strategus/internal/strategus/interfaces/ws"
	"Strategus/internal/strategus/service"
	"Strategus/modules/kit/logx"
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const tickActorName = "strategus-tick"

func main() {
	serverconfig.Load()
	if err := logs.Init("strategus", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	cfg := serverconfig.Conf
	logic := cfg.Logic

	tickHost := cfg.TickServer.Host
	if tickHost == "" {
		tickHost = "0.0.0.0"
	}
	tickAddr := fmt.Sprintf("%s:%d", tickHost, cfg.TickServer.Port)

	baseLogger := logx.NewZapLogger(logs.Logger())

	repos, cleanup, err := persistence.Open(cfg.TickServer.Storage, cfg, logs.Logger())
	if err != nil {
		logs.Fatal("open storage failed", zap.Error(err))
	}
	defer cleanup()

	snowflake, err := utils.DefaultSnowflake()
	if err != nil {
		logs.Fatal("init snowflake failed", zap.Error(err))
	}
	nextID := app.NextID(snowflake.NextID)

	clock := service.SystemClock{}
	routing := service.NewRouting()
	speed := service.NewSpeedModel(routing)
	scheduler := service.NewBattleScheduler(clock, service.SystemRand{},
		hours(logic.BattleScheduleLeadHours))

	activityLog := activity.NewLog(baseLogger)
	launcher := gameserver.NewLauncher(cfg.GameServer, baseLogger)

	movement := app.NewMovementService(
		repos.Parties, repos.Battles, repos.Terrains, repos.Offers,
		routing, speed, clock, activityLog, baseLogger, nextID,
		logic.ViewDistance, logic.InteractionDistance,
	)
	phases := app.NewPhaseService(
		repos.Battles, service.NewDistributionModel(), scheduler, launcher,
		clock, baseLogger, logic.BattleSlots,
		hours(logic.BattlePreparationHours), hours(logic.BattleHiringHours),
	)
	troops := app.NewTroopsService(repos.Parties, baseLogger,
		logic.TroopRecruitmentPerHour, logic.MaxPartyTroops)
	snapshots := app.NewSnapshotService(repos.Parties, repos.Settlements, repos.Battles,
		speed, logic.ViewDistance)

	hub := ws.NewHub(snapshots, repos.Parties, baseLogger)

	system := protoactor.NewActorSystem()
	root := system.Root
	props := protoactor.PropsFromProducer(func() protoactor.Actor {
		return strategusactors.NewTickActor(movement, phases, troops, hub, baseLogger)
	})
	tickPID, err := root.SpawnNamed(props, tickActorName)
	if err != nil {
		logs.Fatal("spawn tick actor failed", zap.Error(err))
	}
	stopTickers := strategusactors.StartTickers(root, tickPID, cfg.TickServer)

	httpServer := transporthttp.NewHttpServer(tickAddr, nil, baseLogger)
	httpServer.Group().GET("/ws", middleware.JWTAuth(), hub.Handle)

	logs.Info("strategus tick server started",
		zap.String("addr", tickAddr),
		zap.String("storage", cfg.TickServer.Storage),
		zap.String("pid", tickPID.String()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("strategus server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	stopTickers()
	hub.Shutdown()
	system.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
