package main

import (
	"Strategus/internal/shared/logs"
	"Strategus/internal/shared/serverconfig"
	transporthttp "Strategus/internal/shared/transport/http"
	"Strategus/internal/shared/utils"
	"Strategus/internal/strategus/app"
	"Strategus/internal/strategus/infra/activity"
	"Strategus/internal/strategus/infra/notification"
	"Strategus/internal/strategus/infra/persistence"
	"Strategus/internal/strategus/interfaces/handler"
	"Strategus/internal/strategus/service"
	"Strategus/modules/kit/logx"
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	serverconfig.Load()
	if err := logs.Init("api", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	cfg := serverconfig.Conf
	logic := cfg.Logic

	apiHost := cfg.APIServer.Host
	if apiHost == "" {
		apiHost = "0.0.0.0"
	}
	apiAddr := fmt.Sprintf("%s:%d", apiHost, cfg.APIServer.Port)

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

	speed := service.NewSpeedModel(service.NewRouting())
	activityLog := activity.NewLog(baseLogger)
	notifier := notification.NewLogNotifier(baseLogger)

	orders := app.NewOrdersService(repos.Parties, repos.Settlements, repos.Battles, repos.Offers,
		baseLogger, nextID, logic.ViewDistance)
	applications := app.NewApplicationService(repos.Parties, repos.Battles,
		activityLog, notifier, baseLogger, nextID)
	transfers := app.NewTransferService(repos.Parties, repos.Offers, baseLogger)
	battles := app.NewBattleService(repos.Battles, baseLogger, nextID)
	snapshots := app.NewSnapshotService(repos.Parties, repos.Settlements, repos.Battles,
		speed, logic.ViewDistance)

	strategusHandler := handler.NewStrategus(
		orders, applications, transfers, battles, snapshots,
		repos.Parties, baseLogger,
	)

	httpServer := transporthttp.NewHttpServer(apiAddr, nil, baseLogger)
	strategusHandler.RegisterRoutes(httpServer.Group())

	logs.Info("strategus api server started",
		zap.String("addr", apiAddr),
		zap.String("storage", cfg.TickServer.Storage),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("api server start failed: %w", err)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
}
