package gameserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"Strategus/internal/shared/serverconfig"
	"Strategus/internal/strategus/domain"
	"Strategus/modules/kit/logx"
)

// Launcher 通知战斗实例管理端拉起一场已到点的战局。
// 对端返回 2xx 即视为交接成功，之后由实例通过 ClaimBattle 回头认领。
type Launcher struct {
	url    string
	client *http.Client
	log    logx.Logger
}

func NewLauncher(cfg serverconfig.GameServerConfig, log logx.Logger) *Launcher {
	timeout := time.Duration(cfg.TimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Launcher{
		url:    cfg.LauncherURL,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

type launchRequest struct {
	BattleID     int64      `json:"battleId"`
	Region       string     `json:"region"`
	Position     [2]float64 `json:"position"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
}

func (l *Launcher) Launch(ctx context.Context, battle *domain.Battle) error {
	if l.url == "" {
		return fmt.Errorf("gameserver launcher url is empty")
	}

	payload, err := json.Marshal(launchRequest{
		BattleID:     battle.ID,
		Region:       battle.Region.String(),
		Position:     battle.Position,
		ScheduledFor: battle.ScheduledFor,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gameserver launcher status %d", resp.StatusCode)
	}
	l.log.WithContext(ctx).Info("战局已交接给战斗实例",
		zap.Int64("battleId", battle.ID), zap.String("region", battle.Region.String()))
	return nil
}
