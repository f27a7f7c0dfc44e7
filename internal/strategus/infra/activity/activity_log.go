package activity

import (
	"context"

	"go.uber.org/zap"

	"Strategus/internal/strategus/domain"
	"Strategus/modules/kit/logx"
)

// Log 把玩法事件写进结构化日志（独立的 activity 流，供运营侧检索）。
type Log struct {
	log logx.Logger
}

func NewLog(log logx.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) BattleCreated(ctx context.Context, battle *domain.Battle, attackerPartyID int64) {
	l.log.WithContext(ctx).Info("activity:battle_created",
		zap.Int64("battleId", battle.ID),
		zap.Int64("attackerPartyId", attackerPartyID),
		zap.String("region", battle.Region.String()),
		zap.Float64("x", battle.Position[0]),
		zap.Float64("y", battle.Position[1]),
	)
}

func (l *Log) ApplicationResponded(ctx context.Context, battleID, applicationID, responderPartyID int64, accepted bool) {
	l.log.WithContext(ctx).Info("activity:application_responded",
		zap.Int64("battleId", battleID),
		zap.Int64("applicationId", applicationID),
		zap.Int64("responderPartyId", responderPartyID),
		zap.Bool("accepted", accepted),
	)
}
