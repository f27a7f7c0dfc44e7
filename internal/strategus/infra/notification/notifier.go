package notification

import (
	"context"

	"go.uber.org/zap"

	"Strategus/modules/kit/logx"
)

// LogNotifier 是通知出口的占位实现：只落日志。
// todo 接站内信服务后替换成真实投递
type LogNotifier struct {
	log logx.Logger
}

func NewLogNotifier(log logx.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) ApplicationResponded(ctx context.Context, userID, battleID int64, accepted bool) {
	n.log.WithContext(ctx).Info("notify:application_responded",
		zap.Int64("userId", userID),
		zap.Int64("battleId", battleID),
		zap.Bool("accepted", accepted),
	)
}
