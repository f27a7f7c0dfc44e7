package middleware

import (
	"Strategus/modules/kit/logx"
	"Strategus/modules/kit/tracex"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLog 统一写访问日志，并把 trace_id 注入请求上下文。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		action := c.Request.Method + " " + route

		ctx := tracex.WithTraceID(c.Request.Context(), tracex.NewTraceID())
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		logx.ReportAccessWithLoggerContext(ctx, log, action, bizCodeFromStatus(c.Writer.Status()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func bizCodeFromStatus(status int) int {
	if status < 400 {
		return 0
	}
	return status
}
