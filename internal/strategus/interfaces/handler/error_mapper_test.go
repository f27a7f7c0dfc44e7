package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Strategus/internal/strategus/app"
	"Strategus/internal/strategus/domain"
	"Strategus/modules/kit/logx"
)

type logEntry struct {
	level  string
	msg    string
	fields []zap.Field
}

type recordingLogger struct {
	entries *[]logEntry
}

func newRecordingLogger() *recordingLogger {
	entries := make([]logEntry, 0, 4)
	return &recordingLogger{entries: &entries}
}

func (l *recordingLogger) record(level, msg string, fields []zap.Field) {
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Info(msg string, fields ...zap.Field)        { l.record("info", msg, fields) }
func (l *recordingLogger) Error(msg string, fields ...zap.Field)       { l.record("error", msg, fields) }
func (l *recordingLogger) Debug(msg string, fields ...zap.Field)       { l.record("debug", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields ...zap.Field)        { l.record("warn", msg, fields) }
func (l *recordingLogger) WithContext(ctx context.Context) logx.Logger { return l }

func fieldString(fields []zap.Field, key string) string {
	for _, f := range fields {
		if f.Key == key {
			return f.String
		}
	}
	return ""
}

func errorTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/strategus/parties/1/orders", nil)
	return c, w
}

func TestError_业务拒绝打biz日志并透出语义(t *testing.T) {
	log := newRecordingLogger()
	h := &Strategus{log: log}
	c, w := errorTestContext(t)

	h.error(c, app.ErrNotCommander)

	if w.Code != http.StatusForbidden {
		t.Fatalf("期望 403, got=%d", w.Code)
	}
	var body response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应应为 json: %v", err)
	}
	if body.Code != string(app.CodeNotCommander) {
		t.Fatalf("响应 code 不符: %q", body.Code)
	}

	entries := *log.entries
	if len(entries) != 1 || entries[0].level != "info" {
		t.Fatalf("业务拒绝应打一条 INFO, got=%+v", entries)
	}
	if got := fieldString(entries[0].fields, "err_type"); got != "biz" {
		t.Fatalf("err_type 期望 biz, got=%q", got)
	}
	if got := fieldString(entries[0].fields, "reason"); got != string(app.CodeNotCommander) {
		t.Fatalf("reason 期望错误码, got=%q", got)
	}
}

func TestError_系统错误打sys日志且不透内部细节(t *testing.T) {
	log := newRecordingLogger()
	h := &Strategus{log: log}
	c, w := errorTestContext(t)

	h.error(c, app.ErrUnavailable.WithCause(errors.New("db down")))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("期望 503, got=%d", w.Code)
	}
	var body response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应应为 json: %v", err)
	}
	if body.Msg != "系统繁忙，请稍后重试" {
		t.Fatalf("系统错误不应透出内部信息, got=%q", body.Msg)
	}

	entries := *log.entries
	if len(entries) != 1 || entries[0].level != "error" {
		t.Fatalf("系统错误应打一条 ERROR, got=%+v", entries)
	}
	if got := fieldString(entries[0].fields, "err_type"); got != "sys" {
		t.Fatalf("err_type 期望 sys, got=%q", got)
	}
	if got := fieldString(entries[0].fields, "error_code"); got == "" {
		t.Fatalf("sys 日志应带 error_code")
	}
}

func TestHttpStatusOf_按错误语义分类(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrPartyNotFound, http.StatusNotFound},
		{app.ErrInvalidOrderSequence, http.StatusBadRequest},
		{app.ErrBattleAlreadyClaimed, http.StatusConflict},
		{app.ErrUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := httpStatusOf(tc.err); got != tc.want {
			t.Fatalf("%v: 期望 %d, got=%d", tc.err, tc.want, got)
		}
	}
}
