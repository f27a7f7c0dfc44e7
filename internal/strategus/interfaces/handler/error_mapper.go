package handler

import (
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"Strategus/internal/strategus/app"
	"Strategus/internal/strategus/domain"
	"Strategus/modules/kit/errx"
	"Strategus/modules/kit/logx"
)

// response 统一响应体。code 为空串表示成功。
type response struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func (h *Strategus) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, response{Data: data})
}

func (h *Strategus) fail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, response{Code: code, Msg: msg})
}

func (h *Strategus) error(c *gin.Context, err error) {
	ctx := c.Request.Context()
	status := httpStatusOf(err)
	action := c.Request.Method + " " + c.FullPath()

	var e *errx.Error
	if errors.As(err, &e) {
		if status >= nethttp.StatusInternalServerError {
			// 系统错误打完整错误元信息（cause 链、发生处栈），但不把内部细节透给客户端
			logx.ReportSysErrorWithLoggerContext(ctx, h.log, logx.NewSysLog(action, err))
			h.fail(c, status, e.CodeText(), "系统繁忙，请稍后重试")
			return
		}
		logx.ReportBizWithLoggerContext(ctx, h.log, logx.NewBizLog(action, e.CodeText(), e.Msg()))
		h.fail(c, status, e.CodeText(), e.Msg())
		return
	}

	logx.ReportSysErrorWithLoggerContext(ctx, h.log, logx.NewSysLog(action, err))
	h.fail(c, nethttp.StatusInternalServerError, "INTERNAL", "系统繁忙，请稍后重试")
}

func httpStatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrPartyNotFound),
		errors.Is(err, domain.ErrSettlementNotFound),
		errors.Is(err, domain.ErrBattleNotFound),
		errors.Is(err, domain.ErrApplicationNotFound),
		errors.Is(err, domain.ErrOfferNotFound):
		return nethttp.StatusNotFound

	case errors.Is(err, app.ErrPartyNotInSight),
		errors.Is(err, app.ErrInvalidOrderSequence),
		errors.Is(err, app.ErrInvalidOrder),
		errors.Is(err, app.ErrNotEnoughResources),
		errors.Is(err, app.ErrSidesMismatch),
		errors.Is(err, app.ErrOfferInvalidAmount):
		return nethttp.StatusBadRequest

	case errors.Is(err, app.ErrPartyNotAFighter),
		errors.Is(err, app.ErrNotCommander),
		errors.Is(err, app.ErrOfferNotAllowed):
		return nethttp.StatusForbidden

	case errors.Is(err, app.ErrPartyInBattle),
		errors.Is(err, app.ErrBattleInvalidPhase),
		errors.Is(err, app.ErrApplicationClosed),
		errors.Is(err, app.ErrParticipantSlotsExceeded),
		errors.Is(err, app.ErrOfferInvalidStatus),
		errors.Is(err, app.ErrBattleAlreadyClaimed):
		return nethttp.StatusConflict

	case errors.Is(err, app.ErrUnavailable):
		return nethttp.StatusServiceUnavailable

	default:
		return nethttp.StatusInternalServerError
	}
}
