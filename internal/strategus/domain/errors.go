package domain

import "Strategus/modules/kit/errx"

// Code 表示领域错误码（对外语义的唯一来源之一）。
type Code = errx.Code

const (
	CodePartyNotFound       Code = "STRATEGUS_PARTY_NOT_FOUND"
	CodeSettlementNotFound  Code = "STRATEGUS_SETTLEMENT_NOT_FOUND"
	CodeBattleNotFound      Code = "STRATEGUS_BATTLE_NOT_FOUND"
	CodeApplicationNotFound Code = "STRATEGUS_APPLICATION_NOT_FOUND"
	CodeOfferNotFound       Code = "STRATEGUS_TRANSFER_OFFER_NOT_FOUND"
	// CodeSystemUnavailable 复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

type Error = errx.Error

var (
	ErrPartyNotFound       = errx.NewBiz(CodePartyNotFound, "")
	ErrSettlementNotFound  = errx.NewBiz(CodeSettlementNotFound, "")
	ErrBattleNotFound      = errx.NewBiz(CodeBattleNotFound, "")
	ErrApplicationNotFound = errx.NewBiz(CodeApplicationNotFound, "")
	ErrOfferNotFound       = errx.NewBiz(CodeOfferNotFound, "")
	ErrSystemUnavailable   = errx.ErrUnavailable
)
