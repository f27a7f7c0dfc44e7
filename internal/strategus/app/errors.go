package app

import "Strategus/modules/kit/errx"

// Code 应用层错误码（贴近对外协议语义）。
type Code = errx.Code

const (
	CodePartyInBattle            Code = "STRATEGUS_PARTY_IN_BATTLE"
	CodePartyNotInSight          Code = "STRATEGUS_PARTY_NOT_IN_SIGHT"
	CodeInvalidOrderSequence     Code = "STRATEGUS_INVALID_ORDER_SEQUENCE"
	CodeInvalidOrder             Code = "STRATEGUS_INVALID_ORDER"
	CodeNotEnoughResources       Code = "STRATEGUS_NOT_ENOUGH_RESOURCES"
	CodePartyNotAFighter         Code = "STRATEGUS_PARTY_NOT_A_FIGHTER"
	CodeSidesMismatch            Code = "STRATEGUS_SIDES_MISMATCH"
	CodeBattleInvalidPhase       Code = "STRATEGUS_BATTLE_INVALID_PHASE"
	CodeApplicationClosed        Code = "STRATEGUS_APPLICATION_CLOSED"
	CodeParticipantSlotsExceeded Code = "STRATEGUS_PARTICIPANT_SLOTS_EXCEEDED"
	CodeNotCommander             Code = "STRATEGUS_NOT_COMMANDER"
	CodeOfferNotAllowed          Code = "STRATEGUS_OFFER_NOT_ALLOWED"
	CodeOfferInvalidStatus       Code = "STRATEGUS_OFFER_INVALID_STATUS"
	CodeOfferInvalidAmount       Code = "STRATEGUS_OFFER_INVALID_AMOUNT"
	CodeBattleAlreadyClaimed     Code = "STRATEGUS_BATTLE_ALREADY_CLAIMED"
)

// 哨兵错误：禁止直接改其 data/cause，用 WithData/WithCause 派生。
var (
	// 无效状态类
	ErrPartyInBattle        = errx.NewBiz(CodePartyInBattle, "队伍在战局中，无法接受新指令")
	ErrInvalidOrderSequence = errx.NewBiz(CodeInvalidOrderSequence, "只有 MoveToPoint 可以位于队列非末位")
	ErrInvalidOrder         = errx.NewBiz(CodeInvalidOrder, "指令缺少必要目标")
	ErrPartyNotInSight      = errx.NewBiz(CodePartyNotInSight, "目标队伍不在视野内")
	ErrNotEnoughResources   = errx.NewBiz(CodeNotEnoughResources, "队伍资源不足")
	ErrPartyNotAFighter     = errx.NewBiz(CodePartyNotAFighter, "队伍不是该战局的参战方")
	ErrSidesMismatch        = errx.NewBiz(CodeSidesMismatch, "申请与裁决方不在同一侧")
	ErrBattleInvalidPhase   = errx.NewBiz(CodeBattleInvalidPhase, "战局阶段不允许该操作")
	ErrApplicationClosed    = errx.NewBiz(CodeApplicationClosed, "申请已不在待裁决状态")
	ErrNotCommander         = errx.NewBiz(CodeNotCommander, "只有指挥官可以执行该操作")
	ErrOfferNotAllowed      = errx.NewBiz(CodeOfferNotAllowed, "报价不是发给该队伍的")
	ErrOfferInvalidStatus   = errx.NewBiz(CodeOfferInvalidStatus, "报价不在待应答状态")
	ErrOfferInvalidAmount   = errx.NewBiz(CodeOfferInvalidAmount, "应答数量超出报价范围")
	ErrBattleAlreadyClaimed = errx.NewBiz(CodeBattleAlreadyClaimed, "战局已被其他实例认领")

	// 容量类
	ErrParticipantSlotsExceeded = errx.NewBiz(CodeParticipantSlotsExceeded, "该侧参战名额已满")

	// 复用 kit 的统一系统码
	ErrUnavailable = errx.ErrUnavailable
)
