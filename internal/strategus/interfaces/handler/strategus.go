package handler

import (
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"Strategus/internal/shared/transport/http/middleware"
	"Strategus/internal/strategus/app"
	"Strategus/internal/strategus/app/model"
	"Strategus/modules/kit/logx"
	"Strategus/modules/kit/tracex"
)

// Strategus 暴露大地图的指令/裁决/快照接口。
// 写路径都挂在 /parties/:partyId 下，归属校验在进服务之前做掉。
type Strategus struct {
	orders       *app.OrdersService
	applications *app.ApplicationService
	transfers    *app.TransferService
	battles      *app.BattleService
	snapshots    *app.SnapshotService
	parties      app.PartyRepo
	log          logx.Logger
}

func NewStrategus(
	orders *app.OrdersService,
	applications *app.ApplicationService,
	transfers *app.TransferService,
	battles *app.BattleService,
	snapshots *app.SnapshotService,
	parties app.PartyRepo,
	log logx.Logger,
) *Strategus {
	return &Strategus{
		orders:       orders,
		applications: applications,
		transfers:    transfers,
		battles:      battles,
		snapshots:    snapshots,
		parties:      parties,
		log:          log,
	}
}

func (h *Strategus) RegisterRoutes(group *gin.RouterGroup) {
	g := group.Group("/strategus")
	g.Use(middleware.JWTAuth())

	g.GET("/parties/:partyId/update", h.GetUpdate)
	g.PUT("/parties/:partyId/orders", h.UpdateOrders)
	g.PUT("/parties/:partyId/mercenary-applications/:applicationId", h.RespondToMercenaryApplication)
	g.PUT("/parties/:partyId/fighter-applications/:applicationId", h.RespondToFighterApplication)
	g.PUT("/parties/:partyId/transfer-offers/:offerId", h.RespondToTransferOffer)
	g.PUT("/parties/:partyId/battles/:battleId/briefing", h.UpdateSideBriefing)

	// 战斗实例回调，不归属任何队伍
	g.POST("/battles/:battleId/claim", h.ClaimBattle)
}

func (h *Strategus) GetUpdate(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "strategus")
	partyID, ok := h.ownedParty(c)
	if !ok {
		return
	}

	update, err := h.snapshots.GetUpdate(ctx, partyID)
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, update)
}

func (h *Strategus) UpdateOrders(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "strategus")
	partyID, ok := h.ownedParty(c)
	if !ok {
		return
	}

	var req model.UpdatePartyOrdersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "INVALID_PARAM", "参数有误")
		return
	}
	req.PartyID = partyID

	if err := h.orders.UpdatePartyOrders(ctx, req); err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

type respondBody struct {
	Accept bool `json:"accept"`
}

func (h *Strategus) RespondToMercenaryApplication(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "strategus")
	partyID, ok := h.ownedParty(c)
	if !ok {
		return
	}
	applicationID, ok := h.pathID(c, "applicationId")
	if !ok {
		return
	}

	var body respondBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "INVALID_PARAM", "参数有误")
		return
	}

	application, err := h.applications.RespondToMercenaryApplication(ctx, model.RespondToApplicationReq{
		PartyID:       partyID,
		ApplicationID: applicationID,
		Accept:        body.Accept,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, application)
}

func (h *Strategus) RespondToFighterApplication(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "strategus")
	partyID, ok := h.ownedParty(c)
	if !ok {
		return
	}
	applicationID, ok := h.pathID(c, "applicationId")
	if !ok {
		return
	}

	var body respondBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "INVALID_PARAM", "参数有误")
		return
	}

	application, err := h.applications.RespondToFighterApplication(ctx, model.RespondToApplicationReq{
		PartyID:       partyID,
		ApplicationID: applicationID,
		Accept:        body.Accept,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, application)
}

type respondOfferBody struct {
	Accept   bool                       `json:"accept"`
	Accepted *model.TransferOfferUpdate `json:"accepted"`
}

func (h *Strategus) RespondToTransferOffer(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "strategus")
	partyID, ok := h.ownedParty(c)
	if !ok {
		return
	}
	offerID, ok := h.pathID(c, "offerId")
	if !ok {
		return
	}

	var body respondOfferBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "INVALID_PARAM", "参数有误")
		return
	}

	err := h.transfers.RespondToTransferOffer(ctx, model.RespondToTransferOfferReq{
		PartyID:  partyID,
		OfferID:  offerID,
		Accept:   body.Accept,
		Accepted: body.Accepted,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

func (h *Strategus) UpdateSideBriefing(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "strategus")
	partyID, ok := h.ownedParty(c)
	if !ok {
		return
	}
	battleID, ok := h.pathID(c, "battleId")
	if !ok {
		return
	}

	var req model.UpdateSideBriefingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "INVALID_PARAM", "参数有误")
		return
	}
	req.PartyID = partyID
	req.BattleID = battleID

	briefing, err := h.battles.UpdateSideBriefing(ctx, req)
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, briefing)
}

func (h *Strategus) ClaimBattle(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "strategus")
	battleID, ok := h.pathID(c, "battleId")
	if !ok {
		return
	}

	var req model.ClaimBattleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "INVALID_PARAM", "参数有误")
		return
	}
	req.BattleID = battleID

	battle, err := h.battles.ClaimBattle(ctx, req)
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, battle)
}

// ownedParty 解析 :partyId 并确认归当前用户所有。
func (h *Strategus) ownedParty(c *gin.Context) (int64, bool) {
	partyID, ok := h.pathID(c, "partyId")
	if !ok {
		return 0, false
	}

	party, err := h.parties.Get(c.Request.Context(), partyID)
	if err != nil {
		h.error(c, err)
		return 0, false
	}
	if party.UserID != middleware.UID(c) {
		h.fail(c, nethttp.StatusForbidden, "FORBIDDEN", "不是你的队伍")
		return 0, false
	}
	return partyID, true
}

func (h *Strategus) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, nethttp.StatusBadRequest, "INVALID_PARAM", "参数有误")
		return 0, false
	}
	return id, true
}
