// Package ws 把每个行军 tick 后的大地图快照推给在线客户端。
// 连接按队伍注册，同一队伍允许多个连接（多端登录）。
package ws

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"Strategus/internal/shared/transport/http/middleware"
	"Strategus/internal/strategus/app"
	"Strategus/modules/kit/logx"
)

const UpdateMsg = "strategus.update"

type pushEnvelope struct {
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

type Hub struct {
	mu        sync.RWMutex
	clients   map[int64]map[*Client]struct{}
	snapshots *app.SnapshotService
	parties   app.PartyRepo
	log       logx.Logger
}

func NewHub(snapshots *app.SnapshotService, parties app.PartyRepo, log logx.Logger) *Hub {
	return &Hub{
		clients:   make(map[int64]map[*Client]struct{}),
		snapshots: snapshots,
		parties:   parties,
		log:       log,
	}
}

// Handle 升级 websocket 连接。JWT 鉴权由路由上的中间件完成，
// 这里只校验 partyId 归属。
func (h *Hub) Handle(c *gin.Context) {
	partyID, err := strconv.ParseInt(c.Query("partyId"), 10, 64)
	if err != nil || partyID <= 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	party, err := h.parties.Get(c.Request.Context(), partyID)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if party.UserID != middleware.UID(c) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	upgrader := websocket.Upgrader{
		// 允许所有CORS跨域请求
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	client := newClient(h, conn, partyID, h.log)
	h.register(client)
	client.run()
}

// PushUpdates 给所有在线连接推一份各自视角的快照。
// 同一队伍的多个连接共享同一次快照计算。
func (h *Hub) PushUpdates(ctx context.Context) {
	h.mu.RLock()
	byParty := make(map[int64][]*Client, len(h.clients))
	for partyID, conns := range h.clients {
		for c := range conns {
			byParty[partyID] = append(byParty[partyID], c)
		}
	}
	h.mu.RUnlock()

	for partyID, conns := range byParty {
		update, err := h.snapshots.GetUpdate(ctx, partyID)
		if err != nil {
			h.log.WithContext(ctx).Error("推送快照失败",
				zap.Int64("partyId", partyID), zap.Error(err))
			continue
		}
		for _, c := range conns {
			c.push(UpdateMsg, update)
		}
	}
}

// Shutdown 关闭所有连接，停服时调用。
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conns := range h.clients {
		for c := range conns {
			c.close()
		}
	}
	h.clients = make(map[int64]map[*Client]struct{})
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[c.partyID]
	if conns == nil {
		conns = make(map[*Client]struct{})
		h.clients[c.partyID] = conns
	}
	conns[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[c.partyID]
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.clients, c.partyID)
	}
}
