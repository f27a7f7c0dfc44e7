package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"Strategus/modules/kit/logx"
)

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	partyID int64

	outChan   chan *pushEnvelope
	done      chan struct{}
	closeOnce sync.Once
	log       logx.Logger
}

func newClient(hub *Hub, conn *websocket.Conn, partyID int64, log logx.Logger) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		partyID: partyID,
		outChan: make(chan *pushEnvelope, 64),
		done:    make(chan struct{}),
		log:     log,
	}
}

func (c *Client) run() {
	go c.readLoop()
	go c.writeLoop()
}

// push 满了就丢最新一帧，慢消费者等下个 tick 的快照即可。
func (c *Client) push(name string, msg any) {
	select {
	case c.outChan <- &pushEnvelope{Name: name, Msg: msg}:
	case <-c.done:
	default:
	}
}

// readLoop 只用来感知连接断开，客户端发来的数据一律忽略。
func (c *Client) readLoop() {
	defer c.close()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writeLoop() {
	for {
		select {
		case msg := <-c.outChan:
			if err := c.conn.WriteJSON(msg); err != nil {
				c.log.Error("ws write error",
					zap.Int64("partyId", c.partyID), zap.Error(err))
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
		close(c.done)
	})
}
