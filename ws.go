package notice_sdk

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 跨域交给宿主的网关/中间件处理
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsClient 一条 WS 连接；同一接收者允许多端同时在线
type wsClient struct {
	receiver string
	conn     *websocket.Conn
	send     chan []byte
	server   *WsServer
}

// WsServer 推送中心：按接收者标识分发新待办/私信事件。
// 纯下行通道，不处理客户端上行消息。
type WsServer struct {
	mu      sync.RWMutex
	clients map[string]map[*wsClient]struct{}

	register   chan *wsClient
	unregister chan *wsClient
}

func NewWsServer() *WsServer {
	return &WsServer{
		clients:    make(map[string]map[*wsClient]struct{}),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
	}
}

// Run 事件循环，engine 初始化时起一个 goroutine 跑
func (s *WsServer) Run() {
	for {
		select {
		case c := <-s.register:
			s.mu.Lock()
			if s.clients[c.receiver] == nil {
				s.clients[c.receiver] = make(map[*wsClient]struct{})
			}
			s.clients[c.receiver][c] = struct{}{}
			s.mu.Unlock()
		case c := <-s.unregister:
			s.mu.Lock()
			if set, ok := s.clients[c.receiver]; ok {
				if _, ok := set[c]; ok {
					delete(set, c)
					close(c.send)
					if len(set) == 0 {
						delete(s.clients, c.receiver)
					}
				}
			}
			s.mu.Unlock()
		}
	}
}

// SendToReceiver 给某接收者的全部在线连接推消息；不在线直接丢弃（落库是事实来源）
func (s *WsServer) SendToReceiver(receiver string, message []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients[receiver] {
		select {
		case c.send <- message:
		default:
			// 写缓冲满说明连接已经失速，放弃这条消息
		}
	}
}

// ServeWS 升级 WS 连接；receiver 必须是宿主鉴权后的接收者标识
func (s *WsServer) ServeWS(w http.ResponseWriter, r *http.Request, receiver string) {
	if receiver == "" {
		http.Error(w, "missing receiver", http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}

	c := &wsClient{receiver: receiver, conn: conn, send: make(chan []byte, 64), server: s}
	s.register <- c

	go c.writePump()
	go c.readPump()
}

func (c *wsClient) readPump() {
	defer func() {
		c.server.unregister <- c
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		// 只消费 control frame，业务上行一律忽略
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
