package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"foodorder/events"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = 5 * time.Second

var ErrHubClosed = errors.New("order hub closed")

// OrderHub pushes order events to the websocket connections of the customer and the store owner.
type OrderHub struct {
	clients    map[uint]map[*websocket.Conn]bool // userID -> connections
	broadcast  chan events.OrderEvent
	register   chan Subscription
	unregister chan Subscription
	done       chan struct{}
	mu         sync.Mutex
	log        logrus.FieldLogger
}

type Subscription struct {
	Conn   *websocket.Conn
	UserID uint
}

func NewOrderHub(log logrus.FieldLogger) *OrderHub {
	return &OrderHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan events.OrderEvent, 64),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run serves register, unregister and broadcast until ctx is cancelled.
func (h *OrderHub) Run(ctx context.Context) {
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return

		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.UserID] == nil {
				h.clients[sub.UserID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.UserID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			h.drop(sub.UserID, sub.Conn)
			h.mu.Unlock()

		case evt := <-h.broadcast:
			h.mu.Lock()
			h.deliver(evt.UserID, evt)
			if evt.OwnerID != evt.UserID {
				h.deliver(evt.OwnerID, evt)
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues evt for delivery. It implements events.Publisher.
func (h *OrderHub) Publish(ctx context.Context, evt events.OrderEvent) error {
	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}
	select {
	case h.broadcast <- evt:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ClientCount reports the open connections of a user.
func (h *OrderHub) ClientCount(userID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

// caller holds h.mu
func (h *OrderHub) deliver(userID uint, evt events.OrderEvent) {
	for conn := range h.clients[userID] {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(evt); err != nil {
			h.log.WithError(err).WithField("userId", userID).Warn("ws write error")
			h.drop(userID, conn)
		}
	}
}

// caller holds h.mu
func (h *OrderHub) drop(userID uint, conn *websocket.Conn) {
	if _, ok := h.clients[userID][conn]; !ok {
		return
	}
	delete(h.clients[userID], conn)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
	conn.Close()
}

func (h *OrderHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	close(h.done)
	for userID, conns := range h.clients {
		for conn := range conns {
			conn.Close()
		}
		delete(h.clients, userID)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket serves /ws/orders. WSAuthMiddleware must run first.
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade error")
		return
	}

	sub := Subscription{Conn: conn, UserID: userID}
	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}
	go h.listen(sub)
}

// listen discards client frames and unregisters once the connection drops.
func (h *OrderHub) listen(sub Subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).WithField("userId", sub.UserID).Debug("ws read error")
			}
			return
		}
	}
}
