package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
)

const (
	EventGradeNotification = "ReceiveGradeNotification"
	EventAdminNotification = "ReceiveAdminNotification"

	AdminGroup    = "admin"
	pubsubChannel = "vle:notifications"
)

// Event is a live-channel message pushed to subscribed clients.
// Delivery is best effort and fully decoupled from persistence.
type Event struct {
	Event       string `json:"event"`
	Message     string `json:"message"`
	ModuleID    uint   `json:"moduleId,omitempty"`
	ModuleTitle string `json:"moduleTitle,omitempty"`
}

// clientCommand is what connected clients send to manage group membership
type clientCommand struct {
	Action   string `json:"action"` // join_module, leave_module, join_admin, leave_admin
	ModuleID uint   `json:"moduleId"`
}

// Hub tracks websocket connections per group. When a Redis client is
// configured, publishes go through pub/sub so every instance's sockets get
// the event; otherwise delivery stays in-process.
type Hub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]bool
	rdb    *redis.Client
}

// Live is the global hub instance, set from main
var Live *Hub

func NewHub(rdb *redis.Client) *Hub {
	h := &Hub{
		groups: make(map[string]map[*websocket.Conn]bool),
		rdb:    rdb,
	}
	if rdb != nil {
		go h.subscribeLoop()
	}
	return h
}

func ModuleGroup(moduleID uint) string {
	return fmt.Sprintf("module:%d", moduleID)
}

// HandleSocket is the websocket read loop: clients join and leave groups,
// the server pushes events. Runs until the connection drops.
func (h *Hub) HandleSocket(conn *websocket.Conn) {
	defer func() {
		h.dropConn(conn)
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd clientCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			continue
		}

		switch cmd.Action {
		case "join_module":
			h.join(ModuleGroup(cmd.ModuleID), conn)
		case "leave_module":
			h.leave(ModuleGroup(cmd.ModuleID), conn)
		case "join_admin":
			h.join(AdminGroup, conn)
		case "leave_admin":
			h.leave(AdminGroup, conn)
		}
	}
}

// PublishGrade pushes a grade broadcast to the module's group
func (h *Hub) PublishGrade(moduleID uint, message, moduleTitle string) {
	h.publish(ModuleGroup(moduleID), Event{
		Event:       EventGradeNotification,
		Message:     message,
		ModuleID:    moduleID,
		ModuleTitle: moduleTitle,
	})
}

// PublishAdmin pushes an admin broadcast to the admin group
func (h *Hub) PublishAdmin(message string) {
	h.publish(AdminGroup, Event{
		Event:   EventAdminNotification,
		Message: message,
	})
}

type envelope struct {
	Group string `json:"group"`
	Event Event  `json:"event"`
}

func (h *Hub) publish(group string, event Event) {
	if h.rdb == nil {
		h.deliverLocal(group, event)
		return
	}

	payload, err := json.Marshal(envelope{Group: group, Event: event})
	if err != nil {
		log.Printf("[REALTIME] Failed to encode event: %v", err)
		return
	}
	if err := h.rdb.Publish(context.Background(), pubsubChannel, payload).Err(); err != nil {
		log.Printf("[REALTIME] Redis publish failed, delivering locally: %v", err)
		h.deliverLocal(group, event)
	}
}

func (h *Hub) subscribeLoop() {
	sub := h.rdb.Subscribe(context.Background(), pubsubChannel)
	for msg := range sub.Channel() {
		var env envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			log.Printf("[REALTIME] Dropping malformed event: %v", err)
			continue
		}
		h.deliverLocal(env.Group, env.Event)
	}
}

func (h *Hub) deliverLocal(group string, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.groups[group] {
		if err := conn.WriteJSON(event); err != nil {
			// Dead connection, drop it from every group
			for _, members := range h.groups {
				delete(members, conn)
			}
		}
	}
}

func (h *Hub) join(group string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.groups[group] == nil {
		h.groups[group] = make(map[*websocket.Conn]bool)
	}
	h.groups[group][conn] = true
}

func (h *Hub) leave(group string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.groups[group], conn)
}

func (h *Hub) dropConn(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, members := range h.groups {
		delete(members, conn)
	}
}
