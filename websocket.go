package hashroute

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rohanthewiz/hashroute/core/ptn"
)

// navMessage is what a client sends when its location changes.
// Replace updates the current fragment without running handlers, mirroring
// a history replacement rather than a navigation.
type navMessage struct {
	Fragment string `json:"fragment"`
	Replace  bool   `json:"replace,omitempty"`
}

// routeEventMsg is pushed to every connected client after a successful
// dispatch. Params use null for slots absent from the match.
type routeEventMsg struct {
	Event  string    `json:"event"`
	Route  string    `json:"route,omitempty"`
	Params []*string `json:"params"`
}

// Bridge is the navigation-watching collaborator for browser clients. It is
// an http.Handler: each connection is upgraded to a websocket, incoming
// fragment changes feed the History, and route events from the hub are
// pushed back out to all clients.
type Bridge struct {
	history  *History
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu    sync.Mutex
	conns map[*wsClient]struct{}
}

// wsClient serializes writes to one connection; gorilla/websocket allows a
// single concurrent writer.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// NewBridge creates a bridge feeding the history and broadcasting events
// from the hub. The hub may be nil when no events should be pushed.
func NewBridge(history *History, hub *Hub) *Bridge {
	b := &Bridge{
		history: history,
		log:     slog.Default().With("component", "hashroute.bridge"),
		conns:   make(map[*wsClient]struct{}),
	}

	if hub != nil {
		hub.Subscribe(b.broadcast)
	}

	return b
}

// ServeHTTP upgrades the connection and pumps navigation messages into the
// history until the client goes away.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &wsClient{conn: conn}
	b.addClient(client)

	defer func() {
		b.removeClient(client)
		_ = conn.Close()
	}()

	for {
		var msg navMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				b.log.Error("websocket read failed", "error", err)
			}
			return
		}

		b.history.Navigate(msg.Fragment, !msg.Replace)
	}
}

// broadcast pushes a route event to every connected client.
func (b *Bridge) broadcast(event string, route string, params []ptn.Param) {
	msg := routeEventMsg{
		Event:  event,
		Route:  route,
		Params: paramsJSON(params),
	}

	b.mu.Lock()
	clients := make([]*wsClient, 0, len(b.conns))
	for client := range b.conns {
		clients = append(clients, client)
	}
	b.mu.Unlock()

	for _, client := range clients {
		if err := client.writeJSON(msg); err != nil {
			b.log.Error("websocket write failed", "error", err)
		}
	}
}

func (b *Bridge) addClient(client *wsClient) {
	b.mu.Lock()
	b.conns[client] = struct{}{}
	b.mu.Unlock()
}

func (b *Bridge) removeClient(client *wsClient) {
	b.mu.Lock()
	delete(b.conns, client)
	b.mu.Unlock()
}

// paramsJSON renders params as string-or-null, the wire form of the
// string-or-absent distinction handlers see.
func paramsJSON(params []ptn.Param) []*string {
	out := make([]*string, len(params))
	for i, p := range params {
		if p.Valid {
			v := p.Value
			out[i] = &v
		}
	}
	return out
}
