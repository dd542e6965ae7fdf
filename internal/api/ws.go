package api

import (
	"net/http"
	"sync"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
	"github.com/WiktorStarczewski/miden-arena/internal/constants"
	"github.com/WiktorStarczewski/miden-arena/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var watchUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Spectating is public read-only state; the HTTP API enforces auth on
	// every mutation, so cross-origin watchers are fine.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WatchHub fans match updates out to websocket spectators, keyed by join
// code. Mutating handlers and the timeout sweeper push through
// BroadcastMatch after every successful state change.
type WatchHub struct {
	mu   sync.Mutex
	subs map[string]map[*websocket.Conn]struct{}
}

func NewWatchHub() *WatchHub {
	return &WatchHub{subs: make(map[string]map[*websocket.Conn]struct{})}
}

func (h *WatchHub) add(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[code] == nil {
		h.subs[code] = make(map[*websocket.Conn]struct{})
	}
	h.subs[code][conn] = struct{}{}
}

func (h *WatchHub) remove(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.subs[code]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.subs, code)
		}
	}
	_ = conn.Close()
}

// BroadcastMatch pushes the current match view to everyone watching it.
// Connections whose write fails are dropped; a spectator that went away
// should not block the match.
func (h *WatchHub) BroadcastMatch(m *arena.Match) {
	view, err := matchView(m)
	if err != nil {
		logging.Error("failed to build watch payload", err, logging.Fields{
			constants.LogFieldMatchID: m.ID,
		})
		return
	}

	// Writes happen under the hub lock so concurrent broadcasts for the
	// same connection never interleave frames.
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.subs[m.JoinCode]
	if !ok {
		return
	}
	for conn := range conns {
		if err := conn.WriteJSON(view); err != nil {
			delete(conns, conn)
			_ = conn.Close()
		}
	}
	if len(conns) == 0 {
		delete(h.subs, m.JoinCode)
	}
}

// WatchMatch upgrades the request to a websocket and streams match updates
// until the client disconnects. The first frame is the current snapshot.
func (h *MatchHandler) WatchMatch(c *gin.Context) {
	m, ok := h.matchFromPath(c)
	if !ok {
		return
	}
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	conn, err := watchUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}

	// Send the snapshot before joining the hub so this write cannot
	// interleave with a broadcast. After add, all writes go through the
	// hub lock.
	snapshot, err := matchView(m)
	if err == nil {
		_ = conn.WriteJSON(snapshot)
	}
	h.hub.add(m.JoinCode, conn)
	defer h.hub.remove(m.JoinCode, conn)

	// Spectators never send anything meaningful; the read loop only exists
	// to notice the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
