package api

import (
	"time"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
	"github.com/WiktorStarczewski/miden-arena/internal/storage"
)

// MatchHandler groups all match-related HTTP handlers.
type MatchHandler struct {
	repo          storage.Repository
	hub           *WatchHub
	stakeAmount   uint64
	actionTimeout time.Duration
}

// NewMatchHandler creates a MatchHandler with the given repository, live
// watch hub, required stake and per-phase action timeout.
func NewMatchHandler(repo storage.Repository, hub *WatchHub, stakeAmount uint64, actionTimeout time.Duration) *MatchHandler {
	return &MatchHandler{repo: repo, hub: hub, stakeAmount: stakeAmount, actionTimeout: actionTimeout}
}

// broadcast pushes a fresh snapshot to live watchers after a mutation.
func (h *MatchHandler) broadcast(m *arena.Match) {
	if h.hub != nil {
		h.hub.BroadcastMatch(m)
	}
}
