package storage

import (
	"time"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
)

type Repository interface {
	CreateMatch(m *arena.Match) error
	GetMatchByID(id uint) (*arena.Match, error)
	FindMatchByJoinCode(code string) (*arena.Match, error)
	// GetOpenMatches returns public matches still waiting for a second
	// player whose join deadline has not passed.
	GetOpenMatches() ([]arena.Match, error)
	UpdateMatch(m *arena.Match) error

	UpsertProfile(account, displayName string) error
	// UpdateStatsOnMatchEnd records the outcome of a resolved match for
	// both players. stalledAccount names the player whose inactivity
	// ended the match, or is empty when the match resolved normally.
	UpdateStatsOnMatchEnd(m *arena.Match, stalledAccount string) error
	GetStatsByAccount(account string) (*arena.PlayerProfile, error)
	// Leaderboard
	GetTopPlayers(limit int) ([]arena.PlayerProfile, error)

	// FindTimedOutMatches returns matches in an active phase whose action
	// deadline is at or before the cutoff. The caller decides how to
	// settle them (refund, forfeit or draw).
	FindTimedOutMatches(cutoff time.Time) ([]arena.Match, error)
}
