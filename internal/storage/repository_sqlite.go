package storage

import (
	"errors"
	"time"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
	"gorm.io/gorm"
)

const defaultLeaderboardSize = 10

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

// orderedSlots keeps preloaded champion slots in board order (side, then
// slot index) so callers can rely on slice position.
func orderedSlots(db *gorm.DB) *gorm.DB {
	return db.Order("side, slot_index")
}

func (r *sqliteRepository) CreateMatch(m *arena.Match) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) GetMatchByID(id uint) (*arena.Match, error) {
	var m arena.Match
	err := r.db.Preload("Slots", orderedSlots).Preload("Payouts").First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *sqliteRepository) FindMatchByJoinCode(code string) (*arena.Match, error) {
	var m arena.Match
	err := r.db.Preload("Slots", orderedSlots).Preload("Payouts").
		Where("join_code = ?", code).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *sqliteRepository) GetOpenMatches() ([]arena.Match, error) {
	var matches []arena.Match
	err := r.db.
		Where("phase = ? AND private = ? AND deadline > ?", arena.PhaseOneJoined, false, time.Now()).
		Order("created_at desc").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *sqliteRepository) UpdateMatch(m *arena.Match) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(m).Error
}

// profileByAccount loads a player's profile, handing back a fresh zero-stats
// profile when the account has never been recorded.
func (r *sqliteRepository) profileByAccount(account string) (arena.PlayerProfile, error) {
	var p arena.PlayerProfile
	err := r.db.Where("account = ?", account).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return arena.PlayerProfile{Account: account}, nil
	}
	return p, err
}

func (r *sqliteRepository) UpsertProfile(account, displayName string) error {
	p, err := r.profileByAccount(account)
	if err != nil {
		return err
	}
	if displayName != "" {
		p.DisplayName = displayName
	}
	return r.db.Save(&p).Error
}

func (r *sqliteRepository) UpdateStatsOnMatchEnd(m *arena.Match, stalledAccount string) error {
	apply := func(account string, played, wins, draws, timeouts int) error {
		p, err := r.profileByAccount(account)
		if err != nil {
			return err
		}
		p.MatchesPlayed += played
		p.Wins += wins
		p.Draws += draws
		p.Timeouts += timeouts
		return r.db.Save(&p).Error
	}
	if m.PlayerA == "" || m.PlayerB == "" {
		return nil
	}
	for _, account := range []string{m.PlayerA, m.PlayerB} {
		if err := apply(account, 1, 0, 0, 0); err != nil {
			return err
		}
	}
	switch m.Winner {
	case arena.OutcomePlayerA:
		if err := apply(m.PlayerA, 0, 1, 0, 0); err != nil {
			return err
		}
	case arena.OutcomePlayerB:
		if err := apply(m.PlayerB, 0, 1, 0, 0); err != nil {
			return err
		}
	case arena.OutcomeDraw:
		for _, account := range []string{m.PlayerA, m.PlayerB} {
			if err := apply(account, 0, 0, 1, 0); err != nil {
				return err
			}
		}
	}
	if stalledAccount != "" && m.IsPlayer(stalledAccount) {
		return apply(stalledAccount, 0, 0, 0, 1)
	}
	return nil
}

func (r *sqliteRepository) GetStatsByAccount(account string) (*arena.PlayerProfile, error) {
	p, err := r.profileByAccount(account)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetTopPlayers returns top N players ordered by Wins desc, then MatchesPlayed desc.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]arena.PlayerProfile, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	var profiles []arena.PlayerProfile
	if err := r.db.Model(&arena.PlayerProfile{}).
		Order("wins DESC").
		Order("matches_played DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *sqliteRepository) FindTimedOutMatches(cutoff time.Time) ([]arena.Match, error) {
	var matches []arena.Match
	err := r.db.Preload("Slots", orderedSlots).Preload("Payouts").
		Where("phase IN ? AND deadline <= ?", []arena.Phase{arena.PhaseOneJoined, arena.PhaseBothJoined, arena.PhaseCombat}, cutoff).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}
