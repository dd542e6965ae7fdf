package main

import (
	"time"

	"github.com/WiktorStarczewski/miden-arena/internal/api"
	"github.com/WiktorStarczewski/miden-arena/internal/arena"
	"github.com/WiktorStarczewski/miden-arena/internal/constants"
	"github.com/WiktorStarczewski/miden-arena/internal/dedupe"
	"github.com/WiktorStarczewski/miden-arena/internal/logging"
	"github.com/WiktorStarczewski/miden-arena/internal/service"
	"github.com/WiktorStarczewski/miden-arena/internal/storage"
)

// sweepGrace is how long past its deadline a match must sit before the
// sweeper settles it. Players claiming through the API stay the primary
// path; the sweeper only mops up matches nobody came back for.
const sweepGrace = time.Minute

// startTimeoutSweeper settles expired matches in the background so a
// walked-away opponent never strands the other player's stake. Sweeps run
// under the shared singleflight key, so overlapping ticks collapse into
// one pass.
func startTimeoutSweeper(repo storage.Repository, hub *api.WatchHub, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			_, _, _ = dedupe.ClaimGroup.Do("sweep", func() (interface{}, error) {
				sweepOnce(repo, hub)
				return nil, nil
			})
		}
	}()
}

func sweepOnce(repo storage.Repository, hub *api.WatchHub) {
	matches, err := repo.FindTimedOutMatches(time.Now().Add(-sweepGrace))
	if err != nil {
		logging.Error("timeout sweeper failed to list matches", err, nil)
		return
	}
	for i := range matches {
		settled := sweepMatch(repo, matches[i].ID)
		if settled != nil {
			hub.BroadcastMatch(settled)
		}
	}
}

// sweepMatch settles one expired match under its lock. It returns the
// settled match, or nil when a concurrent claim got there first.
func sweepMatch(repo storage.Repository, matchID uint) *arena.Match {
	unlock := service.LockMatch(matchID)
	defer unlock()

	// Reload under the lock; a player's claim may have settled the match
	// between the listing and here.
	m, err := repo.GetMatchByID(matchID)
	if err != nil {
		return nil
	}
	if !m.Phase.Active() {
		return nil
	}
	if err := service.HandleTimedOutMatch(repo, m); err != nil {
		logging.Error("failed to settle timed-out match", err, logging.Fields{
			constants.LogFieldMatchID: matchID,
		})
		return nil
	}
	if m.Phase != arena.PhaseResolved {
		return nil
	}
	return m
}
