package service

import "sync"

// matchLocks serializes lifecycle operations per match. SQLite gives no
// row-level protection against two requests interleaving a read-modify-write
// on the same match, so handlers and the sweeper take the match lock around
// every mutation.
var matchLocks sync.Map

// LockMatch takes the lock for a match and returns the unlock function.
func LockMatch(matchID uint) func() {
	v, _ := matchLocks.LoadOrStore(matchID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
