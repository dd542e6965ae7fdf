// Package dedupe provides the shared singleflight group that collapses
// duplicate settlement work: only one call runs per key while concurrent
// callers wait for its result.
package dedupe

import "golang.org/x/sync/singleflight"

// ClaimGroup deduplicates timeout settlement. The claim handler keys by
// "claim:<code>:<account>" so a double-submitted claim runs once, and the
// background sweeper keys by "sweep" so overlapping ticks never walk the
// expired-match list twice.
var ClaimGroup singleflight.Group
