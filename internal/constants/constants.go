package constants

// Centralized constants for headers, env keys and shared literals.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "ARENA_CONFIG"

	// Session / Cookie names
	CookieSessionName = "arena_session"

	// HTTP headers
	HeaderAuthorization = "Authorization"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Authorization prefix
	BearerPrefix = "Bearer "
)

// Routes used by the backend router
const (
	RouteAPIPrefix    = "/api"
	RouteCatalog      = "/catalog"
	RouteVersion      = "/version"
	RouteLeaderboard  = "/leaderboard"
	RoutePlayerStats  = "/player-stats"
	RouteAuthSession  = "/auth/session"
	RouteOpenMatches  = "/matches/open"
	RouteMatches      = "/matches"
	RouteMatchByCode  = "/matches/:code"
	RouteMatchJoin    = "/matches/:code/join"
	RouteMatchTeam    = "/matches/:code/team"
	RouteMatchCommit  = "/matches/:code/commit"
	RouteMatchReveal  = "/matches/:code/reveal"
	RouteMatchTimeout = "/matches/:code/timeout"
	RouteMatchWatch   = "/matches/:code/watch"
)

// Common JSON response keys
const (
	JSONKeyError  = "error"
	JSONKeyStatus = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrInvalidJoinCode        = "Invalid join code"
	ErrInvalidPlayerName      = "Invalid player name"
	ErrMatchNotFound          = "Match not found"
	ErrFailedCreateMatch      = "Failed to create match"
	ErrFailedFetchMatches     = "Failed to fetch matches"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrFailedUpdateMatch      = "Failed to update match"
	ErrAccountRequired        = "account is required"

	// Lifecycle rejections, aligned with the settlement-layer rule names.
	ErrIncorrectStakeAmount = "incorrect stake amount"
	ErrCannotPlayYourself   = "cannot play yourself"
	ErrMatchAlreadyFull     = "game already full"
	ErrWrongPhaseForTeams   = "must be in both_joined state"
	ErrWrongPhaseForCombat  = "must be in combat state"
	ErrNotAPlayer           = "not a player in this game"
	ErrTeamAlreadySubmitted = "team already submitted"
	ErrInvalidChampionID    = "invalid champion ID"
	ErrDuplicateChampion    = "duplicate champion"
	ErrChampionOverlap      = "champion overlap"
	ErrAlreadyCommitted     = "already committed this round"
	ErrCommitBeforeReveal   = "must commit before revealing"
	ErrAlreadyRevealed      = "already revealed this round"
	ErrCommitmentMismatch   = "commitment mismatch"
	ErrMoveOutOfRange       = "move out of range"
	ErrChampionNotOnTeam    = "champion not on player's team"
	ErrChampionKnockedOut   = "cannot act with KO'd champion"
	ErrMatchNotActive       = "game not active"
	ErrTimeoutNotReached    = "timeout not reached"
	ErrOnlyPlayerAMayClaim  = "only player A can claim in state 1"
	ErrInvalidCommitment    = "commitment must be 64 hex characters"

	ErrFailedCreateSession = "Failed to create session"
	ErrAuthRequired        = "Authentication required"
	ErrInvalidSession      = "Invalid session"
)

// Logging field names
const (
	LogFieldMatchID  = "match_id"
	LogFieldJoinCode = "join_code"
	LogFieldAccount  = "account"
	LogFieldPhase    = "phase"
	LogFieldRound    = "round"
	LogFieldWinner   = "winner"
	LogFieldNoteID   = "note_id"
	LogFieldAmount   = "amount"
	LogFieldAddr     = "addr"
)
