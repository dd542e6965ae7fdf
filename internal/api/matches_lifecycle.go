package api

import (
	"net/http"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
	"github.com/WiktorStarczewski/miden-arena/internal/codec"
	"github.com/WiktorStarczewski/miden-arena/internal/constants"
	"github.com/WiktorStarczewski/miden-arena/internal/dedupe"
	"github.com/WiktorStarczewski/miden-arena/internal/engine"
	"github.com/WiktorStarczewski/miden-arena/internal/logging"
	"github.com/WiktorStarczewski/miden-arena/internal/service"
	"github.com/gin-gonic/gin"
)

type CreateMatchPayload struct {
	Private bool `json:"private"`
}

// CreateMatch opens a fresh match and returns its join code. The creator
// still joins like anyone else, by staking through the join endpoint.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req CreateMatchPayload
	// Body is optional; an empty body creates a public match.
	_ = c.ShouldBindJSON(&req)

	m := arena.Match{
		JoinCode: generateJoinCode(),
		Private:  req.Private,
		Phase:    arena.PhaseWaiting,
		Message:  "Match created. Waiting for players to stake.",
	}
	if err := h.repo.CreateMatch(&m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateMatch})
		return
	}

	logging.Info("match created", logging.Fields{
		constants.LogFieldMatchID:  m.ID,
		constants.LogFieldJoinCode: m.JoinCode,
	})
	h.respondMatch(c, http.StatusCreated, &m)
}

type JoinMatchPayload struct {
	Stake uint64 `json:"stake"`
}

// JoinMatch stakes the caller into the match. The first staker becomes
// player A, the second player B.
func (h *MatchHandler) JoinMatch(c *gin.Context) {
	m, ok := h.matchFromPath(c)
	if !ok {
		return
	}
	var req JoinMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	account, ok := sessionAccount(c)
	if !ok {
		return
	}

	unlock := service.LockMatch(m.ID)
	defer unlock()
	m2, err := service.Join(h.repo, m.ID, account, req.Stake, h.stakeAmount, h.actionTimeout)
	if err != nil {
		switch err {
		case service.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case service.ErrIncorrectStake:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrIncorrectStakeAmount})
		case service.ErrSelfPlay:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCannotPlayYourself})
		case service.ErrMatchFull:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchAlreadyFull})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		}
		return
	}

	logging.Info("player joined match", logging.Fields{
		constants.LogFieldMatchID: m2.ID,
		constants.LogFieldAccount: account,
		constants.LogFieldPhase:   m2.Phase.String(),
	})
	h.broadcast(m2)
	h.respondMatch(c, http.StatusOK, m2)
}

type SubmitTeamPayload struct {
	Champions []uint8 `json:"champions"`
}

// SubmitTeam records the caller's three champions for the match.
func (h *MatchHandler) SubmitTeam(c *gin.Context) {
	m, ok := h.matchFromPath(c)
	if !ok {
		return
	}
	var req SubmitTeamPayload
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Champions) != engine.TeamSize {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	account, ok := sessionAccount(c)
	if !ok {
		return
	}
	var team [engine.TeamSize]uint8
	copy(team[:], req.Champions)

	unlock := service.LockMatch(m.ID)
	defer unlock()
	m2, err := service.SetTeam(h.repo, m.ID, account, team, h.actionTimeout)
	if err != nil {
		switch err {
		case service.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case service.ErrNotInTeamPhase:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrWrongPhaseForTeams})
		case service.ErrNotPlayer:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotAPlayer})
		case service.ErrTeamAlreadySubmitted:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrTeamAlreadySubmitted})
		case service.ErrInvalidChampionID:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidChampionID})
		case service.ErrDuplicateChampion:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrDuplicateChampion})
		case service.ErrChampionOverlap:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrChampionOverlap})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		}
		return
	}

	h.broadcast(m2)
	h.respondMatch(c, http.StatusOK, m2)
}

type SubmitCommitPayload struct {
	Commitment string `json:"commitment"`
}

// SubmitCommit stores the caller's move commitment for the current round.
func (h *MatchHandler) SubmitCommit(c *gin.Context) {
	m, ok := h.matchFromPath(c)
	if !ok {
		return
	}
	var req SubmitCommitPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	account, ok := sessionAccount(c)
	if !ok {
		return
	}

	unlock := service.LockMatch(m.ID)
	defer unlock()
	m2, err := service.SubmitCommit(h.repo, m.ID, account, req.Commitment)
	if err != nil {
		switch err {
		case service.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case service.ErrNotInCombat:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrWrongPhaseForCombat})
		case service.ErrNotPlayer:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotAPlayer})
		case service.ErrAlreadyCommitted:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAlreadyCommitted})
		case service.ErrInvalidCommitment:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidCommitment})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		}
		return
	}

	h.broadcast(m2)
	h.respondMatch(c, http.StatusOK, m2)
}

type SubmitRevealPayload struct {
	Move   uint64 `json:"move"`
	Nonce1 uint64 `json:"nonce1"`
	Nonce2 uint64 `json:"nonce2"`
}

// SubmitReveal opens the caller's commitment. When both players have
// revealed, the round resolves before the response is written.
func (h *MatchHandler) SubmitReveal(c *gin.Context) {
	m, ok := h.matchFromPath(c)
	if !ok {
		return
	}
	var req SubmitRevealPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	account, ok := sessionAccount(c)
	if !ok {
		return
	}

	unlock := service.LockMatch(m.ID)
	defer unlock()
	m2, resolved, err := service.SubmitReveal(h.repo, m.ID, account, req.Move, req.Nonce1, req.Nonce2, h.actionTimeout)
	if err != nil {
		switch err {
		case service.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case service.ErrNotInCombat:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrWrongPhaseForCombat})
		case service.ErrNotPlayer:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotAPlayer})
		case service.ErrNoCommitment:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCommitBeforeReveal})
		case service.ErrAlreadyRevealed:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAlreadyRevealed})
		case service.ErrCommitmentMismatch:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCommitmentMismatch})
		case codec.ErrMoveOutOfRange:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMoveOutOfRange})
		case service.ErrChampionNotOnTeam:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrChampionNotOnTeam})
		case service.ErrChampionKnockedOut:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrChampionKnockedOut})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		}
		return
	}

	if resolved {
		logging.Info("round resolved", logging.Fields{
			constants.LogFieldMatchID: m2.ID,
			constants.LogFieldRound:   m2.Round,
			constants.LogFieldPhase:   m2.Phase.String(),
			constants.LogFieldWinner:  m2.Winner.String(),
		})
	}
	h.broadcast(m2)
	h.respondMatch(c, http.StatusOK, m2)
}

// ClaimTimeout settles an expired match on the caller's behalf. Identical
// in-flight claims are collapsed so a double submit cannot race itself.
func (h *MatchHandler) ClaimTimeout(c *gin.Context) {
	m, ok := h.matchFromPath(c)
	if !ok {
		return
	}
	account, ok := sessionAccount(c)
	if !ok {
		return
	}

	result, err, _ := dedupe.ClaimGroup.Do("claim:"+m.JoinCode+":"+account, func() (interface{}, error) {
		unlock := service.LockMatch(m.ID)
		defer unlock()
		return service.ClaimTimeout(h.repo, m.ID, account)
	})
	if err != nil {
		switch err {
		case service.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case service.ErrMatchNotActive:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchNotActive})
		case service.ErrTimeoutNotReached:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrTimeoutNotReached})
		case service.ErrOnlyPlayerAMayClaim:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrOnlyPlayerAMayClaim})
		case service.ErrNotPlayer:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotAPlayer})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		}
		return
	}
	m2 := result.(*arena.Match)

	h.broadcast(m2)
	h.respondMatch(c, http.StatusOK, m2)
}

// respondMatch writes the full match snapshot. Every successful mutation
// answers with the same shape GET returns, so clients never need a
// follow-up read. Snapshots are live state and must not be cached.
func (h *MatchHandler) respondMatch(c *gin.Context, status int, m *arena.Match) {
	view, err := matchView(m)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(status, view)
}

// matchFromPath resolves the :code route param to a match, writing the
// error response itself when the code is bad or unknown.
func (h *MatchHandler) matchFromPath(c *gin.Context) (*arena.Match, bool) {
	code := normalizeJoinCode(c.Param("code"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidJoinCode})
		return nil, false
	}
	m, err := h.repo.FindMatchByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return nil, false
	}
	return m, true
}

// sessionAccount pulls the authenticated account from the request context,
// writing the error response itself when it is missing.
func sessionAccount(c *gin.Context) (string, bool) {
	v, _ := c.Get("account")
	account, _ := v.(string)
	if account == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return "", false
	}
	return account, true
}
