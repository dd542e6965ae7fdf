package api

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/WiktorStarczewski/miden-arena/internal/constants"
	"github.com/gin-gonic/gin"
)

// ListCatalog returns the full champion catalog.
func (h *MatchHandler) ListCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, catalogViews())
}

// ListOpenMatches returns public matches still waiting for a second staker.
func (h *MatchHandler) ListOpenMatches(c *gin.Context) {
	matches, err := h.repo.GetOpenMatches()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	out, err := marshalNormalized(matches)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	c.JSON(http.StatusOK, out)
}

// leaderboardLimit reads the optional ?limit query. Out-of-range or absent
// values come back as 0, which lets the repository apply its default.
func leaderboardLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n < 1 || n > 100 {
		return 0
	}
	return n
}

// ListLeaderboard returns players ranked by wins, then matches played.
func (h *MatchHandler) ListLeaderboard(c *gin.Context) {
	profiles, err := h.repo.GetTopPlayers(leaderboardLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := marshalNormalized(profiles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetMatch returns a match by join code, with decoded champion state.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	m, ok := h.matchFromPath(c)
	if !ok {
		return
	}
	h.respondMatch(c, http.StatusOK, m)
}

// GetPlayerStats returns aggregated stats for one account. Defaults to the
// authenticated session account when the query param is absent.
func (h *MatchHandler) GetPlayerStats(c *gin.Context) {
	account := strings.ToLower(strings.TrimSpace(c.Query("account")))
	if account == "" {
		if v, ok := c.Get("account"); ok {
			account, _ = v.(string)
		}
	}
	if account == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrAccountRequired})
		return
	}
	profile, err := h.repo.GetStatsByAccount(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// playerNameRegex allows unicode letters, marks and digits plus apostrophe,
// dot, hyphen and space, 4 to 40 characters long.
var playerNameRegex = regexp.MustCompile(`^[\p{L}\p{M}\p{N}.'\- ]{4,40}$`)

// UpdatePlayerProfile sets the display name on the session player's profile.
func (h *MatchHandler) UpdatePlayerProfile(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	account, ok := sessionAccount(c)
	if !ok {
		return
	}

	trimmed := strings.TrimSpace(body.Name)
	if !playerNameRegex.MatchString(trimmed) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPlayerName})
		return
	}

	if err := h.repo.UpsertProfile(account, trimmed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}
