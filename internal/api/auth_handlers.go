package api

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/WiktorStarczewski/miden-arena/internal/constants"
	"github.com/WiktorStarczewski/miden-arena/internal/storage"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	repo storage.Repository
}

func NewAuthHandler(repo storage.Repository) *AuthHandler {
	return &AuthHandler{repo: repo}
}

// Account handles are short lowercase identifiers, the same shape payout
// notes use for their recipients.
var accountRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_.\-]{2,31}$`)

type SessionRequest struct {
	Account     string `json:"account"`
	DisplayName string `json:"display_name"`
}

// CreateSession mints a session for a declared player account and sets the
// session cookie. Callers authenticate out of band; the server records the
// declared identity and scopes every later mutation to it.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	account := strings.ToLower(strings.TrimSpace(req.Account))
	if !accountRegex.MatchString(account) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrAccountRequired})
		return
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		name = account
	}

	// Keep the profile's display name current so leaderboards show the
	// latest choice.
	if err := h.repo.UpsertProfile(account, name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}

	token, err := createSessionToken(account, name, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	setSessionCookie(c, token, 24*time.Hour)

	c.JSON(http.StatusOK, gin.H{"account": account, "name": name, "token": token})
}

// DeleteSession logs the caller out by clearing the session cookie.
func (h *AuthHandler) DeleteSession(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}
