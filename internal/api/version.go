package api

import (
	"net/http"

	"github.com/WiktorStarczewski/miden-arena/internal/version"
	"github.com/gin-gonic/gin"
)

// Version reports the build metadata baked into the binary.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Info())
}
