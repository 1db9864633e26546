package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mealmuse/backend/internal/service"
)

const defaultPageLimit = 20

// parsePagination reads page/limit query parameters. Pages are 1-based.
// Writes a 400 response and returns false on malformed input.
func parsePagination(c *gin.Context, defaultLimit int) (service.Page, bool) {
	page := service.Page{Number: 1, Limit: defaultLimit}

	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, messageBody("Invalid page number"))
			return service.Page{}, false
		}
		page.Number = n
	}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, messageBody("Invalid page limit"))
			return service.Page{}, false
		}
		page.Limit = n
	}

	return page, true
}
