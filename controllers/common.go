package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/modae/teamup/middleware"
	"github.com/modae/teamup/models"
)

// getUserID extracts the authenticated user ID placed by AuthRequired.
func getUserID(ctx *gin.Context) (uint, bool) {
	raw, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := raw.(uint)
	return id, ok
}

// isAdmin reports whether the authenticated user holds the admin role.
func isAdmin(ctx *gin.Context) bool {
	raw, exists := ctx.Get(middleware.ContextRoleKey)
	if !exists {
		return false
	}
	role, ok := raw.(models.Role)
	return ok && role == models.RoleAdmin
}

// parsePagination normalizes page/size query values. Pages start at 1;
// size defaults to 10 and is capped at 100.
func parsePagination(pageStr, sizeStr string) (int, int) {
	page, size := 1, 10
	if v := strings.TrimSpace(pageStr); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := strings.TrimSpace(sizeStr); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
			if size > 100 {
				size = 100
			}
		}
	}
	return page, size
}

// paginationPayload is the uniform paging envelope for list responses.
func paginationPayload(page, size int, total int64) gin.H {
	return gin.H{
		"page":        page,
		"size":        size,
		"total":       total,
		"total_pages": int((total + int64(size) - 1) / int64(size)),
	}
}

// parseID parses a positive numeric path parameter.
func parseID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
