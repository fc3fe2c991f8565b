package utils

import (
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// ParsePagination reads 1-based page/limit query params, clamping bad input to
// the defaults.
func ParsePagination(c *fiber.Ctx) (page, limit, offset int) {
	page = c.QueryInt("page", defaultPage)
	limit = c.QueryInt("limit", defaultLimit)

	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit, (page - 1) * limit
}

// TotalPages returns the number of pages needed to cover total rows.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}

// Pagination builds the envelope's pagination block.
func Pagination(page, limit int, total int64) fiber.Map {
	return fiber.Map{
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": TotalPages(total, limit),
	}
}
