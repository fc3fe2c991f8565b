package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestTotalPages(t *testing.T) {
	testCases := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{"25 rows at 10 per page", 25, 10, 3},
		{"exact multiple", 20, 10, 2},
		{"single partial page", 3, 10, 1},
		{"empty result", 0, 10, 0},
		{"zero limit", 25, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TotalPages(tc.total, tc.limit); got != tc.want {
				t.Errorf("expected %d pages, got %d", tc.want, got)
			}
		})
	}
}

func TestParsePagination(t *testing.T) {
	testCases := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 1, 20, 0},
		{"second page", "?page=2&limit=10", 2, 10, 10},
		{"negative page clamps", "?page=-3&limit=10", 1, 10, 0},
		{"zero limit clamps", "?page=2&limit=0", 2, 20, 20},
		{"oversized limit clamps", "?page=1&limit=5000", 1, 100, 0},
		{"garbage input clamps", "?page=abc&limit=xyz", 1, 20, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()

			var page, limit, offset int
			app.Get("/items", func(c *fiber.Ctx) error {
				page, limit, offset = ParsePagination(c)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/items"+tc.query, nil)
			if _, err := app.Test(req); err != nil {
				t.Fatalf("request failed: %v", err)
			}

			if page != tc.wantPage || limit != tc.wantLimit || offset != tc.wantOffset {
				t.Errorf("expected (%d,%d,%d), got (%d,%d,%d)",
					tc.wantPage, tc.wantLimit, tc.wantOffset, page, limit, offset)
			}
		})
	}
}

func TestPaginationEnvelope(t *testing.T) {
	block := Pagination(2, 10, 25)
	if block["page"] != 2 || block["limit"] != 10 {
		t.Errorf("unexpected page/limit in %v", block)
	}
	if block["total"] != int64(25) {
		t.Errorf("expected total 25, got %v", block["total"])
	}
	if block["totalPages"] != 3 {
		t.Errorf("expected totalPages 3, got %v", block["totalPages"])
	}
}
