package domain_test

import (
	"testing"

	"github.com/soniabinty/gizmorent-server/internal/domain"
)

func TestGadgetQueryNormalize(t *testing.T) {
	tests := []struct {
		name      string
		query     domain.GadgetQuery
		wantPage  int
		wantLimit int
	}{
		{"defaults", domain.GadgetQuery{}, 1, 6},
		{"negative page clamps to 1", domain.GadgetQuery{Page: -3, Limit: 10}, 1, 10},
		{"zero limit uses default", domain.GadgetQuery{Page: 2}, 2, 6},
		{"negative limit clamps to 1", domain.GadgetQuery{Page: 1, Limit: -5}, 1, 1},
		{"oversized limit clamps to max", domain.GadgetQuery{Page: 1, Limit: 500}, 1, 100},
		{"in range untouched", domain.GadgetQuery{Page: 4, Limit: 24}, 4, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.query.Normalize()
			if tt.query.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", tt.query.Page, tt.wantPage)
			}
			if tt.query.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", tt.query.Limit, tt.wantLimit)
			}
		})
	}
}

func TestGadgetQueryNormalizeCategoryAll(t *testing.T) {
	q := domain.GadgetQuery{Category: domain.CategoryAll}
	q.Normalize()
	if q.Category != "" {
		t.Errorf("category %q should normalize to empty", domain.CategoryAll)
	}

	q = domain.GadgetQuery{Category: "Drones"}
	q.Normalize()
	if q.Category != "Drones" {
		t.Errorf("real category should survive normalization, got %q", q.Category)
	}
}

func TestGadgetQuerySkip(t *testing.T) {
	q := domain.GadgetQuery{Page: 3, Limit: 6}
	q.Normalize()
	if got := q.Skip(); got != 12 {
		t.Errorf("skip = %d, want 12", got)
	}
}

func TestParseSortOrder(t *testing.T) {
	if got := domain.ParseSortOrder("LowToHigh"); got != domain.SortPriceAsc {
		t.Errorf("LowToHigh = %v, want SortPriceAsc", got)
	}
	if got := domain.ParseSortOrder("HighToLow"); got != domain.SortPriceDesc {
		t.Errorf("HighToLow = %v, want SortPriceDesc", got)
	}
	if got := domain.ParseSortOrder("alphabetical"); got != domain.SortNone {
		t.Errorf("unknown sort = %v, want SortNone", got)
	}
	if got := domain.ParseSortOrder(""); got != domain.SortNone {
		t.Errorf("empty sort = %v, want SortNone", got)
	}
}
