package pagination_test

import (
	"testing"

	"github.com/timbangcerdas/timbang-api/pkg/pagination"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		in         pagination.PaginationParams
		wantPage   int
		wantPer    int
		wantOffset int
	}{
		{"zero values", pagination.PaginationParams{}, 1, 20, 0},
		{"too large", pagination.PaginationParams{Page: 3, PerPage: 500}, 3, 100, 200},
		{"normal", pagination.PaginationParams{Page: 2, PerPage: 10}, 2, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			if p.Page != tt.wantPage || p.PerPage != tt.wantPer {
				t.Errorf("Validate() = %+v, want page %d per_page %d", p, tt.wantPage, tt.wantPer)
			}
			if p.Offset() != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", p.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := pagination.NewPagination(2, 20, 45)
	if p.TotalPages != 3 || !p.HasNext || !p.HasPrev {
		t.Errorf("NewPagination(2, 20, 45) = %+v", p)
	}

	last := pagination.NewPagination(3, 20, 45)
	if last.HasNext {
		t.Errorf("last page reports HasNext")
	}
}

func TestNewPaginatedResultNeverNilItems(t *testing.T) {
	r := pagination.NewPaginatedResult[int](nil, pagination.NewPagination(1, 20, 0))
	if r.Items == nil {
		t.Error("Items is nil, want empty slice")
	}
}
