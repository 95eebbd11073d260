package paginate_test

import (
	"testing"

	"github.com/shashiranjanraj/showroom/pkg/paginate"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		perPage    int
		total      int64
		wantPage   int
		wantPages  int
		wantOffset int
	}{
		{"exact fit", 1, 10, 30, 1, 3, 0},
		{"partial last page", 2, 10, 25, 2, 3, 10},
		{"empty set", 1, 10, 0, 1, 0, 0},
		{"single row", 1, 10, 1, 1, 1, 0},
		{"page below one clamps", 0, 10, 50, 1, 5, 0},
		{"negative page clamps", -3, 10, 50, 1, 5, 0},
		{"per page below one clamps", 1, 0, 5, 1, 5, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := paginate.New(tc.page, tc.perPage, tc.total)
			if p.Page != tc.wantPage {
				t.Errorf("Page = %d, want %d", p.Page, tc.wantPage)
			}
			if p.TotalPages != tc.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tc.wantPages)
			}
			if p.Total != tc.total {
				t.Errorf("Total = %d, want %d", p.Total, tc.total)
			}
			if got := p.Offset(); got != tc.wantOffset {
				t.Errorf("Offset() = %d, want %d", got, tc.wantOffset)
			}
		})
	}
}
