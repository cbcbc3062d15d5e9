package helpers

import "testing"

func TestNewPaginationInfo(t *testing.T) {
	cases := []struct {
		name        string
		totalItems  int64
		page        int
		size        int
		wantPage    int
		wantPages   int
		wantSize    int
	}{
		{name: "first page", totalItems: 25, page: 1, size: 10, wantPage: 1, wantPages: 3, wantSize: 10},
		{name: "exact fit", totalItems: 30, page: 2, size: 10, wantPage: 2, wantPages: 3, wantSize: 10},
		{name: "page past end clamps", totalItems: 5, page: 9, size: 10, wantPage: 1, wantPages: 1, wantSize: 10},
		{name: "empty result", totalItems: 0, page: 1, size: 10, wantPage: 1, wantPages: 1, wantSize: 10},
		{name: "invalid size falls back", totalItems: 10, page: 1, size: 0, wantPage: 1, wantPages: 1, wantSize: DefaultPageSize},
		{name: "invalid page falls back", totalItems: 10, page: -3, size: 10, wantPage: 1, wantPages: 1, wantSize: 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := NewPaginationInfo(tc.totalItems, tc.page, tc.size)
			if info.CurrentPage != tc.wantPage {
				t.Errorf("CurrentPage = %d, want %d", info.CurrentPage, tc.wantPage)
			}
			if info.TotalPages != tc.wantPages {
				t.Errorf("TotalPages = %d, want %d", info.TotalPages, tc.wantPages)
			}
			if info.PageSize != tc.wantSize {
				t.Errorf("PageSize = %d, want %d", info.PageSize, tc.wantSize)
			}
			if info.TotalItems != tc.totalItems {
				t.Errorf("TotalItems = %d, want %d", info.TotalItems, tc.totalItems)
			}
		})
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	if offset != 40 || limit != 20 {
		t.Errorf("CalculateOffsetLimit(3, 20) = (%d, %d), want (40, 20)", offset, limit)
	}

	offset, limit = CalculateOffsetLimit(0, 500)
	if offset != 0 || limit != DefaultPageSize {
		t.Errorf("CalculateOffsetLimit(0, 500) = (%d, %d), want (0, %d)", offset, limit, DefaultPageSize)
	}
}
