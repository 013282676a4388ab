package listing

import "testing"

func TestPaginate(t *testing.T) {
	items := make([]int, 10)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name        string
		page        int
		size        int
		wantLen     int
		wantPage    int
		wantPages   int
		hasPrevious bool
		hasNext     bool
	}{
		{"first page", 1, 3, 3, 1, 4, false, true},
		{"middle page", 2, 3, 3, 2, 4, true, true},
		{"last page is the remainder", 4, 3, 1, 4, 4, true, false},
		{"page zero clamps to first", 0, 3, 3, 1, 4, false, true},
		{"page beyond end clamps to last", 99, 3, 1, 4, 4, true, false},
		{"size covers everything", 1, 20, 10, 1, 1, false, false},
		{"size zero clamps to one", 1, 0, 1, 1, 10, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(items, tt.page, tt.size)
			if len(page.Items) != tt.wantLen {
				t.Errorf("Expected %d items, got %d", tt.wantLen, len(page.Items))
			}
			if page.Page != tt.wantPage {
				t.Errorf("Expected page %d, got %d", tt.wantPage, page.Page)
			}
			if page.TotalPages != tt.wantPages {
				t.Errorf("Expected %d pages, got %d", tt.wantPages, page.TotalPages)
			}
			if page.HasPrevious != tt.hasPrevious || page.HasNext != tt.hasNext {
				t.Errorf("Expected prev=%v next=%v, got prev=%v next=%v",
					tt.hasPrevious, tt.hasNext, page.HasPrevious, page.HasNext)
			}
			if page.TotalItems != 10 {
				t.Errorf("Expected 10 total items, got %d", page.TotalItems)
			}
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]string{}, 1, 20)
	if len(page.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(page.Items))
	}
	if page.TotalPages != 1 || page.Page != 1 {
		t.Errorf("An empty list still has one (empty) page, got page %d of %d", page.Page, page.TotalPages)
	}
	if page.HasPrevious || page.HasNext {
		t.Error("An empty page links nowhere")
	}
}
