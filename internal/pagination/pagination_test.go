package pagination

import "testing"

func TestPageRequestDefaults(t *testing.T) {
	var req PageRequest
	req.Defaults()
	if req.Page != 1 || req.PageSize != 20 {
		t.Errorf("expected defaults 1/20, got %d/%d", req.Page, req.PageSize)
	}

	req = PageRequest{Page: 3, PageSize: 50}
	req.Defaults()
	if req.Page != 3 || req.PageSize != 50 {
		t.Errorf("expected explicit values kept, got %d/%d", req.Page, req.PageSize)
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("first_page", func(t *testing.T) {
		resp := Slice(items, PageRequest{Page: 1, PageSize: 2})
		if len(resp.Data) != 2 || resp.Data[0] != 1 || resp.Data[1] != 2 {
			t.Errorf("unexpected first page: %v", resp.Data)
		}
		if resp.TotalItems != 5 || resp.TotalPages != 3 {
			t.Errorf("unexpected totals: %d items, %d pages", resp.TotalItems, resp.TotalPages)
		}
	})

	t.Run("partial_last_page", func(t *testing.T) {
		resp := Slice(items, PageRequest{Page: 3, PageSize: 2})
		if len(resp.Data) != 1 || resp.Data[0] != 5 {
			t.Errorf("unexpected last page: %v", resp.Data)
		}
	})

	t.Run("page_past_end", func(t *testing.T) {
		resp := Slice(items, PageRequest{Page: 10, PageSize: 2})
		if len(resp.Data) != 0 {
			t.Errorf("expected empty window, got %v", resp.Data)
		}
		if resp.Data == nil {
			t.Error("expected empty non-nil data")
		}
	})

	t.Run("empty_input", func(t *testing.T) {
		resp := Slice([]int(nil), PageRequest{})
		if resp.Data == nil || len(resp.Data) != 0 {
			t.Errorf("expected empty non-nil data, got %v", resp.Data)
		}
		if resp.TotalPages != 0 {
			t.Errorf("expected 0 pages, got %d", resp.TotalPages)
		}
	})

	t.Run("window_is_a_copy", func(t *testing.T) {
		resp := Slice(items, PageRequest{Page: 1, PageSize: 5})
		resp.Data[0] = 99
		if items[0] != 1 {
			t.Error("mutating the page must not affect the source slice")
		}
	})
}
