package handlers

import "testing"

func TestParsePaginationParams(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("defaults returned error: %v", err)
	}
	if page != 1 || limit != 20 {
		t.Fatalf("defaults = page %d limit %d", page, limit)
	}

	page, limit, err = parsePaginationParams("3", "50")
	if err != nil {
		t.Fatalf("valid params returned error: %v", err)
	}
	if page != 3 || limit != 50 {
		t.Fatalf("parsed = page %d limit %d", page, limit)
	}

	_, limit, err = parsePaginationParams("1", "500")
	if err != nil {
		t.Fatalf("oversized limit returned error: %v", err)
	}
	if limit != maxPageSize {
		t.Fatalf("limit = %d, want cap %d", limit, maxPageSize)
	}

	if _, _, err := parsePaginationParams("0", "10"); err == nil {
		t.Fatal("page 0 should be rejected")
	}
	if _, _, err := parsePaginationParams("1", "-5"); err == nil {
		t.Fatal("negative limit should be rejected")
	}
	if _, _, err := parsePaginationParams("abc", "10"); err == nil {
		t.Fatal("non-numeric page should be rejected")
	}
}
