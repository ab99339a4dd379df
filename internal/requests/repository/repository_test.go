package repository

import (
	"strings"
	"testing"
)

func TestBuildRequestListWhereNoFilters(t *testing.T) {
	where, args, argIdx := buildRequestListWhere(ListParams{})
	if where != "TRUE" {
		t.Errorf("where = %q, want TRUE", where)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
	if argIdx != 1 {
		t.Errorf("argIdx = %d, want 1", argIdx)
	}
}

func TestBuildRequestListWhereStatusOnly(t *testing.T) {
	where, args, argIdx := buildRequestListWhere(ListParams{Status: "pending"})
	if where != "TRUE AND status = $1" {
		t.Errorf("where = %q", where)
	}
	if len(args) != 1 || args[0] != "pending" {
		t.Errorf("args = %v, want [pending]", args)
	}
	if argIdx != 2 {
		t.Errorf("argIdx = %d, want 2", argIdx)
	}
}

func TestBuildRequestListWhereSearchReusesOneArg(t *testing.T) {
	where, args, argIdx := buildRequestListWhere(ListParams{Search: "block a"})

	// One pattern argument shared across every searchable column.
	if len(args) != 1 {
		t.Fatalf("args = %v, want a single pattern", args)
	}
	if args[0] != "%block%a%" {
		t.Errorf("pattern = %q, want %%block%%a%%", args[0])
	}
	if argIdx != 2 {
		t.Errorf("argIdx = %d, want 2", argIdx)
	}
	if n := strings.Count(where, "ILIKE $1"); n != len(searchColumns) {
		t.Errorf("ILIKE $1 occurrences = %d, want %d", n, len(searchColumns))
	}
	for _, col := range searchColumns {
		if !strings.Contains(where, col+" ILIKE $1") {
			t.Errorf("where misses column %q: %s", col, where)
		}
	}
}

func TestBuildRequestListWhereStatusAndSearch(t *testing.T) {
	where, args, argIdx := buildRequestListWhere(ListParams{Status: "approved", Search: "  Parkzicht  "})
	if !strings.HasPrefix(where, "TRUE AND status = $1 AND (") {
		t.Errorf("where = %q", where)
	}
	if len(args) != 2 {
		t.Fatalf("args = %v, want status plus pattern", args)
	}
	if args[0] != "approved" || args[1] != "%Parkzicht%" {
		t.Errorf("args = %v", args)
	}
	if argIdx != 3 {
		t.Errorf("argIdx = %d, want 3", argIdx)
	}
	if strings.Count(where, "ILIKE $2") != len(searchColumns) {
		t.Errorf("search clauses should all bind $2: %s", where)
	}
}

func TestBuildRequestListWhereBlankSearchIgnored(t *testing.T) {
	where, args, _ := buildRequestListWhere(ListParams{Search: "   "})
	if where != "TRUE" || len(args) != 0 {
		t.Errorf("blank search added clauses: where=%q args=%v", where, args)
	}
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		name       string
		params     ListParams
		wantLimit  int
		wantOffset int
	}{
		{"defaults", ListParams{}, DefaultPageSize, 0},
		{"first page", ListParams{Page: 1, PageSize: 10}, 10, 0},
		{"third page", ListParams{Page: 3, PageSize: 10}, 10, 20},
		{"zero page", ListParams{Page: 0, PageSize: 25}, 25, 0},
		{"negative page", ListParams{Page: -2, PageSize: 25}, 25, 0},
		{"zero size", ListParams{Page: 2}, DefaultPageSize, DefaultPageSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := pageWindow(tc.params)
			if limit != tc.wantLimit || offset != tc.wantOffset {
				t.Errorf("pageWindow(%+v) = (%d, %d), want (%d, %d)",
					tc.params, limit, offset, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}
