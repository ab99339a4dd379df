// Package repository provides Postgres persistence for visit and
// reservation requests. Status transitions are conditional updates keyed on
// the expected prior status; callers inspect the returned bool to detect a
// lost race.
package repository

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultPageSize is the page size applied when the caller supplies none.
const DefaultPageSize = 15

// Repository provides database operations for requests.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new requests repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Columns shared by both request tables that the free-text search covers.
var searchColumns = []string{
	"client_msg",
	"agent_msg",
	"client_name",
	"client_email",
	"client_phone",
	"property_name",
	"property_address",
	"unit_identifier",
	"unit_block",
}

// buildRequestListWhere assembles the WHERE clause for both request tables.
// The search term's whitespace runs collapse to a single wildcard, so the
// query matches as typed rather than as independent tokens.
func buildRequestListWhere(params ListParams) (string, []interface{}, int) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + strings.Join(strings.Fields(search), "%") + "%"
		likes := make([]string, 0, len(searchColumns))
		for _, col := range searchColumns {
			likes = append(likes, fmt.Sprintf("%s ILIKE $%d", col, argIdx))
		}
		whereClauses = append(whereClauses, "("+strings.Join(likes, " OR ")+")")
		args = append(args, pattern)
		argIdx++
	}

	return strings.Join(whereClauses, " AND "), args, argIdx
}

func pageWindow(params ListParams) (limit, offset int) {
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}
