package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned by repositories when a lookup by id (or another
// unique key) matches no row. Services branch on it with errors.Is.
var ErrNotFound = errors.New("record not found")

// DefaultLimit is the page size applied when a search request carries none.
const DefaultLimit = 10

// SearchParams is the shared shape of every list/search operation: an
// optional free-text query, offset/limit pagination and a whitelisted sort.
type SearchParams struct {
	Query     string
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

// listQuery applies the shared search pattern to a GORM query: the free-text
// query becomes a case-insensitive substring match over matchColumns, the
// sort key is drawn from the per-entity whitelist (falling back to
// defaultSort), and pagination gets its defaults. LOWER(...) LIKE is used
// instead of ILIKE so Postgres and SQLite behave identically.
func listQuery(db *gorm.DB, p SearchParams, matchColumns []string, sortKeys map[string]string, defaultSort string) *gorm.DB {
	if q := strings.TrimSpace(p.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		conds := make([]string, 0, len(matchColumns))
		args := make([]interface{}, 0, len(matchColumns))
		for _, col := range matchColumns {
			conds = append(conds, fmt.Sprintf("LOWER(%s) LIKE ?", col))
			args = append(args, pattern)
		}
		db = db.Where(strings.Join(conds, " OR "), args...)
	}

	sortCol, ok := sortKeys[p.SortBy]
	if !ok {
		sortCol = defaultSort
	}
	direction := "DESC"
	if strings.EqualFold(p.SortOrder, "asc") {
		direction = "ASC"
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}

	return db.Order(sortCol + " " + direction).Limit(limit).Offset(offset)
}
