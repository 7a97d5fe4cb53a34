package service

import (
	"fmt"
	"strings"

	"videotube/internal/models"
	"videotube/internal/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 3
	MaxLimit     = 100
)

// PageQuery is a caller's page request as it arrives from the wire. Callers
// fill in DefaultPage and DefaultLimit for absent values.
type PageQuery struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
}

// Sortable fields by wire name. Only these column names ever reach ORDER BY.
var (
	videoSortColumns = map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"title":     "title",
		"duration":  "duration",
		"views":     "views",
	}
	timeSortColumns = map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
)

// NewPageQuery returns a query for the first page with default size.
func NewPageQuery() PageQuery {
	return PageQuery{Page: DefaultPage, Limit: DefaultLimit}
}

type pageRequest struct {
	opts  repository.ListOptions
	page  int
	limit int
}

// resolve validates q against the sortable columns and converts it into
// repository options.
func (q PageQuery) resolve(columns map[string]string) (pageRequest, error) {
	if q.Page < 1 {
		return pageRequest{}, models.NewValidationError("page must be a positive integer")
	}
	if q.Limit < 1 {
		return pageRequest{}, models.NewValidationError("limit must be a positive integer")
	}
	limit := min(q.Limit, MaxLimit)

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	column, ok := columns[sortBy]
	if !ok {
		return pageRequest{}, models.NewValidationError(fmt.Sprintf("cannot sort by %q", sortBy))
	}

	var desc bool
	switch strings.ToLower(q.SortType) {
	case "", "desc":
		desc = true
	case "asc":
	default:
		return pageRequest{}, models.NewValidationError(`sortType must be "asc" or "desc"`)
	}

	return pageRequest{
		opts: repository.ListOptions{
			Offset:     (q.Page - 1) * limit,
			Limit:      limit,
			SortColumn: column,
			Desc:       desc,
		},
		page:  q.Page,
		limit: limit,
	}, nil
}

func newPage[T any](req pageRequest, items []T, total int64) *models.Page[T] {
	return models.NewPage(items, req.page, req.limit, total)
}
