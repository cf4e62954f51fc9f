// internal/store/store.go

// Package store reads rows from the statistical tables backing the chat
// pipeline. It is read-only.
package store

import (
	"context"
	"errors"
	"fmt"

	"youth-employment-chat/internal/catalog"
	"youth-employment-chat/internal/models"
)

const (
	BackendPostgres      = "postgres"
	BackendElasticsearch = "elasticsearch"
)

var ErrInvalidQuery = errors.New("INVALID_QUERY")

// QuerySpec is an equality-filtered, period-ordered read of one table.
// Limit <= 0 means no limit.
type QuerySpec struct {
	Table     string
	Filters   []catalog.Filter
	OrderBy   string
	Ascending bool
	Limit     int
}

// TabularStore is the read capability the pipeline depends on.
type TabularStore interface {
	Query(ctx context.Context, spec QuerySpec) ([]models.Row, error)
}

// SpecFor builds the newest-first query for a catalog dataset.
func SpecFor(d catalog.Descriptor) QuerySpec {
	return QuerySpec{
		Table:   d.Table,
		Filters: d.Filters,
		OrderBy: d.PeriodColumn,
		Limit:   d.Limit,
	}
}

// HistoryFor builds the oldest-first, unlimited query for a catalog dataset.
func HistoryFor(d catalog.Descriptor) QuerySpec {
	return QuerySpec{
		Table:     d.Table,
		Filters:   d.Filters,
		OrderBy:   d.PeriodColumn,
		Ascending: true,
	}
}

func (s QuerySpec) validate() error {
	if s.Table == "" {
		return fmt.Errorf("%w: table is required", ErrInvalidQuery)
	}
	for _, f := range s.Filters {
		if f.Column == "" {
			return fmt.Errorf("%w: filter column is required", ErrInvalidQuery)
		}
	}
	return nil
}
