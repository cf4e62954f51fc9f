// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"youth-employment-chat/internal/models"
)

// PostgresStore reads statistical tables over database/sql. Table and column
// names are Korean and arrive from the catalog, so every identifier is quoted.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Query(ctx context.Context, spec QuerySpec) ([]models.Row, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	query, args := buildSelect(spec)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: query %s: %w", spec.Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("postgres: columns %s: %w", spec.Table, err)
	}

	var out []models.Row
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("postgres: scan %s: %w", spec.Table, err)
		}

		row := make(models.Row, len(cols))
		for i, col := range cols {
			row[col] = normalizeValue(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows %s: %w", spec.Table, err)
	}

	return out, nil
}

func buildSelect(spec QuerySpec) (string, []interface{}) {
	var b strings.Builder
	args := make([]interface{}, 0, len(spec.Filters)+1)

	b.WriteString("SELECT * FROM ")
	b.WriteString(pq.QuoteIdentifier(spec.Table))

	for i, f := range spec.Filters {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		args = append(args, f.Value)
		b.WriteString(pq.QuoteIdentifier(f.Column))
		b.WriteString(" = $")
		b.WriteString(strconv.Itoa(len(args)))
	}

	if spec.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(pq.QuoteIdentifier(spec.OrderBy))
		if spec.Ascending {
			b.WriteString(" ASC")
		} else {
			b.WriteString(" DESC")
		}
	}

	if spec.Limit > 0 {
		args = append(args, spec.Limit)
		b.WriteString(" LIMIT $")
		b.WriteString(strconv.Itoa(len(args)))
	}

	return b.String(), args
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case int64:
		return float64(val)
	case int32:
		return float64(val)
	case float32:
		return float64(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return val
	}
}
