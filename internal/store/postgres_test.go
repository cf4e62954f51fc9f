// internal/store/postgres_test.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youth-employment-chat/internal/catalog"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestBuildSelect(t *testing.T) {
	tests := []struct {
		name      string
		spec      QuerySpec
		wantQuery string
		wantArgs  []interface{}
	}{
		{
			name: "latest rows",
			spec: QuerySpec{
				Table:   "성별_첫_일자리_월평균임금",
				Filters: []catalog.Filter{{Column: "성별", Value: "계"}, {Column: "연령구분", Value: "20~34세"}},
				OrderBy: "시점",
				Limit:   3,
			},
			wantQuery: `SELECT * FROM "성별_첫_일자리_월평균임금" WHERE "성별" = $1 AND "연령구분" = $2 ORDER BY "시점" DESC LIMIT $3`,
			wantArgs:  []interface{}{"계", "20~34세", 3},
		},
		{
			name: "history",
			spec: QuerySpec{
				Table:     "t",
				Filters:   []catalog.Filter{{Column: "연령별", Value: "20~34세"}},
				OrderBy:   "시점",
				Ascending: true,
			},
			wantQuery: `SELECT * FROM "t" WHERE "연령별" = $1 ORDER BY "시점" ASC`,
			wantArgs:  []interface{}{"20~34세"},
		},
		{
			name:      "bare table",
			spec:      QuerySpec{Table: `we"ird`},
			wantQuery: `SELECT * FROM "we""ird"`,
			wantArgs:  []interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildSelect(tt.spec)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestPostgresStore_Query(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewPostgresStore(db)

	rows := sqlmock.NewRows([]string{"시점", "고용률", "취업자"}).
		AddRow([]byte("2025.05"), 46.1, int64(4123)).
		AddRow("2024.05", float32(45.5), int64(4200))

	mock.ExpectQuery(`SELECT * FROM "연령별_경제활동상태" WHERE "연령별" = $1 ORDER BY "시점" DESC LIMIT $2`).
		WithArgs("20~34세", 3).
		WillReturnRows(rows)

	got, err := s.Query(context.Background(), QuerySpec{
		Table:   "연령별_경제활동상태",
		Filters: []catalog.Filter{{Column: "연령별", Value: "20~34세"}},
		OrderBy: "시점",
		Limit:   3,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2025.05", got[0]["시점"])
	assert.Equal(t, 46.1, got[0]["고용률"])
	assert.Equal(t, float64(4123), got[0]["취업자"])
	assert.Equal(t, float64(45.5), got[1]["고용률"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewPostgresStore(db)

	mock.ExpectQuery(`SELECT * FROM "t" ORDER BY "시점" DESC LIMIT $1`).
		WithArgs(5).
		WillReturnError(errors.New("relation does not exist"))

	_, err := s.Query(context.Background(), QuerySpec{Table: "t", OrderBy: "시점", Limit: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: query t")
	assert.Contains(t, err.Error(), "relation does not exist")
}

func TestPostgresStore_InvalidSpec(t *testing.T) {
	db, _ := setupMockDB(t)
	s := NewPostgresStore(db)

	_, err := s.Query(context.Background(), QuerySpec{})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = s.Query(context.Background(), QuerySpec{Table: "t", Filters: []catalog.Filter{{Value: "x"}}})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestSpecForAndHistoryFor(t *testing.T) {
	d, ok := catalog.Default().Lookup(catalog.KeyUnemployment)
	require.True(t, ok)

	latest := SpecFor(d)
	assert.Equal(t, d.Table, latest.Table)
	assert.Equal(t, d.Limit, latest.Limit)
	assert.False(t, latest.Ascending)
	assert.Equal(t, catalog.PeriodColumn, latest.OrderBy)

	history := HistoryFor(d)
	assert.True(t, history.Ascending)
	assert.Zero(t, history.Limit)
	assert.Equal(t, d.Filters, history.Filters)
}
