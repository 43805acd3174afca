package sqlxrepos

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*statsRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStatsRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestStatsRepository_BusinessStatistics(t *testing.T) {
	now := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	pg := sqlx.Rebind(sqlx.DOLLAR, countActiveClassesQuery)

	tests := []struct {
		name        string
		revenue     driver.Value
		wantRevenue decimal.Decimal
	}{
		{name: "with payments", revenue: "1250.50", wantRevenue: decimal.RequireFromString("1250.5")},
		{name: "no payments", revenue: nil, wantRevenue: decimal.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setup(t)
			mock.ExpectQuery(sqlx.Rebind(sqlx.DOLLAR, countStudentsQuery)).WithArgs("owner").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
			mock.ExpectQuery(pg).WithArgs("owner", now, now).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
			mock.ExpectQuery(sqlx.Rebind(sqlx.DOLLAR, revenueQuery)).WithArgs("owner").
				WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(tt.revenue))

			stats, err := repo.BusinessStatistics(context.Background(), "owner", now)
			require.NoError(t, err)
			assert.EqualValues(t, 7, stats.TotalStudents)
			assert.EqualValues(t, 3, stats.ActiveClasses)
			assert.True(t, tt.wantRevenue.Equal(stats.TotalRevenue), "got %s", stats.TotalRevenue)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("failure", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectQuery(sqlx.Rebind(sqlx.DOLLAR, countStudentsQuery)).WithArgs("owner").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
		mock.ExpectQuery(pg).WithArgs("owner", now, now).WillReturnError(errors.New("connection reset"))

		_, err := repo.BusinessStatistics(context.Background(), "owner", now)
		require.Error(t, err)
		assert.Equal(t, "counting active classes: connection reset", err.Error())
	})
}
