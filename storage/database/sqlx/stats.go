package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/arisha-glich/class-gecko-backend/core/business"
)

const (
	countStudentsQuery = `
SELECT COUNT(*) FROM students s
JOIN families f ON f.id = s.family_id
WHERE f.organization_id = ?`

	countActiveClassesQuery = `
SELECT COUNT(*) FROM classes c
JOIN terms t ON t.id = c.term_id
WHERE t.user_id = ? AND c.start_date <= ? AND c.end_date >= ?`

	// orders of the family accounts of the organization that went through payment
	revenueQuery = `
SELECT SUM(ca.amount) FROM orders o
JOIN carts ca ON ca.id = o.cart_id
WHERE EXISTS (SELECT 1 FROM payments p WHERE p.order_id = o.id)
  AND o.user_id IN (SELECT f.user_id FROM families f WHERE f.organization_id = ?)`
)

type statsRepository struct {
	db *sqlx.DB
}

var _ business.StatsRepository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *sqlx.DB) *statsRepository {
	return &statsRepository{db: db}
}

func (repo statsRepository) BusinessStatistics(ctx context.Context, ownerID string, now time.Time) (business.Statistics, error) {
	var stats business.Statistics
	if err := repo.db.GetContext(ctx, &stats.TotalStudents, repo.db.Rebind(countStudentsQuery), ownerID); err != nil {
		return stats, errors.Wrap(err, "counting students")
	}
	err := repo.db.GetContext(ctx, &stats.ActiveClasses, repo.db.Rebind(countActiveClassesQuery), ownerID, now, now)
	if err != nil {
		return stats, errors.Wrap(err, "counting active classes")
	}
	var revenue decimal.NullDecimal
	if err := repo.db.GetContext(ctx, &revenue, repo.db.Rebind(revenueQuery), ownerID); err != nil {
		return stats, errors.Wrap(err, "summing revenue")
	}
	stats.TotalRevenue = decimal.Zero
	if revenue.Valid {
		stats.TotalRevenue = revenue.Decimal
	}
	return stats, nil
}
