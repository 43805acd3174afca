package commission

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/organization"
)

// memRepo keeps commissions in a slice; only what the service needs.
type memRepo struct {
	rows []Commission
	orgs map[int]organization.Organization
}

func (r *memRepo) matches(c Commission, s Scope) bool {
	if (s.BusinessID == nil) != (c.BusinessID == nil) {
		return false
	}
	if s.BusinessID != nil && *s.BusinessID != *c.BusinessID {
		return false
	}
	return (s.Country == "" || s.Country == c.Country) && (s.Currency == "" || s.Currency == c.Currency)
}

func (r *memRepo) ReplaceCommission(_ context.Context, s Scope, c Commission) (Commission, error) {
	for i := range r.rows {
		if r.rows[i].IsActive && r.matches(r.rows[i], s) {
			r.rows[i].IsActive = false
		}
	}
	c.ID = len(r.rows) + 1
	r.rows = append(r.rows, c)
	return c, nil
}

func (r *memRepo) QueryCommissions(context.Context, QueryFilter, core.PageQuery) ([]Commission, int64, error) {
	return r.rows, int64(len(r.rows)), nil
}

func (r *memRepo) GetCommission(_ context.Context, id int) (Commission, error) {
	for _, c := range r.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return Commission{}, ErrNotFound
}

func (r *memRepo) UpdateCommission(_ context.Context, c Commission) (Commission, error) {
	r.rows[c.ID-1] = c
	return c, nil
}

func (r *memRepo) DeleteCommission(context.Context, int) error { return nil }

func (r *memRepo) GetActiveCommission(_ context.Context, s Scope) (Commission, error) {
	var found []Commission
	for _, c := range r.rows {
		if c.IsActive && r.matches(c, s) {
			found = append(found, c)
		}
	}
	if len(found) == 0 {
		return Commission{}, ErrNotFound
	}
	sort.Slice(found, func(i, j int) bool { return found[i].EffectiveFrom.After(found[j].EffectiveFrom) })
	return found[0], nil
}

func (r *memRepo) GetBusiness(_ context.Context, id int) (organization.Organization, error) {
	if org, ok := r.orgs[id]; ok {
		return org, nil
	}
	return organization.Organization{}, ErrBusinessNotFound
}

func newTestService() (*Service, *memRepo) {
	repo := &memRepo{orgs: map[int]organization.Organization{
		1: {ID: 1, CompanyName: "Gecko Dance"},
		2: {ID: 2, CompanyName: "Gecko Swim"},
	}}
	return NewService(repo), repo
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	ten, five := dec("10"), dec("5")

	_, err := svc.Resolve(ctx, 1, "US", "USD")
	assert.Equal(t, ErrNotFound, err)

	global, err := svc.CreateGlobal(ctx, NewCommission{CommissionType: TypePercentage, CommissionValue: &ten, Country: "USA"})
	require.NoError(t, err)
	assert.Equal(t, "US", global.Country, "USA is normalized")
	assert.Equal(t, "USD", global.Currency)
	assert.Equal(t, GlobalBusinessName, global.BusinessName)

	res, err := svc.Resolve(ctx, 1, "US", "USD")
	require.NoError(t, err)
	assert.True(t, res.IsGlobal, "falls back to the global commission")
	assert.Equal(t, global.ID, res.ID)

	org, err := svc.CreateForBusiness(ctx, NewBusinessCommission{
		BusinessID:    1,
		NewCommission: NewCommission{CommissionType: TypeFixed, CommissionValue: &five},
	})
	require.NoError(t, err)
	assert.Equal(t, "Gecko Dance", org.BusinessName)

	res, err = svc.Resolve(ctx, 1, "US", "USD")
	require.NoError(t, err)
	assert.False(t, res.IsGlobal, "business commission wins")
	assert.Equal(t, org.ID, res.ID)

	res, err = svc.Resolve(ctx, 2, "US", "USD")
	require.NoError(t, err)
	assert.True(t, res.IsGlobal, "other businesses keep the global one")

	_, err = svc.Resolve(ctx, 1, "CA", "CAD")
	assert.Equal(t, ErrNotFound, err, "no commission for another country")
}

func TestResolveIgnoresInactiveRows(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	ten := dec("10")

	org, err := svc.CreateForBusiness(ctx, NewBusinessCommission{
		BusinessID:    1,
		NewCommission: NewCommission{CommissionType: TypePercentage, CommissionValue: &ten},
	})
	require.NoError(t, err)
	off := false
	_, err = svc.Update(ctx, org.ID, UpdateCommission{IsActive: &off})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, 1, "US", "USD")
	assert.Equal(t, ErrNotFound, err)
}

func TestCreateSupersedesActiveRows(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	ten, twenty := dec("10"), dec("20")

	_, err := svc.CreateGlobal(ctx, NewCommission{CommissionType: TypePercentage, CommissionValue: &ten})
	require.NoError(t, err)
	_, err = svc.CreateGlobal(ctx, NewCommission{CommissionType: TypePercentage, CommissionValue: &ten, Currency: "CAD"})
	require.NoError(t, err)
	_, err = svc.CreateGlobal(ctx, NewCommission{CommissionType: TypePercentage, CommissionValue: &twenty})
	require.NoError(t, err)

	assert.False(t, repo.rows[0].IsActive, "same country & currency is deactivated")
	assert.True(t, repo.rows[1].IsActive, "other currency is kept")
	assert.True(t, repo.rows[2].IsActive)

	_, err = svc.CreateForBusiness(ctx, NewBusinessCommission{
		BusinessID:    99,
		NewCommission: NewCommission{CommissionType: TypePercentage, CommissionValue: &ten},
	})
	assert.Equal(t, ErrBusinessNotFound, err)
}

func TestReplaceForBusinessDeactivatesAllCountries(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	ten := dec("10")

	for _, country := range []string{"US", "CA"} {
		_, err := svc.CreateForBusiness(ctx, NewBusinessCommission{
			BusinessID:    1,
			NewCommission: NewCommission{CommissionType: TypePercentage, CommissionValue: &ten, Country: country},
		})
		require.NoError(t, err)
	}
	c, err := svc.ReplaceForBusiness(ctx, 1, TypeFixed, nil, "", "")
	require.NoError(t, err)
	assert.True(t, c.CommissionValue.IsZero())
	assert.Equal(t, DefaultCountry, c.Country)
	assert.False(t, repo.rows[0].IsActive)
	assert.False(t, repo.rows[1].IsActive)
	assert.True(t, repo.rows[2].IsActive)
}

func TestMaxTransactionAmtZeroIsNull(t *testing.T) {
	svc, _ := newTestService()
	zero, ten := dec("0"), dec("10")
	eff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)

	d, err := svc.CreateGlobal(context.Background(), NewCommission{
		CommissionType:    TypePercentage,
		CommissionValue:   &ten,
		MaxTransactionAmt: &zero,
		EffectiveFrom:     &eff,
	})
	require.NoError(t, err)
	assert.False(t, d.MaxTransactionAmt.Valid)
	assert.Equal(t, 2025, d.EffectiveFrom.Year())
}
