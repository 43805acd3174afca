package gormrepos_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arisha-glich/class-gecko-backend/core/holiday"
	"github.com/arisha-glich/class-gecko-backend/core/location"
	"github.com/arisha-glich/class-gecko-backend/storage/database/gormrepos"
	"github.com/arisha-glich/class-gecko-backend/tests"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	db := testutil.PrepareDB(t)
	repo := gormrepos.NewHolidayRepository(db)

	day := func(d int) time.Time { return time.Date(2025, 12, d, 0, 0, 0, 0, time.UTC) }
	newYear, err := repo.Create(ctx, holiday.Holiday{UserID: "owner", Name: "New Year", StartDate: day(31), EndDate: day(31)})
	require.NoError(t, err)
	xmas, err := repo.Create(ctx, holiday.Holiday{UserID: "owner", Name: "Christmas", StartDate: day(24), EndDate: day(26)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, holiday.Holiday{UserID: "other", Name: "Boxing day", StartDate: day(26), EndDate: day(26)})
	require.NoError(t, err)
	assert.NotZero(t, newYear.ID)
	assert.False(t, newYear.CreatedAt.IsZero())

	t.Run("query", func(t *testing.T) {
		got, err := repo.Query(ctx, "owner")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, xmas.ID, got[0].ID) // by start date
		assert.Equal(t, newYear.ID, got[1].ID)

		all, err := repo.Query(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		none, err := repo.Query(ctx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("get", func(t *testing.T) {
		got, err := repo.Get(ctx, "owner", xmas.ID)
		require.NoError(t, err)
		assert.Equal(t, "Christmas", got.Name)
		assert.True(t, day(24).Equal(got.StartDate))

		_, err = repo.Get(ctx, "other", xmas.ID)
		assert.Equal(t, holiday.ErrNotFound, err)
		_, err = repo.Get(ctx, "owner", 9999)
		assert.Equal(t, holiday.ErrNotFound, err)
	})

	t.Run("update", func(t *testing.T) {
		xmas.Name = "Xmas"
		xmas.IsRecurring = true
		got, err := repo.Update(ctx, xmas)
		require.NoError(t, err)
		assert.Equal(t, "Xmas", got.Name)
		assert.True(t, got.IsRecurring)
		assert.Equal(t, "owner", got.UserID)

		reloaded, err := repo.Get(ctx, "owner", xmas.ID)
		require.NoError(t, err)
		assert.Equal(t, "Xmas", reloaded.Name)
	})

	t.Run("delete", func(t *testing.T) {
		assert.Equal(t, holiday.ErrNotFound, repo.Delete(ctx, "other", newYear.ID))
		require.NoError(t, repo.Delete(ctx, "owner", newYear.ID))
		assert.Equal(t, holiday.ErrNotFound, repo.Delete(ctx, "owner", newYear.ID))
	})
}

func TestStore_shared(t *testing.T) {
	ctx := context.Background()
	repo := gormrepos.NewLocationRepository(testutil.PrepareDB(t))

	first, err := repo.Create(ctx, location.Location{Name: "Main hall", Address: "1 Main St"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, location.Location{Name: "Studio", Address: "2 Main St"})
	require.NoError(t, err)

	// the owner is ignored by shared stores
	got, err := repo.Get(ctx, "anyone", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main hall", got.Name)

	all, err := repo.Query(ctx, "anyone")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.ElementsMatch(t, []int{first.ID, second.ID}, []int{all[0].ID, all[1].ID})

	require.NoError(t, repo.Delete(ctx, "anyone", second.ID))
	_, err = repo.Get(ctx, "", second.ID)
	assert.Equal(t, location.ErrNotFound, err)
}
