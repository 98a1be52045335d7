package database

import (
	"context"
	"errors"
	"testing"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstance_WithTransaction(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		err := dm.WithTransaction(ctx, func(tx contract.DataManager) error {
			return tx.User().Create(ctx, &entity.User{Name: "boss", Role: domain.RoleBoss, MessagingID: "U1"})
		})
		require.NoError(t, err)

		got, err := dm.User().GetByMessagingID(ctx, "U1")
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := dm.WithTransaction(ctx, func(tx contract.DataManager) error {
			if err := tx.User().Create(ctx, &entity.User{Name: "sec", Role: domain.RoleSecretary, MessagingID: "U2"}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := dm.User().GetByMessagingID(ctx, "U2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestInstance_CategoriesSeeded(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)
	ctx := context.Background()

	require.NoError(t, dm.Category().Seed(ctx))

	categories, err := dm.Category().List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, len(domain.Categories))
	assert.Equal(t, domain.Categories[0].Code, categories[0].Code)
}
