package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"audio-marketplace/internal/model"
)

func testPurchase(sessionID string) *model.PaidAudioPurchase {
	return &model.PaidAudioPurchase{
		Email:     "buyer@example.com",
		AudioID:   1,
		Amount:    decimal.RequireFromString("49.99"),
		SessionID: sessionID,
		Date:      time.Now(),
	}
}

func TestPurchaseRepository_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()

	t.Run("first insert writes a row", func(t *testing.T) {
		repo := NewPurchaseRepository(setupTestDB(t))

		inserted, err := repo.CreateIfAbsent(ctx, testPurchase("cs_1"))
		require.NoError(t, err)
		assert.True(t, inserted)

		stored, err := repo.FindBySessionID(ctx, "cs_1")
		require.NoError(t, err)
		assert.Equal(t, "buyer@example.com", stored.Email)
		assert.True(t, stored.Amount.Equal(decimal.RequireFromString("49.99")))
	})

	t.Run("same session id is dropped silently", func(t *testing.T) {
		repo := NewPurchaseRepository(setupTestDB(t))

		inserted, err := repo.CreateIfAbsent(ctx, testPurchase("cs_dup"))
		require.NoError(t, err)
		assert.True(t, inserted)

		replay := testPurchase("cs_dup")
		replay.Email = "someone-else@example.com"
		inserted, err = repo.CreateIfAbsent(ctx, replay)
		require.NoError(t, err)
		assert.False(t, inserted)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "buyer@example.com", all[0].Email)
	})

	t.Run("different sessions both land", func(t *testing.T) {
		repo := NewPurchaseRepository(setupTestDB(t))

		for _, sid := range []string{"cs_a", "cs_b", "cs_c"} {
			inserted, err := repo.CreateIfAbsent(ctx, testPurchase(sid))
			require.NoError(t, err)
			assert.True(t, inserted)
		}

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestPurchaseRepository_FindBySessionID(t *testing.T) {
	ctx := context.Background()
	repo := NewPurchaseRepository(setupTestDB(t))

	_, err := repo.FindBySessionID(ctx, "cs_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
