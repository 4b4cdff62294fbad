package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio-marketplace/internal/model"
)

func paidCustomRequest(sessionID string, amount string, date time.Time) *model.CustomAudioRequest {
	sid := sessionID
	return &model.CustomAudioRequest{
		Email:       "client@example.com",
		Description: "30 second radio jingle",
		Status:      "pending",
		AmountPaid:  decimal.RequireFromString(amount),
		SessionID:   &sid,
		RequestDate: date,
	}
}

func TestCustomRequestRepository_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()

	t.Run("deduplicates on session id", func(t *testing.T) {
		repo := NewCustomRequestRepository(setupTestDB(t))

		inserted, err := repo.CreateIfAbsent(ctx, paidCustomRequest("cs_x", "125.00", time.Now()))
		require.NoError(t, err)
		assert.True(t, inserted)

		inserted, err = repo.CreateIfAbsent(ctx, paidCustomRequest("cs_x", "125.00", time.Now()))
		require.NoError(t, err)
		assert.False(t, inserted)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("direct requests without session ids do not collide", func(t *testing.T) {
		repo := NewCustomRequestRepository(setupTestDB(t))
		deadline := time.Now().Add(72 * time.Hour)

		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Create(ctx, &model.CustomAudioRequest{
				Email:       "client@example.com",
				Description: "direct request",
				Budget:      decimal.RequireFromString("80.00"),
				Deadline:    &deadline,
				Status:      "pending",
				RequestDate: time.Now(),
			}))
		}

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestCustomRequestRepository_List(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, repo CustomRequestRepository) {
		t.Helper()
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		rows := []*model.CustomAudioRequest{
			paidCustomRequest("cs_1", "100.00", base),
			paidCustomRequest("cs_2", "50.00", base.AddDate(0, 0, 3)),
			paidCustomRequest("cs_3", "25.00", base.AddDate(0, 0, 6)),
		}
		rows[2].Status = "completed"
		for _, row := range rows {
			require.NoError(t, repo.Create(ctx, row))
		}
	}

	t.Run("date window", func(t *testing.T) {
		repo := NewCustomRequestRepository(setupTestDB(t))
		seed(t, repo)

		start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

		rows, total, err := repo.List(ctx, &CustomRequestFilter{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "cs_2", *rows[0].SessionID)
	})

	t.Run("status filter", func(t *testing.T) {
		repo := NewCustomRequestRepository(setupTestDB(t))
		seed(t, repo)

		rows, total, err := repo.List(ctx, &CustomRequestFilter{Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "completed", rows[0].Status)
	})

	t.Run("pagination keeps the full count", func(t *testing.T) {
		repo := NewCustomRequestRepository(setupTestDB(t))
		seed(t, repo)

		rows, total, err := repo.List(ctx, &CustomRequestFilter{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, rows, 1)
	})

	t.Run("newest first", func(t *testing.T) {
		repo := NewCustomRequestRepository(setupTestDB(t))
		seed(t, repo)

		rows, _, err := repo.List(ctx, nil)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "cs_3", *rows[0].SessionID)
	})
}

func TestCustomRequestRepository_SumAmountPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("sums the filtered rows", func(t *testing.T) {
		repo := NewCustomRequestRepository(setupTestDB(t))
		now := time.Now()
		require.NoError(t, repo.Create(ctx, paidCustomRequest("cs_1", "100.00", now)))
		require.NoError(t, repo.Create(ctx, paidCustomRequest("cs_2", "25.50", now)))

		total, err := repo.SumAmountPaid(ctx, nil)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.RequireFromString("125.50")), "total is %s", total)
	})

	t.Run("empty table sums to zero", func(t *testing.T) {
		repo := NewCustomRequestRepository(setupTestDB(t))

		total, err := repo.SumAmountPaid(ctx, nil)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestCustomRequestRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomRequestRepository(setupTestDB(t))
	request := paidCustomRequest("cs_u", "125.00", time.Now())
	require.NoError(t, repo.Create(ctx, request))

	updated, err := repo.Update(ctx, request.ID, map[string]interface{}{
		"status": "in_progress",
		"notes":  "assigned to studio B",
	})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", updated.Status)
	assert.Equal(t, "assigned to studio B", updated.Notes)
	assert.True(t, updated.AmountPaid.Equal(decimal.RequireFromString("125.00")))
}
