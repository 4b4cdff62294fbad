package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"audio-marketplace/internal/apperr"
	"audio-marketplace/internal/dto"
	"audio-marketplace/internal/model"
	"audio-marketplace/internal/repository"
)

func newCustomRequestFixture() (*mockCustomRequestRepo, *mockNotifier, CustomRequestService) {
	repo := &mockCustomRequestRepo{}
	notifier := &mockNotifier{}
	svc := NewCustomRequestService(repo, notifier, zap.NewNop())
	return repo, notifier, svc
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()
	deadline := time.Now().Add(72 * time.Hour)

	t.Run("stores a pending request and alerts the admin", func(t *testing.T) {
		repo, notifier, svc := newCustomRequestFixture()

		request, err := svc.CreateRequest(ctx, &dto.CreateCustomRequestRequest{
			Email:       "client@example.com",
			Description: "30 second radio jingle",
			Budget:      decimal.RequireFromString("150.00"),
			Deadline:    &deadline,
		})
		require.NoError(t, err)

		assert.Equal(t, "pending", request.Status)
		assert.Nil(t, request.SessionID)
		require.Len(t, repo.created, 1)
		assert.Equal(t, []string{"client@example.com"}, notifier.asyncNotifies)
	})

	t.Run("past deadline", func(t *testing.T) {
		repo, _, svc := newCustomRequestFixture()
		past := time.Now().Add(-time.Hour)

		_, err := svc.CreateRequest(ctx, &dto.CreateCustomRequestRequest{
			Email:       "client@example.com",
			Description: "30 second radio jingle",
			Budget:      decimal.RequireFromString("150.00"),
			Deadline:    &past,
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Empty(t, repo.created)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, notifier, svc := newCustomRequestFixture()

		_, err := svc.CreateRequest(ctx, &dto.CreateCustomRequestRequest{
			Email:    "client@example.com",
			Deadline: &deadline,
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Empty(t, notifier.asyncNotifies)
	})
}

func TestUpdateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		repo, _, svc := newCustomRequestFixture()
		repo.updated = &model.CustomAudioRequest{ID: 4, Status: "completed"}

		amount := decimal.RequireFromString("150.00")
		request, err := svc.UpdateRequest(ctx, 4, &dto.UpdateCustomRequestRequest{
			Status:     "completed",
			AmountPaid: &amount,
		})
		require.NoError(t, err)
		assert.Equal(t, "completed", request.Status)
	})

	t.Run("empty update", func(t *testing.T) {
		_, _, svc := newCustomRequestFixture()

		_, err := svc.UpdateRequest(ctx, 4, &dto.UpdateCustomRequestRequest{})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("unknown request", func(t *testing.T) {
		repo, _, svc := newCustomRequestFixture()
		repo.updateErr = errors.New("record not found")

		_, err := svc.UpdateRequest(ctx, 99, &dto.UpdateCustomRequestRequest{Status: "rejected"})
		require.Error(t, err)
		assert.Equal(t, apperr.KindDatabase, apperr.KindOf(err))
	})
}

func TestListRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("paginates and sums revenue", func(t *testing.T) {
		repo, _, svc := newCustomRequestFixture()
		repo.listRows = []*model.CustomAudioRequest{{ID: 1}, {ID: 2}}
		repo.listTotal = 25
		repo.sumResult = decimal.RequireFromString("1234.50")

		resp, err := svc.ListRequests(ctx, &repository.CustomRequestFilter{Page: 2, Limit: 10})
		require.NoError(t, err)

		assert.True(t, resp.Success)
		assert.Equal(t, int64(25), resp.TotalRequests)
		assert.Equal(t, int64(3), resp.TotalPages)
		assert.Equal(t, 2, resp.CurrentPage)
		assert.True(t, resp.TotalRevenue.Equal(decimal.RequireFromString("1234.50")))
	})

	t.Run("nil filter", func(t *testing.T) {
		repo, _, svc := newCustomRequestFixture()
		repo.listTotal = 3

		resp, err := svc.ListRequests(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.TotalPages)
		assert.Equal(t, 1, resp.CurrentPage)
	})
}
