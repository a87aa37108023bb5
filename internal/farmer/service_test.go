package farmer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/repository"
)

func TestRegisterFarmer(t *testing.T) {
	repo := repository.NewMockRepository()
	now := time.Date(2026, time.July, 15, 9, 0, 0, 0, time.UTC)
	svc := NewService(repo, 30*24*time.Hour, func() time.Time { return now })

	registered, err := svc.RegisterFarmer(context.Background(), &domain.Farmer{Username: "mang_jose"})

	require.NoError(t, err)
	assert.NotEmpty(t, registered.ID)
	assert.Equal(t, now, registered.LastActiveAt)
}

func TestRegisterFarmerRequiresUsername(t *testing.T) {
	repo := repository.NewMockRepository()
	svc := NewService(repo, 30*24*time.Hour, nil)

	_, err := svc.RegisterFarmer(context.Background(), &domain.Farmer{Username: "   "})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetFarmerNotFound(t *testing.T) {
	repo := repository.NewMockRepository()
	svc := NewService(repo, 30*24*time.Hour, nil)

	_, err := svc.GetFarmer(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrFarmerNotFound)
}

func TestCountActiveWindow(t *testing.T) {
	repo := repository.NewMockRepository()
	now := time.Date(2026, time.July, 15, 9, 0, 0, 0, time.UTC)
	window := 30 * 24 * time.Hour
	svc := NewService(repo, window, func() time.Time { return now })

	fresh, err := repo.UpsertFarmer(context.Background(), &domain.Farmer{Username: "fresh"})
	require.NoError(t, err)
	require.NoError(t, repo.TouchLastActive(context.Background(), fresh.ID, now.Add(-time.Hour)))

	stale, err := repo.UpsertFarmer(context.Background(), &domain.Farmer{Username: "stale"})
	require.NoError(t, err)
	require.NoError(t, repo.TouchLastActive(context.Background(), stale.ID, now.Add(-window-time.Hour)))

	count, err := svc.CountActive(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTouchActivityRevivesFarmer(t *testing.T) {
	repo := repository.NewMockRepository()
	now := time.Date(2026, time.July, 15, 9, 0, 0, 0, time.UTC)
	window := 30 * 24 * time.Hour
	svc := NewService(repo, window, func() time.Time { return now })

	f, err := repo.UpsertFarmer(context.Background(), &domain.Farmer{Username: "dormant"})
	require.NoError(t, err)
	require.NoError(t, repo.TouchLastActive(context.Background(), f.ID, now.Add(-2*window)))

	require.NoError(t, svc.TouchActivity(context.Background(), f.ID))

	count, err := svc.CountActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
