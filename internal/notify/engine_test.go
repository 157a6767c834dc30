package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Dan9191/installment-service/internal/models"
	"github.com/Dan9191/installment-service/internal/notify"
	mock_notify "github.com/Dan9191/installment-service/internal/notify/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	records []models.Notification
}

func (s *memoryStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = int64(len(s.records) + 1)
	s.records = append(s.records, *n)
	return nil
}

func (s *memoryStore) ExistsWithKeyBetween(ctx context.Context, key string, from, to time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Key == key && !r.CreatedAt.Before(from) && r.CreatedAt.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestEngine_ShouldNotifyIsIdempotentWithinADay(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	engine := notify.NewEngine(&memoryStore{}, time.UTC).WithClock(c.now)
	key := notify.OverdueKey(5)

	first, err := engine.ShouldNotify(ctx, key)
	require.NoError(t, err)
	second, err := engine.ShouldNotify(ctx, key)
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, first, second)

	_, err = engine.Create(ctx, "overdue", models.NotificationOverdue, key)
	require.NoError(t, err)

	c.t = c.t.Add(14 * time.Hour) // 23:00 the same day
	should, err := engine.ShouldNotify(ctx, key)
	require.NoError(t, err)
	assert.False(t, should)

	other, err := engine.ShouldNotify(ctx, notify.UpcomingKey(5))
	require.NoError(t, err)
	assert.True(t, other)

	c.t = c.t.Add(2 * time.Hour) // next calendar day
	should, err = engine.ShouldNotify(ctx, key)
	require.NoError(t, err)
	assert.True(t, should)
}

func TestEngine_DayFollowsLocation(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("UTC-5", -5*60*60)
	c := &clock{t: time.Date(2025, 3, 10, 8, 0, 0, 0, loc)}
	engine := notify.NewEngine(&memoryStore{}, loc).WithClock(c.now)
	key := notify.LowStockKey(1)

	_, err := engine.Create(ctx, "low", models.NotificationLowStock, key)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", engine.Today())

	// 02:00 UTC on the 11th is still the 10th in loc
	c.t = time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC)
	exists, err := engine.ExistsTodayWithKey(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEngine_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_notify.NewMockStore(ctrl)
	engine := notify.NewEngine(store, time.UTC)
	ctx := context.Background()
	boom := errors.New("connection refused")

	store.EXPECT().
		ExistsWithKeyBetween(gomock.Any(), "overdue|1", gomock.Any(), gomock.Any()).
		Return(false, boom)
	_, err := engine.ShouldNotify(ctx, notify.OverdueKey(1))
	assert.ErrorIs(t, err, boom)

	store.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		Return(boom)
	n, err := engine.Create(ctx, "msg", models.NotificationOverdue, notify.OverdueKey(1))
	assert.Nil(t, n)
	assert.ErrorIs(t, err, boom)
}
