package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"inventory-catalog/internal/cache"
	"inventory-catalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindAll(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) FindByNameContaining(ctx context.Context, substring string) ([]domain.Item, error) {
	args := m.Called(ctx, substring)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCachedItemRepository_FindByIDHitsStoreOnce(t *testing.T) {
	mockRepo := new(MockItemRepository)
	repo := NewCachedItemRepository(mockRepo, cache.NewInMemoryCache(), time.Minute, zap.NewNop())
	ctx := context.Background()

	stored := newItem("Widget", 5, "9.99")
	stored.ID = 1
	mockRepo.On("FindByID", mock.Anything, int64(1)).Return(stored, nil).Once()

	first, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.True(t, first.Price.Equal(second.Price))
	mockRepo.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestCachedItemRepository_SaveInvalidates(t *testing.T) {
	inner := NewInMemoryItemRepository()
	repo := NewCachedItemRepository(inner, cache.NewInMemoryCache(), time.Minute, zap.NewNop())
	ctx := context.Background()

	saved, err := repo.Save(ctx, newItem("Widget", 5, "9.99"))
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)

	saved.Quantity = 1
	_, err = repo.Save(ctx, saved)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Quantity)
}

func TestCachedItemRepository_DeleteInvalidates(t *testing.T) {
	inner := NewInMemoryItemRepository()
	repo := NewCachedItemRepository(inner, cache.NewInMemoryCache(), time.Minute, zap.NewNop())
	ctx := context.Background()

	saved, err := repo.Save(ctx, newItem("Widget", 5, "9.99"))
	require.NoError(t, err)
	_, err = repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByID(ctx, saved.ID))

	_, err = repo.FindByID(ctx, saved.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestCachedItemRepository_NotFoundIsNotCached(t *testing.T) {
	mockRepo := new(MockItemRepository)
	repo := NewCachedItemRepository(mockRepo, cache.NewInMemoryCache(), time.Minute, zap.NewNop())

	mockRepo.On("FindByID", mock.Anything, int64(9)).Return(nil, domain.ErrItemNotFound).Twice()

	_, err := repo.FindByID(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	_, err = repo.FindByID(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	mockRepo.AssertExpectations(t)
}

// pausingRepository lets one FindByID read the store and then waits, so a write
// can land between the read and the cache fill
type pausingRepository struct {
	ItemRepository
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func newPausingRepository(inner ItemRepository) *pausingRepository {
	return &pausingRepository{
		ItemRepository: inner,
		loaded:         make(chan struct{}),
		release:        make(chan struct{}),
	}
}

func (p *pausingRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := p.ItemRepository.FindByID(ctx, id)
	p.once.Do(func() {
		close(p.loaded)
		<-p.release
	})
	return item, err
}

// readDuringWrite starts a FindByID that has already loaded the old row when
// write runs, then lets the read finish
func readDuringWrite(t *testing.T, repo *CachedItemRepository, pausing *pausingRepository, id int64, write func()) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = repo.FindByID(context.Background(), id)
	}()

	<-pausing.loaded
	write()
	close(pausing.release)
	<-done
}

func TestCachedItemRepository_ReadRacingUpdateDoesNotCacheOldRow(t *testing.T) {
	inner := NewInMemoryItemRepository()
	pausing := newPausingRepository(inner)
	repo := NewCachedItemRepository(pausing, cache.NewInMemoryCache(), time.Minute, zap.NewNop())
	ctx := context.Background()

	saved, err := inner.Save(ctx, newItem("Widget", 5, "9.99"))
	require.NoError(t, err)

	readDuringWrite(t, repo, pausing, saved.ID, func() {
		update := saved.Clone()
		update.Quantity = 99
		_, err := repo.Save(ctx, update)
		require.NoError(t, err)
	})

	found, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 99, found.Quantity)
}

func TestCachedItemRepository_ReadRacingDeleteDoesNotResurrectItem(t *testing.T) {
	inner := NewInMemoryItemRepository()
	pausing := newPausingRepository(inner)
	repo := NewCachedItemRepository(pausing, cache.NewInMemoryCache(), time.Minute, zap.NewNop())
	ctx := context.Background()

	saved, err := inner.Save(ctx, newItem("Widget", 5, "9.99"))
	require.NoError(t, err)

	readDuringWrite(t, repo, pausing, saved.ID, func() {
		require.NoError(t, repo.DeleteByID(ctx, saved.ID))
	})

	_, err = repo.FindByID(ctx, saved.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
