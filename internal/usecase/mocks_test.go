package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oceancolor-service/internal/domain"
)

// MockTileRepository is a mock of TileRepository
type MockTileRepository struct {
	mock.Mock
}

func (m *MockTileRepository) ListTimestamps(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockTileRepository) FetchTile(ctx context.Context, addr domain.TileAddress, timestamp int64) ([]byte, error) {
	args := m.Called(ctx, addr, timestamp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockAnalysisRepository is a mock of AnalysisRepository
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) Upsert(ctx context.Context, record domain.AnalysisRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAnalysisRepository) GetByTimestamp(ctx context.Context, timestamp int64) (*domain.AnalysisRecord, error) {
	args := m.Called(ctx, timestamp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisRecord), args.Error(1)
}

func (m *MockAnalysisRepository) List(ctx context.Context, limit int) ([]domain.AnalysisRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnalysisRecord), args.Error(1)
}

func (m *MockAnalysisRepository) ProcessedTimestamps(ctx context.Context) (map[int64]struct{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]struct{}), args.Error(1)
}

// MockBoundaryRepository is a mock of BoundaryRepository
type MockBoundaryRepository struct {
	mock.Mock
}

func (m *MockBoundaryRepository) LandRings(ctx context.Context) ([]domain.Ring, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ring), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetTile(ctx context.Context, source string, addr domain.TileAddress, timestamp int64) ([]byte, error) {
	args := m.Called(ctx, source, addr, timestamp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) SetTile(ctx context.Context, source string, addr domain.TileAddress, timestamp int64, data []byte, ttl time.Duration) error {
	args := m.Called(ctx, source, addr, timestamp, data, ttl)
	return args.Error(0)
}
