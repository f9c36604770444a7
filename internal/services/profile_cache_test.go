package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"repair-system/internal/entities"
)

type fakeCacheRepo struct {
	store map[string]string
	sets  int
	gets  int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: map[string]string{}}
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.sets++
	s, ok := value.(string)
	if !ok {
		return errors.New("unexpected cache value type")
	}
	f.store[key] = s
	return nil
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	f.gets++
	v, ok := f.store[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (f *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.store, k)
	}
	return nil
}

type countingUserRepo struct {
	fakeUserRepo
	profileLookups int
}

func (f *countingUserRepo) FindProfileByUserID(ctx context.Context, userID uint64) (*entities.UserProfile, error) {
	f.profileLookups++
	return f.fakeUserRepo.FindProfileByUserID(ctx, userID)
}

func TestGetRoleCachesAfterFirstLookup(t *testing.T) {
	cache := newFakeCacheRepo()
	userRepo := &countingUserRepo{fakeUserRepo: fakeUserRepo{
		profiles: map[uint64]*entities.UserProfile{7: {UserID: 7, Role: entities.RoleTechnician}},
	}}
	svc := NewProfileCacheService(userRepo, cache, zap.NewNop(), time.Minute)

	role, ok, err := svc.GetRole(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entities.RoleTechnician, role)
	assert.Equal(t, 1, userRepo.profileLookups)

	// Second call is served from cache without touching the database.
	role, ok, err = svc.GetRole(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entities.RoleTechnician, role)
	assert.Equal(t, 1, userRepo.profileLookups)
}

func TestGetRoleCachesMissingProfile(t *testing.T) {
	cache := newFakeCacheRepo()
	userRepo := &countingUserRepo{}
	svc := NewProfileCacheService(userRepo, cache, zap.NewNop(), time.Minute)

	_, ok, err := svc.GetRole(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, userRepo.profileLookups)

	// The absence itself is cached.
	_, ok, err = svc.GetRole(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, userRepo.profileLookups)
}

func TestInvalidateForcesReload(t *testing.T) {
	cache := newFakeCacheRepo()
	userRepo := &countingUserRepo{fakeUserRepo: fakeUserRepo{
		profiles: map[uint64]*entities.UserProfile{7: {UserID: 7, Role: entities.RoleUser}},
	}}
	svc := NewProfileCacheService(userRepo, cache, zap.NewNop(), time.Minute)

	_, _, err := svc.GetRole(context.Background(), 7)
	require.NoError(t, err)

	require.NoError(t, svc.Invalidate(context.Background(), 7))
	userRepo.profiles[7].Role = entities.RoleAdmin

	role, ok, err := svc.GetRole(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entities.RoleAdmin, role)
	assert.Equal(t, 2, userRepo.profileLookups)
}
