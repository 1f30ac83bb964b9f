package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore handles per-driver locking in Redis. It serializes trip creation
// against driver deletion so a driver cannot be removed while a trip (and its
// pending settlements) is being written.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

func driverLockKey(driverID string) string {
	return fmt.Sprintf("lock:driver:%s", driverID)
}

// AcquireDriverLock attempts to acquire a lock for the given driver.
// It returns the owner token and true if the lock was acquired, or false if
// it is already held.
func (s *LockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (string, bool, error) {
	token := uuid.New().String()

	ok, err := s.client.SetNX(ctx, driverLockKey(driverID), token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

// ReleaseDriverLock releases the lock if token still owns it.
func (s *LockStore) ReleaseDriverLock(ctx context.Context, driverID, token string) error {
	return releaseScript.Run(ctx, s.client, []string{driverLockKey(driverID)}, token).Err()
}
