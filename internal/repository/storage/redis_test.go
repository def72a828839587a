package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRedisStorage_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Given: an address nothing listens on
	// When: the storage is created
	redisStorage, err := NewRedisStorage(ctx, "127.0.0.1:1")

	// Then: the failed ping is reported
	require.Error(t, err)
	require.Nil(t, redisStorage)
}
