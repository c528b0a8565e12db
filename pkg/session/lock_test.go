package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/pathrace/pkg/adapters/memory"
	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	count := 2000

	// 1. Create and Delete many sessions
	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_ = mgr.WithLock(ctx, sid, func(ctx context.Context) error {
			return mgr.store.Save(ctx, domain.NewSessionState(sid, domain.ComparisonRequest{}))
		})
		_ = mgr.Delete(ctx, sid)
	}

	// 2. Count locks remaining in map
	mgr.mu.Lock()
	lockCount := len(mgr.locks)
	mgr.mu.Unlock()

	assert.Zero(t, lockCount, "locks must be released once no caller holds them")
}
