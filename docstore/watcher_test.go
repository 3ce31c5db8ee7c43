package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_RequiresHandler(t *testing.T) {
	err := Watch(context.Background(), t.TempDir(), 0, quietLogger(), nil)
	require.ErrorIs(t, err, ErrChangeHandlerRequired)
}

func TestWatch_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")
	err := Watch(context.Background(), dir, 0, quietLogger(), func() {})
	require.Error(t, err)
}

func TestWatch_FiresOnChange(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, 50*time.Millisecond, quietLogger(), func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before producing events.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patents_ipa01.json"), []byte(`[]`), 0o644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatch_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int32
	go func() {
		_ = Watch(ctx, dir, 300*time.Millisecond, quietLogger(), func() {
			fired.Add(1)
		})
	}()

	time.Sleep(200 * time.Millisecond)
	for i := range 3 {
		name := filepath.Join(dir, fmt.Sprintf("patents_ipa0%d.json", i+1))
		require.NoError(t, os.WriteFile(name, []byte(`[]`), 0o644))
	}

	// One quiet period later the burst must have collapsed to one call.
	time.Sleep(time.Second)
	assert.Equal(t, int32(1), fired.Load())
}
