package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEnsureLoadedFetchesOnce(t *testing.T) {
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		_, _ = w.Write([]byte("module body"))
	}))
	t.Cleanup(srv.Close)

	loader := NewLoader(zap.NewNop())
	res := Resource{ID: "editor-core", URL: srv.URL}

	require.NoError(t, loader.EnsureLoaded(context.Background(), res))
	require.NoError(t, loader.EnsureLoaded(context.Background(), res))
	require.True(t, loader.Loaded("editor-core"))
	require.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestEnsureLoadedRunsInstallHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))
	t.Cleanup(srv.Close)

	var installed []byte
	loader := NewLoader(zap.NewNop())
	err := loader.EnsureLoaded(context.Background(), Resource{
		ID:  "mode-python",
		URL: srv.URL,
		Install: func(body []byte) error {
			installed = body
			return nil
		},
	})
	require.NoError(t, err)
	require.Equal(t, "payload", string(installed))
}

func TestEnsureLoadedFailureIsRetryable(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	loader := NewLoader(zap.NewNop())
	res := Resource{ID: "theme-dark", URL: srv.URL}

	err := loader.EnsureLoaded(context.Background(), res)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, "theme-dark", loadErr.ID)
	require.False(t, loader.Loaded("theme-dark"))

	fail.Store(false)
	require.NoError(t, loader.EnsureLoaded(context.Background(), res))
	require.True(t, loader.Loaded("theme-dark"))
}

func TestEnsureLoadedConcurrentCallsShareOneFetch(t *testing.T) {
	var fetches int32
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&fetches, 1) == 1 {
			close(started)
		}
		<-release
		_, _ = w.Write([]byte("slow module"))
	}))
	t.Cleanup(srv.Close)

	loader := NewLoader(zap.NewNop())
	res := Resource{ID: "shared", URL: srv.URL}

	var wg sync.WaitGroup
	errs := make([]error, 3)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = loader.EnsureLoaded(context.Background(), res)
	}()

	// Wait for the first fetch to be in flight, then pile on.
	<-started
	for i := 1; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = loader.EnsureLoaded(context.Background(), res)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}
