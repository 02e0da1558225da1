package entrypoint

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/config"
)

func TestCSRFSecret(t *testing.T) {
	t.Run("generates when empty", func(t *testing.T) {
		secret, err := csrfSecret("")
		require.NoError(t, err)
		assert.Len(t, secret, 32)
	})

	t.Run("decodes hex", func(t *testing.T) {
		secret, err := csrfSecret(strings.Repeat("ab", 32))
		require.NoError(t, err)
		assert.Equal(t, byte(0xab), secret[0])
		assert.Len(t, secret, 32)
	})

	t.Run("accepts raw 32 bytes", func(t *testing.T) {
		secret, err := csrfSecret("0123456789abcdef0123456789ABCDEF")
		require.NoError(t, err)
		assert.Equal(t, []byte("0123456789abcdef0123456789ABCDEF"), secret)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := csrfSecret("short")
		assert.Error(t, err)
	})
}

func freePort(t *testing.T) int32 {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return int32(l.Addr().(*net.TCPAddr).Port)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	cfg := &config.Config{}
	cfg.HTTP.Host = "127.0.0.1"
	cfg.HTTP.Port = freePort(t)
	cfg.Global.ShutdownTimeoutInSeconds = 1

	ctx, cancel := context.WithCancel(context.Background())
	shutdownCalled := make(chan struct{})
	done := make(chan error, 1)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	go func() {
		done <- Serve(ctx, handler, cfg, func(context.Context) { close(shutdownCalled) })
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	select {
	case <-shutdownCalled:
	default:
		t.Fatal("shutdown callback not called")
	}
}

func TestServe_DrainsWorkQueuedByInFlightRequests(t *testing.T) {
	cfg := &config.Config{}
	cfg.HTTP.Host = "127.0.0.1"
	cfg.HTTP.Port = freePort(t)
	cfg.Global.ShutdownTimeoutInSeconds = 5

	var pending sync.WaitGroup
	var persisted atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		pending.Add(1)
		go func() {
			defer pending.Done()
			time.Sleep(50 * time.Millisecond)
			persisted.Add(1)
		}()
		w.WriteHeader(http.StatusNoContent)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, mux, cfg, func(context.Context) { close(release) }, pending.Wait)
	}()

	base := fmt.Sprintf("http://%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return true
	}, 5*time.Second, 20*time.Millisecond)

	go func() {
		if resp, err := http.Get(base + "/slow"); err == nil {
			resp.Body.Close()
		}
	}()
	<-entered
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Equal(t, int32(1), persisted.Load())
}
