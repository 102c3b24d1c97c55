package bridge

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/biovault/bvconsole/internal/logview"
)

// startBridge runs a Server over httptest and returns a connected client.
func startBridge(t *testing.T, s *Server, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, err := Dial(context.Background(), url, timeout)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestInvokeRoundTrip(t *testing.T) {
	s := NewServer()
	s.Handle("echo", func(_ context.Context, args json.RawMessage) (any, error) {
		var in map[string]string
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, err
		}
		return in["msg"], nil
	})

	client := startBridge(t, s, 5*time.Second)

	raw, err := client.Invoke(context.Background(), "echo", map[string]string{"msg": "hello"})
	require.NoError(t, err)

	var out string
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, "hello", out)
}

func TestListenAndServeReturnsNilOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- NewServer().ListenAndServe(ctx, "127.0.0.1:0")
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestInvokeUnhandledCommand(t *testing.T) {
	client := startBridge(t, NewServer(), 5*time.Second)

	_, err := client.Invoke(context.Background(), "does_not_exist", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unhandled command")
}

func TestInvokeTimesOut(t *testing.T) {
	s := NewServer()
	release := make(chan struct{})
	s.Handle("slow", func(context.Context, json.RawMessage) (any, error) {
		<-release
		return nil, nil
	})
	defer close(release)

	client := startBridge(t, s, 50*time.Millisecond)

	_, err := client.Invoke(context.Background(), "slow", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "timed out")
}

func TestInvokeOrFallsBack(t *testing.T) {
	s := NewServer()
	release := make(chan struct{})
	s.Handle("slow", func(context.Context, json.RawMessage) (any, error) {
		<-release
		return nil, nil
	})
	defer close(release)

	client := startBridge(t, s, 50*time.Millisecond)

	fallback := json.RawMessage(`"default"`)
	got := client.InvokeOr(context.Background(), "slow", nil, fallback)
	require.Equal(t, fallback, got)
}

func TestSlowCommandDoesNotBlockOthers(t *testing.T) {
	s := NewServer()
	release := make(chan struct{})
	s.Handle("slow", func(context.Context, json.RawMessage) (any, error) {
		<-release
		return "slow done", nil
	})
	s.Handle("fast", func(context.Context, json.RawMessage) (any, error) {
		return "fast done", nil
	})

	client := startBridge(t, s, 5*time.Second)

	var (
		wg      sync.WaitGroup
		slowRaw json.RawMessage
		slowErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowRaw, slowErr = client.Invoke(context.Background(), "slow", nil)
	}()

	// The fast command must complete while slow is still blocked.
	raw, err := client.Invoke(context.Background(), "fast", nil)
	require.NoError(t, err)
	require.Equal(t, `"fast done"`, string(raw))

	close(release)
	wg.Wait()
	require.NoError(t, slowErr)
	require.Equal(t, `"slow done"`, string(slowRaw))
}

func TestDesktopCommands(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "desktop.log")
	store := logview.NewStore(logPath)
	require.NoError(t, store.Append(logview.LevelInfo, "bridge test line"))

	s := NewServer()
	RegisterDesktopCommands(s, "1.2.3", store, logview.NewFileSource(logPath))
	client := startBridge(t, s, 5*time.Second)
	ctx := context.Background()

	var pong string
	require.NoError(t, client.InvokeInto(ctx, "ping", nil, &pong))
	require.Equal(t, "pong", pong)

	var version string
	require.NoError(t, client.InvokeInto(ctx, "get_app_version", nil, &version))
	require.Equal(t, "1.2.3", version)

	source := NewLogSource(client)
	text, err := source.FetchLogText(ctx, 1<<20)
	require.NoError(t, err)
	require.Contains(t, text, "bridge test line")

	var cleared bool
	require.NoError(t, client.InvokeInto(ctx, "clear_desktop_logs", nil, &cleared))
	require.True(t, cleared)
	_, err = os.Stat(logPath)
	require.True(t, os.IsNotExist(err))
}

func TestInvokeAfterCloseFails(t *testing.T) {
	client := startBridge(t, NewServer(), time.Second)
	require.NoError(t, client.Close())

	_, err := client.Invoke(context.Background(), "ping", nil)
	require.Error(t, err)
}
