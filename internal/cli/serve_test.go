package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strand/internal/config"
)

func clearServeEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{"PORT", "STRAND_DB", "STRAND_LOG_LEVEL", "STRAND_LOG_FORMAT", "STRAND_SHUTDOWN_TIMEOUT"} {
		t.Setenv(env, "")
	}
}

func TestServe_ServesAndShutsDown(t *testing.T) {
	clearServeEnv(t)
	dbPath := filepath.Join(t.TempDir(), "serve.db")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewServeCommand(rootOpts)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	require.NoError(t, cmd.ParseFlags([]string{"--db", dbPath}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cmd.SetContext(ctx)

	opts := &ServeOptions{RootOptions: rootOpts, Listener: ln}
	errChan := make(chan error, 1)
	go func() { errChan <- runServe(opts, cmd) }()

	base := "http://" + ln.Addr().String()
	resp, err := http.Post(base+"/strings", "application/json", strings.NewReader(`{"value":"kayak"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(base + "/healthz")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","records":1}`, string(body))

	cancel()
	select {
	case err := <-errChan:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not respect context cancellation")
	}

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database should be created")
	assert.Contains(t, out.String(), "strand listening on "+ln.Addr().String())
}

// freePort returns a TCP port that was free at the time of the call.
func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestServe_ListensOnConfiguredPort(t *testing.T) {
	clearServeEnv(t)
	port := freePort(t)

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewServeCommand(rootOpts)
	out := &syncBuffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	require.NoError(t, cmd.ParseFlags([]string{
		"--db", filepath.Join(t.TempDir(), "port.db"),
		"--port", strconv.Itoa(port),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cmd.SetContext(ctx)

	errChan := make(chan error, 1)
	go func() { errChan <- runServe(&ServeOptions{RootOptions: rootOpts}, cmd) }()

	healthURL := fmt.Sprintf("http://127.0.0.1:%d/healthz", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(healthURL)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errChan:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not respect context cancellation")
	}
	assert.Contains(t, out.String(), fmt.Sprintf("strand listening on :%d", port))
}

func TestServe_PortInUse(t *testing.T) {
	clearServeEnv(t)
	held, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer held.Close()
	port := held.Addr().(*net.TCPAddr).Port

	cmd := NewServeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{
		"--db", filepath.Join(t.TempDir(), "busy.db"),
		"--port", strconv.Itoa(port),
	})

	err = cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to listen on")
}

// syncBuffer is a bytes.Buffer safe to read while serve writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServe_InvalidConfig(t *testing.T) {
	clearServeEnv(t)
	t.Setenv("STRAND_LOG_LEVEL", "chatty")

	cmd := NewServeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--db", filepath.Join(t.TempDir(), "x.db")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestServe_UnopenableDatabase(t *testing.T) {
	clearServeEnv(t)

	cmd := NewServeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--db", filepath.Join(t.TempDir(), "missing", "dir", "x.db")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestServe_RejectsArguments(t *testing.T) {
	cmd := NewServeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"extra"})

	require.Error(t, cmd.Execute())
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger(buf, config.LogConfig{Level: "warn", Format: "json"}, false)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger = newLogger(buf, config.LogConfig{Level: "error", Format: "text"}, true)
	logger.Debug("debug line")
	assert.Contains(t, buf.String(), "msg=\"debug line\"")
}
