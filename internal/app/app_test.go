package app

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault"
)

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer) {
	t.Helper()
	if cfg.BaseDir == "" {
		cfg.BaseDir = t.TempDir()
	}
	if cfg.Source == "" {
		cfg.Source = "db.json"
	}
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(cfg, log), &buf
}

func TestOpen_LogsCreation(t *testing.T) {
	a, buf := newTestApp(t, Config{})
	s, err := a.Open()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "created empty store")

	require.NoError(t, s.Set("a", 1))
	require.NoError(t, a.Commit(s))
	assert.Contains(t, buf.String(), "saved")

	buf.Reset()
	_, err = a.Open()
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "created empty store")
}

func TestOpen_LogsUpgrade(t *testing.T) {
	dir := t.TempDir()
	plain, _ := newTestApp(t, Config{BaseDir: dir})
	s, err := plain.Open()
	require.NoError(t, err)
	require.NoError(t, s.Set("a", 1))
	require.NoError(t, plain.Commit(s))

	enc, buf := newTestApp(t, Config{BaseDir: dir, Encryption: true, Secret: "s3cret", Iterations: 1000})
	s, err = enc.Open()
	require.NoError(t, err)
	assert.Equal(t, float64(1), s.Get("a", nil))
	assert.Contains(t, buf.String(), "encrypted plaintext store")
	assert.NotContains(t, buf.String(), "s3cret")
}

func TestOpen_InvalidConfig(t *testing.T) {
	a, _ := newTestApp(t, Config{Source: "db.csv"})
	_, err := a.Open()
	assert.ErrorIs(t, err, docvault.ErrConfig)
}

func TestWatch(t *testing.T) {
	a, _ := newTestApp(t, Config{})
	updates := make(chan docvault.Document, 8)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- a.Watch(ctx, func(d docvault.Document) {
			select {
			case updates <- d:
			default:
			}
		})
	}()

	select {
	case d := <-updates:
		assert.Empty(t, d)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial state")
	}

	writer, err := docvault.Open(a.Config.Options())
	require.NoError(t, err)
	require.NoError(t, writer.Set("greeting", "hello"))
	require.NoError(t, writer.Save())

	deadline := time.After(5 * time.Second)
	for got := false; !got; {
		select {
		case d := <-updates:
			got = d["greeting"] == "hello"
		case <-deadline:
			t.Fatal("change not observed")
		}
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Equal(t, filepath.Join(a.Config.BaseDir, "db.json"), writer.Path())
}
