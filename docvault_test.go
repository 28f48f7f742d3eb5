package docvault_test

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault"
)

func open(t *testing.T, opts docvault.Options) *docvault.Store {
	t.Helper()
	if opts.BaseDir == "" {
		opts.BaseDir = t.TempDir()
	}
	if opts.Source == "" {
		opts.Source = "db.json"
	}
	if opts.Encryption && opts.Iterations == 0 {
		opts.Iterations = 1000
	}
	s, err := docvault.Open(opts)
	require.NoError(t, err)
	return s
}

func TestOpen_Config(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		opts docvault.Options
	}{
		{"missing source", docvault.Options{BaseDir: dir}},
		{"bad extension", docvault.Options{BaseDir: dir, Source: "db.txt"}},
		{"missing secret", docvault.Options{BaseDir: dir, Source: "db.json", Encryption: true}},
		{"negative iterations", docvault.Options{BaseDir: dir, Source: "db.json", Iterations: -1}},
		{"too many iterations", docvault.Options{BaseDir: dir, Source: "db.json", Iterations: 20_000_000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := docvault.Open(tt.opts)
			assert.ErrorIs(t, err, docvault.ErrConfig)
			assert.Nil(t, s)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, enc := range []bool{false, true} {
		dir := t.TempDir()
		opts := docvault.Options{BaseDir: dir, Encryption: enc, Secret: "s3cret"}
		s := open(t, opts)
		require.NoError(t, s.Set("user.name", "John"))
		require.NoError(t, s.Set("user.age", 42))
		require.NoError(t, s.Push("posts", map[string]any{"id": 0, "author": "John"}))
		require.NoError(t, s.Save())
		want := s.GetState()

		again := open(t, opts)
		got := again.GetState()
		assert.Equal(t, want, got, "encryption=%v", enc)
		assert.Equal(t, float64(42), again.Get("user.age", nil))
	}
}

func TestOpen_Tampered(t *testing.T) {
	dir := t.TempDir()
	opts := docvault.Options{BaseDir: dir, Encryption: true, Secret: "s3cret"}
	s := open(t, opts)
	require.NoError(t, s.Set("balance", 100))
	require.NoError(t, s.Save())

	path := filepath.Join(dir, "db.json")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	content := []byte(raw["_state"]["content"].(string))
	content[0] ^= 0x01
	raw["_state"]["content"] = string(content)
	b, err = json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	opts.Iterations = 1000
	got, err := docvault.Open(opts)
	assert.ErrorIs(t, err, docvault.ErrIntegrity)
	assert.Nil(t, got)
}

func TestOpen_UpgradesPlaintext(t *testing.T) {
	dir := t.TempDir()
	s := open(t, docvault.Options{BaseDir: dir})
	require.NoError(t, s.Set("a", 1))
	require.NoError(t, s.Save())

	enc := open(t, docvault.Options{BaseDir: dir, Encryption: true, Secret: "s"})
	assert.True(t, enc.Info().Upgraded)
	assert.Equal(t, float64(1), enc.Get("a", nil))

	_, err := docvault.Open(docvault.Options{BaseDir: dir, Source: "db.json"})
	assert.ErrorIs(t, err, docvault.ErrConfig)
}

func TestOpen_Empty(t *testing.T) {
	dir := t.TempDir()
	s := open(t, docvault.Options{BaseDir: dir})
	require.NoError(t, s.Set("a", 1))
	require.NoError(t, s.Save())

	fresh := open(t, docvault.Options{BaseDir: dir, Empty: true})
	assert.False(t, fresh.Has("a"))
	assert.Empty(t, fresh.Keys(""))
}

func TestPresenceVsTruthiness(t *testing.T) {
	s := open(t, docvault.Options{})
	require.NoError(t, s.Set("x", 0))
	assert.True(t, s.Has("x"))
	assert.Equal(t, float64(0), s.Get("x", 99))

	require.NoError(t, s.Increment("x"))
	assert.Equal(t, float64(1), s.Get("x", nil))
	require.NoError(t, s.Decrement("x", 3))
	assert.Equal(t, float64(-2), s.Get("x", nil))

	assert.ErrorIs(t, s.Increment("missing"), docvault.ErrPathNotFound)
	require.NoError(t, s.Set("name", "n"))
	assert.ErrorIs(t, s.Decrement("name"), docvault.ErrTypeMismatch)
}

func TestPush(t *testing.T) {
	s := open(t, docvault.Options{})
	require.NoError(t, s.Push("list", "v"))
	assert.Equal(t, []any{"v"}, s.Get("list", nil))

	require.NoError(t, s.Set("scalar", true))
	assert.ErrorIs(t, s.Push("scalar", "v"), docvault.ErrTypeMismatch)
}

func TestUpdate(t *testing.T) {
	s := open(t, docvault.Options{})
	require.NoError(t, s.Set("n", 0))
	require.NoError(t, s.Update("n", func(v any) any { return v.(float64) + 5 }))
	assert.Equal(t, float64(5), s.Get("n", nil))
	assert.ErrorIs(t, s.Update("absent", func(v any) any { return v }), docvault.ErrPathNotFound)
}

func TestFind(t *testing.T) {
	s := open(t, docvault.Options{})
	require.NoError(t, s.Set("posts", []map[string]any{
		{"id": 0, "author": "John", "title": "Hello"},
		{"id": 1, "author": "Nick"},
	}))

	got, err := s.Find("posts", map[string]any{"author": "John"})
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": float64(0), "author": "John", "title": "Hello"}}, got)

	got, err = s.Find("posts", map[string]any{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.Find("posts", map[string]any{"title": regexp.MustCompile(`^Hello`)})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.Find("missing", map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, got)

	one, ok, err := s.FindOne("posts", map[string]any{"id": 1})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Nick", one.(map[string]any)["author"])

	_, err = s.Find("posts", []string{"author"})
	assert.ErrorIs(t, err, docvault.ErrInvalidQuery)
	_, _, err = s.FindOne("posts", "author")
	assert.ErrorIs(t, err, docvault.ErrInvalidQuery)
}

func TestResetIndependence(t *testing.T) {
	s := open(t, docvault.Options{})
	initial := map[string]any{"a": 1}
	require.NoError(t, s.Init(initial, false))
	initial["a"] = 100

	require.NoError(t, s.Set("a", 2))
	s.Reset()
	assert.Equal(t, float64(1), s.Get("a", nil))

	require.NoError(t, s.Set("a", 3))
	s.Reset()
	assert.Equal(t, float64(1), s.Get("a", nil))
}

func TestInit(t *testing.T) {
	s := open(t, docvault.Options{})
	require.NoError(t, s.Set("live", true))

	require.NoError(t, s.Init(map[string]any{"seed": 1}, false))
	assert.True(t, s.Has("live"))
	assert.False(t, s.Has("seed"))
	s.Reset()
	assert.False(t, s.Has("live"))
	assert.True(t, s.Has("seed"))

	require.NoError(t, s.Set("live", true))
	require.NoError(t, s.Init(map[string]any{"other": 2}, true))
	assert.False(t, s.Has("live"))
	assert.True(t, s.Has("other"))

	assert.ErrorIs(t, s.Init([]any{1}, false), docvault.ErrInvalidState)
}

func TestReset_WithoutInit(t *testing.T) {
	s := open(t, docvault.Options{})
	require.NoError(t, s.Set("a", 1))
	s.Reset()
	assert.Empty(t, s.Keys(""))
}

func TestDeepCopyIsolation(t *testing.T) {
	s := open(t, docvault.Options{})
	require.NoError(t, s.Set("user", map[string]any{"tags": []any{"a"}}))

	got := s.Get("user", nil).(map[string]any)
	got["tags"].([]any)[0] = "mutated"
	got["new"] = true
	assert.Equal(t, map[string]any{"tags": []any{"a"}}, s.Get("user", nil))

	state := s.GetState()
	delete(state, "user")
	assert.Contains(t, s.GetState(), "user")

	in := map[string]any{"k": []any{"v"}}
	require.NoError(t, s.SetState(in))
	in["k"].([]any)[0] = "changed"
	assert.Equal(t, []any{"v"}, s.Get("k", nil))
}

func TestSetState_Invalid(t *testing.T) {
	s := open(t, docvault.Options{})
	for _, v := range []any{nil, "text", []any{}, float64(1)} {
		assert.ErrorIs(t, s.SetState(v), docvault.ErrInvalidState, "%v", v)
	}
}

func TestDeleteAndClear(t *testing.T) {
	s := open(t, docvault.Options{})
	require.NoError(t, s.Set("a.b", 1))
	s.Delete("a.b")
	s.Delete("a.b")
	assert.Equal(t, map[string]any{}, s.Get("a", nil))

	require.NoError(t, s.Set("x", 1))
	s.Clear()
	assert.Empty(t, s.Keys(""))
}

func TestDestroy(t *testing.T) {
	s := open(t, docvault.Options{})
	require.NoError(t, s.Set("a", 1))
	require.NoError(t, s.Save())

	require.NoError(t, s.Destroy())
	_, err := os.Stat(s.Path())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, s.Has("a"))

	require.NoError(t, s.Save())
	_, err = os.Stat(s.Path())
	assert.NoError(t, err)
}

func TestSet_Unstorable(t *testing.T) {
	s := open(t, docvault.Options{})
	assert.ErrorIs(t, s.Set("ch", make(chan int)), docvault.ErrTypeMismatch)
	assert.False(t, s.Has("ch"))
}

func TestIncrement_NonFinite(t *testing.T) {
	s := open(t, docvault.Options{})
	require.NoError(t, s.Set("n", 1))
	require.NoError(t, s.Set("big", 1e308))

	assert.ErrorIs(t, s.Increment("n", math.Inf(1)), docvault.ErrTypeMismatch)
	assert.ErrorIs(t, s.Decrement("n", math.NaN()), docvault.ErrTypeMismatch)
	assert.ErrorIs(t, s.Increment("big", 1e308), docvault.ErrTypeMismatch)
	assert.Equal(t, float64(1), s.Get("n", nil))
	assert.Equal(t, 1e308, s.Get("big", nil))
	require.NoError(t, s.Save())
}
