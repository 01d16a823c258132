package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/newsguard/internal/prefs"
)

type failingStore struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingStore) Get(string) (string, bool, error) { return "", false, f.getErr }

func (f *failingStore) Set(string, string) error {
	f.sets++
	return f.setErr
}

func (f *failingStore) Close() error { return nil }

func TestLoadDefaultsToDark(t *testing.T) {
	t.Parallel()

	kv := prefs.NewMemory()
	store := Load(kv, Options{})
	assert.Equal(t, Dark, store.Current())
	assert.Zero(t, kv.Writes, "load never writes")
}

func TestLoadFallsBackOnInvalidValue(t *testing.T) {
	t.Parallel()

	kv := prefs.NewMemory()
	require.NoError(t, kv.Set(StorageKey, "Sepia"))
	assert.Equal(t, Dark, Load(kv, Options{}).Current())

	require.NoError(t, kv.Set(StorageKey, "Blue"))
	assert.Equal(t, Dark, Load(kv, Options{}).Current(), "matching is case sensitive")
}

func TestLoadFallsBackOnReadError(t *testing.T) {
	t.Parallel()

	store := Load(&failingStore{getErr: errors.New("disk gone")}, Options{})
	assert.Equal(t, Dark, store.Current())
}

func TestLoadRestoresPersistedValue(t *testing.T) {
	t.Parallel()

	kv := prefs.NewMemory()
	require.NoError(t, kv.Set(StorageKey, "purple"))
	assert.Equal(t, Purple, Load(kv, Options{}).Current())
}

func TestToggleCyclesAndWritesThrough(t *testing.T) {
	t.Parallel()

	kv := prefs.NewMemory()
	require.NoError(t, kv.Set(StorageKey, "blue"))
	store := Load(kv, Options{})

	want := []Name{Purple, Light, Dark, Blue}
	for _, expected := range want {
		got := store.Toggle()
		assert.Equal(t, expected, got)
		stored, ok, err := kv.Get(StorageKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, string(expected), stored)
	}
	assert.Equal(t, Blue, store.Current(), "four toggles return to the start")
}

func TestToggleAppliesToAttachedContexts(t *testing.T) {
	t.Parallel()

	store := Load(prefs.NewMemory(), Options{})
	var applied []Name
	store.Attach(ApplierFunc(func(n Name) { applied = append(applied, n) }))
	store.Toggle()

	assert.Equal(t, []Name{Dark, Blue}, applied)
}

func TestToggleSurvivesPersistenceFailure(t *testing.T) {
	t.Parallel()

	kv := &failingStore{setErr: errors.New("read-only")}
	store := Load(kv, Options{})
	assert.Equal(t, Blue, store.Toggle())
	assert.Equal(t, Blue, store.Current())
	assert.Equal(t, 1, kv.sets)
}

func TestNextFromUnknownRestartsCycle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Light, Name("sepia").Next())
	assert.Equal(t, Light, Purple.Next())
}

func TestPaletteForEveryTheme(t *testing.T) {
	t.Parallel()

	seen := map[Palette]bool{}
	for _, n := range Names() {
		p := PaletteFor(n)
		assert.NotEmpty(t, p.Foreground)
		assert.False(t, seen[p], "palette for %s duplicates another theme", n)
		seen[p] = true
	}
	assert.Equal(t, PaletteFor(Dark), PaletteFor("unknown"))
}
