package persona

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/deskbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return &Catalog{
		Mood:      map[string]string{"enthusiastic": "be loud", "cynical": "be dry", "calm": "be calm"},
		Style:     map[string]string{"concise": "be short", "friendly": "be warm"},
		Reasoning: map[string]string{"direct": "answer first"},
	}
}

func TestStore_GetOrCreateIsStable(t *testing.T) {
	s := NewStore(testCatalog())

	first := s.GetOrCreate("alice")
	second := s.GetOrCreate("alice")

	assert.Equal(t, first, second)
}

func TestStore_ResetDrawsAgain(t *testing.T) {
	calls := 0
	s := NewStore(testCatalog(), WithIntn(func(n int) int {
		calls++
		return (calls / 3) % n
	}))

	first := s.GetOrCreate("alice")
	s.Reset("alice")
	second := s.GetOrCreate("alice")

	assert.Equal(t, 6, calls)
	assert.NotEqual(t, first.Mood, second.Mood)
}

func TestStore_EmptyCatalogUsesDefaults(t *testing.T) {
	s := NewStore(&Catalog{})

	p := s.GetOrCreate("alice")

	assert.Equal(t, core.Persona{Mood: "neutral", Style: "concise", Reasoning: "direct"}, p)
	assert.Equal(t, "", s.Module(Mood, p.Mood))
}

func TestStore_NilCatalogUsesDefaults(t *testing.T) {
	s := NewStore(nil)
	assert.Equal(t, "neutral", s.GetOrCreate("x").Mood)
}

func TestStore_DistributionCoversLabels(t *testing.T) {
	s := NewStore(testCatalog())

	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		seen[s.GetOrCreate(string(rune('a'+i%26))+string(rune(i))).Mood] = true
	}

	for _, label := range testCatalog().Labels(Mood) {
		assert.True(t, seen[label], "mood %q never assigned", label)
	}
}

func TestCatalog_Module(t *testing.T) {
	c := testCatalog()

	assert.Equal(t, "be dry", c.Module(Mood, "cynical"))
	assert.Equal(t, "", c.Module(Mood, "missing"))
	assert.Equal(t, "", c.Module(Category("unknown"), "cynical"))
	assert.Equal(t, []string{"calm", "cynical", "enthusiastic"}, c.Labels(Mood))
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file falls back to embedded", func(t *testing.T) {
		c, err := LoadCatalog(filepath.Join(dir, "missing.yaml"))
		require.NoError(t, err)
		assert.NotEmpty(t, c.Labels(Mood))
		assert.NotEmpty(t, c.Labels(Style))
		assert.NotEmpty(t, c.Labels(Reasoning))
	})

	t.Run("file on disk", func(t *testing.T) {
		path := filepath.Join(dir, "personas.yaml")
		require.NoError(t, os.WriteFile(path, []byte("mood:\n  grumpy: sigh\n"), 0o600))

		c, err := LoadCatalog(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"grumpy"}, c.Labels(Mood))
		assert.Empty(t, c.Labels(Style))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("mood: ["), 0o600))

		_, err := LoadCatalog(path)
		assert.Error(t, err)
	})
}

func TestStore_Sweep(t *testing.T) {
	s := NewStore(testCatalog())

	s.GetOrCreate("old")
	now := time.Now()
	s.GetOrCreate("fresh")

	assert.Equal(t, 0, s.Sweep(now.Add(time.Minute), time.Hour))
	assert.Equal(t, 2, s.Sweep(now.Add(2*time.Hour), time.Hour))
	assert.Equal(t, 0, s.Len())
}
