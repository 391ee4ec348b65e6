package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandevgo/deskbot/internal/core"
	"github.com/sandevgo/deskbot/internal/service/persona"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler_BuildOrder(t *testing.T) {
	modes := NewModes(map[string]string{DefaultMode: "You are a secretary."})
	catalog := &persona.Catalog{
		Mood:      map[string]string{"calm": "Stay calm."},
		Style:     map[string]string{"concise": "Be brief."},
		Reasoning: map[string]string{"direct": "Answer first."},
	}
	a := NewAssembler(modes, catalog)

	got := a.Build(core.Persona{Mood: "calm", Style: "concise", Reasoning: "direct"}, "- Bot: 100$")

	want := "You are a secretary.\n\n" +
		"## Persona modules\n" +
		"### Mood\nStay calm.\n" +
		"### Style\nBe brief.\n" +
		"### Reasoning\nAnswer first.\n" +
		"\n## Context\n" +
		"- Bot: 100$"
	assert.Equal(t, want, got)
}

func TestAssembler_MissingModuleIsEmpty(t *testing.T) {
	a := NewAssembler(NewModes(map[string]string{DefaultMode: "base"}), &persona.Catalog{})

	got := a.Build(core.Persona{Mood: "ghost", Style: "ghost", Reasoning: "ghost"}, "ctx")

	assert.Contains(t, got, "### Mood\n\n### Style\n\n### Reasoning\n\n")
	assert.True(t, strings.HasSuffix(got, "## Context\nctx"))
}

func TestAssembler_ContextVerbatim(t *testing.T) {
	a := NewAssembler(NewModes(nil), nil)
	ctx := "**Прайс-лист:**\n- {weird} `chars` [x]"

	assert.True(t, strings.HasSuffix(a.Build(core.Persona{}, ctx), ctx))
}

func TestAssembler_FollowsModeSwitch(t *testing.T) {
	modes := NewModes(map[string]string{DefaultMode: "default base", "sales": "sales base"})
	a := NewAssembler(modes, nil)

	require.NoError(t, modes.SetMode("sales"))
	assert.True(t, strings.HasPrefix(a.Build(core.Persona{}, ""), "sales base"))
}

func TestModes_SetMode(t *testing.T) {
	modes := NewModes(map[string]string{"sales": "x"})

	assert.Equal(t, []string{"default", "sales"}, modes.List())
	assert.Equal(t, DefaultMode, modes.Current())

	err := modes.SetMode("missing")
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, DefaultMode, modes.Current())

	require.NoError(t, modes.SetMode("sales"))
	assert.Equal(t, "sales", modes.Current())
	assert.Equal(t, "x", modes.Base())
}

func TestLoadModes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.md"), []byte("custom default\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "night.md"), []byte("night shift"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	modes, err := LoadModes(dir)
	require.NoError(t, err)

	assert.Contains(t, modes.List(), "night")
	assert.Contains(t, modes.List(), "legacy")
	assert.NotContains(t, modes.List(), "notes")
	assert.Equal(t, "custom default", modes.Base())
}

func TestLoadModes_MissingDir(t *testing.T) {
	modes, err := LoadModes(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)

	assert.Contains(t, modes.Base(), "booking_confirmed")
}
