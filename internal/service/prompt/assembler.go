package prompt

import (
	"strings"

	"github.com/sandevgo/deskbot/internal/core"
	"github.com/sandevgo/deskbot/internal/service/persona"
)

type moduleSource interface {
	Module(cat persona.Category, label string) string
}

// Assembler builds the system instruction for every backend call.
type Assembler struct {
	modes   *Modes
	modules moduleSource
}

func NewAssembler(modes *Modes, modules moduleSource) *Assembler {
	return &Assembler{modes: modes, modules: modules}
}

// Build concatenates the base role, the persona modules and the context in
// that order. It is rebuilt on every call since the context may change.
func (a *Assembler) Build(p core.Persona, contextText string) string {
	var sb strings.Builder

	sb.WriteString(a.modes.Base())
	sb.WriteString("\n\n## Persona modules\n")
	a.writeModule(&sb, "Mood", persona.Mood, p.Mood)
	a.writeModule(&sb, "Style", persona.Style, p.Style)
	a.writeModule(&sb, "Reasoning", persona.Reasoning, p.Reasoning)
	sb.WriteString("\n## Context\n")
	sb.WriteString(contextText)

	return sb.String()
}

func (a *Assembler) writeModule(sb *strings.Builder, title string, cat persona.Category, label string) {
	text := ""
	if a.modules != nil {
		text = strings.TrimSpace(a.modules.Module(cat, label))
	}
	sb.WriteString("### ")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(text)
	sb.WriteString("\n")
}
