package persona

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/sandevgo/deskbot/configs"
	"gopkg.in/yaml.v3"
)

type Category string

const (
	Mood      Category = "mood"
	Style     Category = "style"
	Reasoning Category = "reasoning"
)

// labels used when a category has no modules at all
var defaultLabels = map[Category]string{
	Mood:      "neutral",
	Style:     "concise",
	Reasoning: "direct",
}

// Catalog maps persona labels to the instruction text injected into prompts.
type Catalog struct {
	Mood      map[string]string `yaml:"mood"`
	Style     map[string]string `yaml:"style"`
	Reasoning map[string]string `yaml:"reasoning"`
}

func ParseCatalog(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse persona catalog: %w", err)
	}
	return c, nil
}

// LoadCatalog reads path and falls back to the embedded catalog when the
// file does not exist.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultCatalog()
	}
	if err != nil {
		return nil, fmt.Errorf("read persona catalog: %w", err)
	}
	return ParseCatalog(data)
}

func DefaultCatalog() (*Catalog, error) {
	data, err := configs.FS.ReadFile("personas.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded personas: %w", err)
	}
	return ParseCatalog(data)
}

func (c *Catalog) modules(cat Category) map[string]string {
	if c == nil {
		return nil
	}
	switch cat {
	case Mood:
		return c.Mood
	case Style:
		return c.Style
	case Reasoning:
		return c.Reasoning
	}
	return nil
}

// Labels returns the sorted labels of cat.
func (c *Catalog) Labels(cat Category) []string {
	m := c.modules(cat)
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Module returns the text of a label, or "" when it is unknown.
func (c *Catalog) Module(cat Category, label string) string {
	return c.modules(cat)[label]
}
