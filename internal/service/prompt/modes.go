package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sandevgo/deskbot/configs"
)

const DefaultMode = "default"

var ErrUnknownMode = errors.New("unknown prompt mode")

// Modes is the registry of base role descriptions, one per *.md file.
type Modes struct {
	mu      sync.RWMutex
	prompts map[string]string
	current string
}

// NewModes builds a registry from name->text pairs. The default mode is
// always present.
func NewModes(prompts map[string]string) *Modes {
	m := &Modes{
		prompts: make(map[string]string, len(prompts)+1),
		current: DefaultMode,
	}
	for name, text := range prompts {
		m.prompts[name] = strings.TrimSpace(text)
	}
	if _, ok := m.prompts[DefaultMode]; !ok {
		m.prompts[DefaultMode] = ""
	}
	return m
}

// LoadModes reads the embedded prompts and then dir, so files in dir
// override built-ins of the same name. A missing dir is not an error.
func LoadModes(dir string) (*Modes, error) {
	prompts := make(map[string]string)

	embedded, err := configs.FS.ReadDir("prompts")
	if err != nil {
		return nil, fmt.Errorf("read embedded prompts: %w", err)
	}
	for _, e := range embedded {
		data, err := configs.FS.ReadFile("prompts/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read embedded prompt %s: %w", e.Name(), err)
		}
		prompts[strings.TrimSuffix(e.Name(), ".md")] = string(data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read prompts dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read prompt %s: %w", e.Name(), err)
		}
		prompts[strings.TrimSuffix(e.Name(), ".md")] = string(data)
	}

	return NewModes(prompts), nil
}

func (m *Modes) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.prompts))
	for name := range m.prompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Modes) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Modes) SetMode(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.prompts[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	m.current = name
	return nil
}

// Base returns the role description of the active mode.
func (m *Modes) Base() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prompts[m.current]
}
