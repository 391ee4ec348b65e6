package sqlite

import (
	"errors"
	"fmt"
	"os"

	"github.com/sandevgo/deskbot/configs"
	"github.com/sandevgo/deskbot/internal/core"
	"gopkg.in/yaml.v3"
)

type servicesFile struct {
	Services []struct {
		Name        string `yaml:"name"`
		PriceRange  string `yaml:"price_range"`
		Description string `yaml:"description"`
	} `yaml:"services"`
}

func ParseServices(data []byte) ([]core.Service, error) {
	var f servicesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse services: %w", err)
	}

	out := make([]core.Service, 0, len(f.Services))
	for _, s := range f.Services {
		out = append(out, core.Service{Name: s.Name, PriceRange: s.PriceRange, Description: s.Description})
	}
	return out, nil
}

// LoadServices reads the catalog seed from path, falling back to the
// embedded default when the file does not exist.
func LoadServices(path string) ([]core.Service, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		data, err = configs.FS.ReadFile("services.yaml")
	}
	if err != nil {
		return nil, fmt.Errorf("read services: %w", err)
	}
	return ParseServices(data)
}
