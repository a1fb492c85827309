package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	entityCatalogFile = "entities.yaml"
	eventCatalogFile  = "events.yaml"
)

//go:embed catalog/*.yaml
var catalogFiles embed.FS

// LoadCatalog reads entities.yaml and events.yaml from fsys and compiles them.
func LoadCatalog(fsys fs.FS) (*Registry, error) {
	var entities EntityCatalog
	if err := decodeYAMLFile(fsys, entityCatalogFile, &entities); err != nil {
		return nil, err
	}
	var events EventCatalog
	if err := decodeYAMLFile(fsys, eventCatalogFile, &events); err != nil {
		return nil, err
	}

	reg, err := Compile(&entities, &events)
	if err != nil {
		return nil, fmt.Errorf("failed to compile catalog: %w", err)
	}
	return reg, nil
}

func decodeYAMLFile(fsys fs.FS, name string, out interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	sub, err := fs.Sub(catalogFiles, "catalog")
	if err != nil {
		return nil, err
	}
	return LoadCatalog(sub)
})

// DefaultRegistry returns the registry compiled from the embedded Caliper 1.2
// catalog. The catalog is compiled once per process.
func DefaultRegistry() (*Registry, error) {
	return defaultRegistry()
}
