// Package yamlconfig loads the external tool-registry file. The file is
// the plug-and-play surface: operators add, remove or retime tools per
// media kind without recompiling anything, and kinds absent from the
// file keep their compiled-in defaults.
package yamlconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bytemomo/manta/internal/domain"
	"bytemomo/manta/internal/registry"
	"bytemomo/manta/internal/usecase"
)

// File is the on-disk shape of the registry configuration:
//
//	max_parallel_tools: 4
//	tools:
//	  png:
//	    - name: zsteg
//	      exec: zsteg
//	      args: ["-a", "{file}"]
//	      parser: zsteg
//	      timeout: 60s
//	      required: true
type File struct {
	MaxParallelTools int                          `yaml:"max_parallel_tools"`
	Tools            map[string][]domain.ToolSpec `yaml:"tools"`
}

// Load reads and validates a registry file, returning the registry and
// the orchestrator config it implies. Media kinds listed in the file
// replace the default list for that kind only; other kinds are
// unaffected.
func Load(path string) (*registry.Registry, usecase.Config, error) {
	cfg := usecase.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cfg, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, cfg, fmt.Errorf("failed to parse tool config: %w", err)
	}

	if f.MaxParallelTools > 0 {
		cfg.MaxParallelTools = f.MaxParallelTools
	}

	reg := registry.Default()
	for name, specs := range f.Tools {
		kind := domain.ParseMediaKind(name)
		if kind == domain.Unknown {
			return nil, cfg, fmt.Errorf("tool config: unknown media kind %q", name)
		}
		reg, err = reg.WithKind(kind, specs)
		if err != nil {
			return nil, cfg, fmt.Errorf("tool config: %w", err)
		}
	}

	return reg, cfg, nil
}
