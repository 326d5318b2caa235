// Package registry maps a MediaKind to the ordered list of external tools
// applicable to it. A Registry is immutable after construction and safely
// shared by concurrent runs; "switching" a format's tool set means
// building a new Registry with WithKind, never editing a list in place.
package registry

import (
	"fmt"
	"time"

	"bytemomo/manta/internal/domain"
	"bytemomo/manta/internal/parse"
)

// Registry is a read-only MediaKind → []ToolSpec lookup.
type Registry struct {
	kinds map[domain.MediaKind][]domain.ToolSpec
}

// New builds a Registry from per-kind tool lists. Every spec is validated
// and must name a parser an adapter exists for; names must be unique
// within a kind. The input map and slices are copied, so later mutation
// by the caller cannot reach the registry.
func New(sets map[domain.MediaKind][]domain.ToolSpec) (*Registry, error) {
	kinds := make(map[domain.MediaKind][]domain.ToolSpec, len(sets))
	for kind, specs := range sets {
		if kind == domain.Unknown {
			return nil, fmt.Errorf("cannot register tools for unknown media kind")
		}
		seen := make(map[string]bool, len(specs))
		list := make([]domain.ToolSpec, len(specs))
		for i, spec := range specs {
			if err := spec.Validate(); err != nil {
				return nil, fmt.Errorf("%s tools: %w", kind, err)
			}
			if !parse.Known(spec.Parser) {
				return nil, fmt.Errorf("%s tools: tool %q: no adapter for parser %q", kind, spec.Name, spec.Parser)
			}
			if seen[spec.Name] {
				return nil, fmt.Errorf("%s tools: duplicate tool name %q", kind, spec.Name)
			}
			seen[spec.Name] = true
			list[i] = spec
		}
		kinds[kind] = list
	}
	return &Registry{kinds: kinds}, nil
}

// ToolsFor returns the registry-ordered tool list for kind. The returned
// slice is a copy; Unknown and unregistered kinds yield an empty list.
func (r *Registry) ToolsFor(kind domain.MediaKind) []domain.ToolSpec {
	specs := r.kinds[kind]
	out := make([]domain.ToolSpec, len(specs))
	copy(out, specs)
	return out
}

// Kinds returns the media kinds that have at least one tool registered.
func (r *Registry) Kinds() []domain.MediaKind {
	out := make([]domain.MediaKind, 0, len(r.kinds))
	for kind := range r.kinds {
		out = append(out, kind)
	}
	return out
}

// WithKind returns a new Registry with kind's tool list replaced. Other
// kinds keep their existing lists, and the receiver is left untouched, so
// in-flight runs reading it never observe the swap.
func (r *Registry) WithKind(kind domain.MediaKind, specs []domain.ToolSpec) (*Registry, error) {
	sets := make(map[domain.MediaKind][]domain.ToolSpec, len(r.kinds)+1)
	for k, v := range r.kinds {
		sets[k] = v
	}
	sets[kind] = specs
	return New(sets)
}

// Default returns the compiled-in tool registry used when no external
// configuration is supplied. Argument shapes follow the upstream tools'
// plain invocations.
func Default() *Registry {
	r, err := New(map[domain.MediaKind][]domain.ToolSpec{
		domain.PNG: {
			{Name: "zsteg", Executable: "zsteg", Args: []string{"-a", domain.FilePlaceholder}, Parser: domain.ParseZsteg, Timeout: 60 * time.Second, Required: true},
			{Name: "strings", Executable: "strings", Args: []string{"-n", "4", domain.FilePlaceholder}, Parser: domain.ParseStrings, Timeout: 15 * time.Second, Required: true},
			{Name: "exiftool", Executable: "exiftool", Args: []string{domain.FilePlaceholder}, Parser: domain.ParseExiftool, Timeout: 20 * time.Second},
			{Name: "binwalk", Executable: "binwalk", Args: []string{domain.FilePlaceholder}, Parser: domain.ParseBinwalk, Timeout: 60 * time.Second},
			{Name: "xxd", Executable: "xxd", Args: []string{"-l", "256", domain.FilePlaceholder}, Parser: domain.ParseXxd, Timeout: 10 * time.Second},
			{Name: "ent", Executable: "ent", Args: []string{"-c", domain.FilePlaceholder}, Parser: domain.ParseEnt, Timeout: 30 * time.Second},
		},
		domain.JPEG: {
			{Name: "exiftool", Executable: "exiftool", Args: []string{domain.FilePlaceholder}, Parser: domain.ParseExiftool, Timeout: 20 * time.Second, Required: true},
			{Name: "strings", Executable: "strings", Args: []string{"-n", "4", domain.FilePlaceholder}, Parser: domain.ParseStrings, Timeout: 15 * time.Second, Required: true},
			{Name: "steghide", Executable: "steghide", Args: []string{"info", "-p", "", domain.FilePlaceholder}, Parser: domain.ParseSteghide, Timeout: 30 * time.Second},
			{Name: "binwalk", Executable: "binwalk", Args: []string{domain.FilePlaceholder}, Parser: domain.ParseBinwalk, Timeout: 60 * time.Second},
			{Name: "xxd", Executable: "xxd", Args: []string{"-l", "256", domain.FilePlaceholder}, Parser: domain.ParseXxd, Timeout: 10 * time.Second},
			{Name: "ent", Executable: "ent", Args: []string{"-c", domain.FilePlaceholder}, Parser: domain.ParseEnt, Timeout: 30 * time.Second},
		},
		domain.Video: {
			{Name: "ffprobe", Executable: "ffprobe", Args: []string{"-v", "error", "-show_format", "-show_streams", domain.FilePlaceholder}, Parser: domain.ParseFfprobe, Timeout: 30 * time.Second, Required: true},
			{Name: "exiftool", Executable: "exiftool", Args: []string{domain.FilePlaceholder}, Parser: domain.ParseExiftool, Timeout: 20 * time.Second},
			{Name: "strings", Executable: "strings", Args: []string{"-n", "6", domain.FilePlaceholder}, Parser: domain.ParseStrings, Timeout: 30 * time.Second},
			{Name: "binwalk", Executable: "binwalk", Args: []string{domain.FilePlaceholder}, Parser: domain.ParseBinwalk, Timeout: 120 * time.Second},
		},
	})
	if err != nil {
		// The compiled-in table is validated by tests; reaching this is a
		// programming bug, not an analysis failure.
		panic(err)
	}
	return r
}
