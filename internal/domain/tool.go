package domain

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ParserID selects the output adapter that understands a tool's stdout
// grammar.
type ParserID string

const (
	ParseZsteg    ParserID = "zsteg"
	ParseExiftool ParserID = "exiftool"
	ParseStrings  ParserID = "strings"
	ParseBinwalk  ParserID = "binwalk"
	ParseXxd      ParserID = "xxd"
	ParseEnt      ParserID = "ent"
	ParseFfprobe  ParserID = "ffprobe"
	ParseSteghide ParserID = "steghide"
)

// FilePlaceholder is the argument token substituted with the input file's
// path when a tool is launched.
const FilePlaceholder = "{file}"

// ToolSpec is the static invocation contract of one external detection
// utility. Specs are registered at startup and read-only afterwards; a
// (MediaKind, Name) pair identifies a spec uniquely.
type ToolSpec struct {
	Name       string        `yaml:"name" json:"name"`
	Executable string        `yaml:"exec" json:"exec"`
	Args       []string      `yaml:"args" json:"args,omitempty"`
	Parser     ParserID      `yaml:"parser" json:"parser"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	Required   bool          `yaml:"required" json:"required"`
}

// UnmarshalYAML decodes a spec with the timeout written as a
// human-readable duration ("60s", "2m").
func (s *ToolSpec) UnmarshalYAML(node *yaml.Node) error {
	type toolSpecAlias struct {
		Name       string   `yaml:"name"`
		Executable string   `yaml:"exec"`
		Args       []string `yaml:"args"`
		Parser     ParserID `yaml:"parser"`
		Timeout    string   `yaml:"timeout"`
		Required   bool     `yaml:"required"`
	}

	var a toolSpecAlias
	if err := node.Decode(&a); err != nil {
		return err
	}

	s.Name = a.Name
	s.Executable = a.Executable
	s.Args = a.Args
	s.Parser = a.Parser
	s.Required = a.Required
	s.Timeout = 0
	if a.Timeout != "" {
		d, err := time.ParseDuration(a.Timeout)
		if err != nil {
			return fmt.Errorf("tool %q: invalid timeout %q: %w", a.Name, a.Timeout, err)
		}
		s.Timeout = d
	}
	return nil
}

// Validate checks the spec fields that the runner and adapters rely on.
// Parser existence is checked by the registry, which knows the adapter set.
func (s *ToolSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if s.Executable == "" {
		return fmt.Errorf("tool %q: exec is required", s.Name)
	}
	if s.Parser == "" {
		return fmt.Errorf("tool %q: parser is required", s.Name)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("tool %q: timeout must be positive", s.Name)
	}
	return nil
}

// CommandLine expands the argument template against the input file path.
// Every FilePlaceholder token is substituted; a template without the
// placeholder gets the path appended, matching how most of the wrapped
// utilities are invoked.
func (s ToolSpec) CommandLine(file string) []string {
	args := make([]string, 0, len(s.Args)+1)
	substituted := false
	for _, a := range s.Args {
		if a == FilePlaceholder {
			args = append(args, file)
			substituted = true
			continue
		}
		args = append(args, a)
	}
	if !substituted {
		args = append(args, file)
	}
	return args
}
