package lumen

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
)

//go:embed shaders/*.wgsl
var shaderFS embed.FS

// Stage identifies the pipeline stage a shader entry point belongs to.
type Stage string

const (
	VertexStage   Stage = "vertex"
	FragmentStage Stage = "fragment"
)

var entryPattern = regexp.MustCompile(`@(vertex|fragment)\s+fn\s+([A-Za-z_][A-Za-z0-9_]*)`)

// Library is the set of shader sources bundled with the application,
// indexed by the entry points they declare.
type Library struct {
	source  string
	entries map[string]Stage
}

// DefaultLibrary loads the WGSL sources embedded in the binary. The
// application cannot render without shaders, so a missing or empty
// library is an error the caller treats as fatal.
func DefaultLibrary() (*Library, error) {
	names, err := fs.Glob(shaderFS, "shaders/*.wgsl")
	if err != nil {
		return nil, fmt.Errorf("enumerate shader sources: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no shader sources bundled with the application")
	}
	sort.Strings(names)

	sources := make([]string, 0, len(names))
	for _, name := range names {
		code, err := shaderFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read shader %s: %w", name, err)
		}
		sources = append(sources, string(code))
	}

	return newLibrary(strings.Join(sources, "\n")), nil
}

func newLibrary(source string) *Library {
	lib := &Library{
		source:  source,
		entries: map[string]Stage{},
	}

	for _, m := range entryPattern.FindAllStringSubmatch(source, -1) {
		lib.entries[m[2]] = Stage(m[1])
	}

	return lib
}

// Source returns the combined WGSL source of the library. All entry
// points are compiled into a single shader module.
func (l *Library) Source() string {
	return l.source
}

// Entry reports the stage of a named entry point.
func (l *Library) Entry(name string) (Stage, bool) {
	stage, ok := l.entries[name]
	return stage, ok
}

// MustEntry asserts that the named entry point exists with the given
// stage. A missing entry point is a build configuration bug, not a
// runtime condition, so it panics before any GPU submission happens.
func (l *Library) MustEntry(name string, stage Stage) {
	got, ok := l.entries[name]
	if !ok {
		panic(fmt.Sprintf("shader entry point %q not found in library", name))
	}
	if got != stage {
		panic(fmt.Sprintf("shader entry point %q is a %s entry, want %s", name, got, stage))
	}
}
