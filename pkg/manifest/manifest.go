// Package manifest loads batch job lists for the compositing operations.
//
// A manifest is a TOML, YAML or JSON document with optional defaults and a
// list of jobs:
//
//	[defaults]
//	frame = { width = 64, height = 64, count = 10 }
//	cell  = { width = 64, height = 64 }
//
//	[[jobs]]
//	kind = "filmstrip"
//	inputs = ["temple.png", "fire.png"]
//	then_stack = true
//
// Relative paths resolve against the manifest's directory. Geometry and color
// set on a job override the defaults field by field.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/spritestrip/pkg/composite"
	"github.com/matzehuels/spritestrip/pkg/errors"
	"github.com/matzehuels/spritestrip/pkg/naming"
	"github.com/matzehuels/spritestrip/pkg/raster"
)

// Kind names a compositing operation.
type Kind string

const (
	KindFilmstrip Kind = "filmstrip"
	KindGrid      Kind = "grid"
	KindStack     Kind = "stack"
)

// Kinds lists every supported job kind.
var Kinds = []Kind{KindFilmstrip, KindGrid, KindStack}

// Arity is the number of input images the kind consumes.
func (k Kind) Arity() int {
	switch k {
	case KindFilmstrip, KindStack:
		return 2
	case KindGrid:
		return 1
	}
	return 0
}

// Format is a manifest file format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var formatsByExt = map[string]Format{
	".toml": FormatTOML,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".json": FormatJSON,
}

// DetectFormat picks the manifest format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatsByExt[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidManifest, "unsupported manifest %s (want .toml, .yaml, .yml or .json)", filepath.Base(path))
}

// Defaults holds values applied to every job that leaves them unset.
type Defaults struct {
	Frame composite.FrameGeometry `json:"frame" toml:"frame" yaml:"frame"`
	Cell  composite.CellGeometry  `json:"cell" toml:"cell" yaml:"cell"`
	Color string                  `json:"color,omitempty" toml:"color" yaml:"color,omitempty"`
}

// Job is one compositing operation.
type Job struct {
	Name      string                  `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`
	Kind      Kind                    `json:"kind" toml:"kind" yaml:"kind"`
	Inputs    []string                `json:"inputs" toml:"inputs" yaml:"inputs"`
	Output    string                  `json:"output,omitempty" toml:"output" yaml:"output,omitempty"`
	Frame     composite.FrameGeometry `json:"frame" toml:"frame" yaml:"frame"`
	Cell      composite.CellGeometry  `json:"cell" toml:"cell" yaml:"cell"`
	Color     string                  `json:"color,omitempty" toml:"color" yaml:"color,omitempty"`
	ThenStack bool                    `json:"then_stack,omitempty" toml:"then_stack" yaml:"then_stack,omitempty"`
}

// Manifest is a parsed job list.
type Manifest struct {
	Defaults Defaults `json:"defaults" toml:"defaults" yaml:"defaults"`
	Jobs     []Job    `json:"jobs" toml:"jobs" yaml:"jobs"`

	// Dir is the directory relative paths were resolved against.
	Dir string `json:"-" toml:"-" yaml:"-"`
}

// Load reads, normalizes and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest %s", path)
	}
	return Parse(data, format, filepath.Dir(path))
}

// Parse decodes a manifest, applies defaults, validates the jobs and resolves
// their paths against dir.
func Parse(data []byte, format Format, dir string) (*Manifest, error) {
	var m Manifest
	if err := decode(data, format, &m); err != nil {
		return nil, err
	}
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.Dir = dir
	m.resolvePaths()
	return &m, nil
}

// Unknown keys are rejected so a typo never silently falls back to a default.
func decode(data []byte, format Format, m *Manifest) error {
	var err error
	switch format {
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), m)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				sort.Strings(keys)
				err = fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(m)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(m)
	default:
		return errors.New(errors.ErrCodeInvalidManifest, "unsupported manifest format %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s manifest", format)
	}
	return nil
}

func (m *Manifest) applyDefaults() {
	used := make(map[string]bool, len(m.Jobs))
	for _, j := range m.Jobs {
		used[j.Name] = true
	}
	for i := range m.Jobs {
		j := &m.Jobs[i]
		if j.Name == "" {
			base := DefaultName(j.Kind, j.Inputs)
			j.Name = base
			for n := 2; used[j.Name]; n++ {
				j.Name = fmt.Sprintf("%s:%d", base, n)
			}
			used[j.Name] = true
		}
		j.Frame = mergeFrame(j.Frame, m.Defaults.Frame)
		j.Cell = mergeCell(j.Cell, m.Defaults.Cell)
		if j.Color == "" {
			j.Color = m.Defaults.Color
		}
	}
}

// Paths are validated as written, then joined to Dir.
func (m *Manifest) resolvePaths() {
	for i := range m.Jobs {
		j := &m.Jobs[i]
		for k, in := range j.Inputs {
			j.Inputs[k] = m.resolve(in)
		}
		if j.Output != "" {
			j.Output = m.resolve(j.Output)
		}
	}
}

func (m *Manifest) resolve(path string) string {
	if m.Dir == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.Dir, path)
}

// maxNameLength matches the limit enforced by errors.ValidateJobName, less
// room for a ":N" suffix.
const maxNameLength = 120

// DefaultName derives a job name from its kind and inputs as written,
// "kind:input1+input2". Characters not allowed in job names become '_'.
func DefaultName(kind Kind, inputs []string) string {
	name := string(kind) + ":" + strings.Join(inputs, "+")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case strings.ContainsRune(" ._:+/-", r):
			return r
		}
		return '_'
	}, name)
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	return name
}

func mergeFrame(job, def composite.FrameGeometry) composite.FrameGeometry {
	if job.Width == 0 {
		job.Width = def.Width
	}
	if job.Height == 0 {
		job.Height = def.Height
	}
	if job.Count == 0 {
		job.Count = def.Count
	}
	return job
}

func mergeCell(job, def composite.CellGeometry) composite.CellGeometry {
	if job.Width == 0 {
		job.Width = def.Width
	}
	if job.Height == 0 {
		job.Height = def.Height
	}
	return job
}

// OutputPath is the explicit output, or the path derived from the inputs.
func (j Job) OutputPath() string {
	if j.Output != "" {
		return j.Output
	}
	return DefaultOutput(j.Kind, j.Inputs)
}

// DefaultOutput derives the output path of a job that does not name one.
func DefaultOutput(kind Kind, inputs []string) string {
	switch {
	case kind == KindGrid && len(inputs) >= 1:
		return naming.WithSuffix(inputs[0], naming.Suffix)
	case len(inputs) >= 2:
		return naming.Combine(inputs[0], inputs[1])
	case len(inputs) == 1:
		return naming.WithSuffix(inputs[0], naming.Suffix)
	}
	return ""
}

// GridColor parses the job color, falling back to [raster.DefaultGridColor].
func (j Job) GridColor() (color.NRGBA, error) {
	if j.Color == "" {
		return raster.DefaultGridColor, nil
	}
	return raster.ParseColor(j.Color)
}

// Names returns the job names in manifest order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Jobs))
	for i, j := range m.Jobs {
		names[i] = j.Name
	}
	return names
}

// Select keeps only the named jobs, preserving manifest order.
// Unknown names are an INVALID_INPUT error.
func (m *Manifest) Select(names []string) (*Manifest, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	out := *m
	out.Jobs = nil
	for _, j := range m.Jobs {
		if want[j.Name] {
			out.Jobs = append(out.Jobs, j)
			delete(want, j.Name)
		}
	}
	if len(want) > 0 {
		missing := make([]string, 0, len(want))
		for n := range want {
			missing = append(missing, n)
		}
		sort.Strings(missing)
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown jobs: %s", strings.Join(missing, ", "))
	}
	return &out, nil
}
