package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/spritestrip/pkg/composite"
	"github.com/matzehuels/spritestrip/pkg/errors"
	"github.com/matzehuels/spritestrip/pkg/raster"
)

const tomlManifest = `
[defaults]
frame = { width = 64, height = 64, count = 10 }
cell  = { width = 32, height = 16 }
color = "#00ff00"

[[jobs]]
kind = "filmstrip"
inputs = ["temple.png", "fire.png"]
frame = { count = 5 }

[[jobs]]
name = "grid fire"
kind = "grid"
inputs = ["fire2_64.png"]
color = "#0000ff80"

[[jobs]]
kind = "stack"
inputs = ["temple.png", "templefire.png"]
output = "out/temple_sheet.png"
`

const yamlManifest = `
defaults:
  frame: {width: 64, height: 64, count: 10}
  cell: {width: 32, height: 16}
  color: "#00ff00"
jobs:
  - kind: filmstrip
    inputs: [temple.png, fire.png]
    frame: {count: 5}
  - name: grid fire
    kind: grid
    inputs: [fire2_64.png]
    color: "#0000ff80"
  - kind: stack
    inputs: [temple.png, templefire.png]
    output: out/temple_sheet.png
`

const jsonManifest = `{
  "defaults": {
    "frame": {"width": 64, "height": 64, "count": 10},
    "cell": {"width": 32, "height": 16},
    "color": "#00ff00"
  },
  "jobs": [
    {"kind": "filmstrip", "inputs": ["temple.png", "fire.png"], "frame": {"count": 5}},
    {"name": "grid fire", "kind": "grid", "inputs": ["fire2_64.png"], "color": "#0000ff80"},
    {"kind": "stack", "inputs": ["temple.png", "templefire.png"], "output": "out/temple_sheet.png"}
  ]
}`

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{"jobs.toml", tomlManifest},
		{"jobs.yaml", yamlManifest},
		{"jobs.yml", yamlManifest},
		{"jobs.json", jsonManifest},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			m, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if m.Dir != dir {
				t.Errorf("Dir = %q, want %q", m.Dir, dir)
			}
			if len(m.Jobs) != 3 {
				t.Fatalf("got %d jobs, want 3", len(m.Jobs))
			}

			film := m.Jobs[0]
			if film.Name != "filmstrip:temple.png+fire.png" {
				t.Errorf("default name = %q", film.Name)
			}
			if want := (composite.FrameGeometry{Width: 64, Height: 64, Count: 5}); film.Frame != want {
				t.Errorf("frame = %+v, want %+v", film.Frame, want)
			}
			if want := []string{filepath.Join(dir, "temple.png"), filepath.Join(dir, "fire.png")}; !reflect.DeepEqual(film.Inputs, want) {
				t.Errorf("inputs = %v, want %v", film.Inputs, want)
			}
			if got, want := film.OutputPath(), filepath.Join(dir, "templefire.png"); got != want {
				t.Errorf("output = %q, want %q", got, want)
			}

			grid := m.Jobs[1]
			if want := (composite.CellGeometry{Width: 32, Height: 16}); grid.Cell != want {
				t.Errorf("cell = %+v, want %+v", grid.Cell, want)
			}
			c, err := grid.GridColor()
			if err != nil {
				t.Fatalf("GridColor: %v", err)
			}
			if raster.FormatColor(c) != "#0000ff80" {
				t.Errorf("color = %s, want #0000ff80", raster.FormatColor(c))
			}
			if got, want := grid.OutputPath(), filepath.Join(dir, "fire2_64_out.png"); got != want {
				t.Errorf("grid output = %q, want %q", got, want)
			}

			stack := m.Jobs[2]
			if got, want := stack.OutputPath(), filepath.Join(dir, "out", "temple_sheet.png"); got != want {
				t.Errorf("stack output = %q, want %q", got, want)
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	m, err := Parse([]byte(`
[defaults]
color = "#112233"
cell = { width = 8 }

[[jobs]]
kind = "grid"
inputs = ["a.png"]
cell = { height = 4 }

[[jobs]]
kind = "grid"
inputs = ["b.png"]
cell = { width = 2, height = 2 }
`), FormatTOML, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if want := (composite.CellGeometry{Width: 8, Height: 4}); m.Jobs[0].Cell != want {
		t.Errorf("merged cell = %+v, want %+v", m.Jobs[0].Cell, want)
	}
	if want := (composite.CellGeometry{Width: 2, Height: 2}); m.Jobs[1].Cell != want {
		t.Errorf("override cell = %+v, want %+v", m.Jobs[1].Cell, want)
	}
	if m.Jobs[1].Color != "#112233" {
		t.Errorf("color = %q, want default", m.Jobs[1].Color)
	}
	if m.Jobs[0].Inputs[0] != "a.png" {
		t.Errorf("input resolved without a dir: %q", m.Jobs[0].Inputs[0])
	}
}

func TestParseAbsolutePathsKept(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "a.png")
	m, err := Parse([]byte(`{"jobs":[{"kind":"grid","inputs":["`+filepath.ToSlash(abs)+`"],"cell":{"width":2,"height":2}}]}`), FormatJSON, "/elsewhere")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := m.Jobs[0].Inputs[0]; got != filepath.ToSlash(abs) {
		t.Errorf("input = %q, want %q", got, abs)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"no jobs", FormatTOML, ``},
		{"malformed toml", FormatTOML, `[[jobs]`},
		{"unknown toml key", FormatTOML, "[[jobs]]\nkind = \"stack\"\ninputs = [\"a\", \"b\"]\nouptut = \"x.png\"\n"},
		{"unknown yaml key", FormatYAML, "jobs:\n  - kind: stack\n    inputs: [a, b]\n    colour: red\n"},
		{"unknown json key", FormatJSON, `{"jobs":[{"kind":"stack","inputs":["a","b"],"then":true}]}`},
		{"unknown kind", FormatJSON, `{"jobs":[{"kind":"blur","inputs":["a"]}]}`},
		{"stack arity", FormatJSON, `{"jobs":[{"kind":"stack","inputs":["a"]}]}`},
		{"grid arity", FormatJSON, `{"jobs":[{"kind":"grid","inputs":["a","b"],"cell":{"width":1,"height":1}}]}`},
		{"filmstrip without frame", FormatJSON, `{"jobs":[{"kind":"filmstrip","inputs":["a","b"]}]}`},
		{"grid without cell", FormatJSON, `{"jobs":[{"kind":"grid","inputs":["a"]}]}`},
		{"bad color", FormatJSON, `{"jobs":[{"kind":"grid","inputs":["a"],"cell":{"width":1,"height":1},"color":"red"}]}`},
		{"empty input", FormatJSON, `{"jobs":[{"kind":"stack","inputs":["a",""]}]}`},
		{"bad output", FormatJSON, `{"jobs":[{"kind":"stack","inputs":["a","b"],"output":"out/"}]}`},
		{"bad name", FormatJSON, `{"jobs":[{"name":"-x","kind":"stack","inputs":["a","b"]}]}`},
		{"duplicate name", FormatJSON, `{"jobs":[{"name":"x","kind":"stack","inputs":["a","b"]},{"name":"x","kind":"stack","inputs":["c","d"]}]}`},
		{"then_stack on grid", FormatJSON, `{"jobs":[{"kind":"grid","inputs":["a"],"cell":{"width":1,"height":1},"then_stack":true}]}`},
		{"unknown format", Format("ini"), `x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format, "")
			if !errors.Is(err, errors.ErrCodeInvalidManifest) {
				t.Errorf("error = %v, want INVALID_MANIFEST", err)
			}
		})
	}
}

func TestDefaultNames(t *testing.T) {
	m, err := Parse([]byte(`{"jobs":[
		{"kind":"grid","inputs":["fire.png"],"cell":{"width":2,"height":2}},
		{"kind":"grid","inputs":["fire.png"],"cell":{"width":4,"height":4}},
		{"name":"grid:fire.png:3","kind":"grid","inputs":["fire.png"],"cell":{"width":8,"height":8}},
		{"kind":"grid","inputs":["fire.png"],"cell":{"width":1,"height":1}},
		{"kind":"stack","inputs":["~/art/temple (1).png","fire.png"]}
	]}`), FormatJSON, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []string{
		"grid:fire.png",
		"grid:fire.png:2",
		"grid:fire.png:3",
		"grid:fire.png:4",
		"stack:_/art/temple _1_.png+fire.png",
	}
	if got := m.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("names = %q, want %q", got, want)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing: error = %v, want FILE_NOT_FOUND", err)
	}

	ini := filepath.Join(dir, "jobs.ini")
	if err := os.WriteFile(ini, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(ini); !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("ini: error = %v, want INVALID_MANIFEST", err)
	}
}

func TestExpand(t *testing.T) {
	m, err := Parse([]byte(`
[defaults]
frame = { width = 2, height = 2, count = 2 }

[[jobs]]
kind = "filmstrip"
inputs = ["temple.png", "fire.png"]
then_stack = true

[[jobs]]
kind = "filmstrip"
inputs = ["hut.png", "smoke.png"]
output = "strips/hut.png"
then_stack = true

[[jobs]]
kind = "filmstrip"
inputs = ["rock.png", "dust.png"]
`), FormatTOML, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	jobs := m.Expand()
	if len(jobs) != 5 {
		t.Fatalf("got %d jobs, want 5", len(jobs))
	}

	wantKinds := []Kind{KindFilmstrip, KindStack, KindFilmstrip, KindStack, KindFilmstrip}
	for i, j := range jobs {
		if j.Kind != wantKinds[i] {
			t.Errorf("job %d kind = %s, want %s", i, j.Kind, wantKinds[i])
		}
		if j.ThenStack {
			t.Errorf("job %d still has then_stack", i)
		}
		if err := j.Validate(); err != nil {
			t.Errorf("job %d invalid after expand: %v", i, err)
		}
	}

	first := jobs[1]
	if want := []string{"temple.png", "templefire.png"}; !reflect.DeepEqual(first.Inputs, want) {
		t.Errorf("stack inputs = %v, want %v", first.Inputs, want)
	}
	if first.OutputPath() != "templetemplefire.png" {
		t.Errorf("stack output = %q", first.OutputPath())
	}
	if first.Name != "filmstrip:temple.png+fire.png/stack" {
		t.Errorf("stack name = %q", first.Name)
	}

	second := jobs[3]
	if want := []string{"hut.png", "strips/hut.png"}; !reflect.DeepEqual(second.Inputs, want) {
		t.Errorf("stack inputs = %v, want %v", second.Inputs, want)
	}
	if second.OutputPath() != "huthut.png" {
		t.Errorf("stack output = %q", second.OutputPath())
	}

	if len(m.Jobs) != 3 || !m.Jobs[0].ThenStack {
		t.Error("Expand modified the manifest")
	}
}

func TestSelect(t *testing.T) {
	m, err := Parse([]byte(`{"jobs":[
		{"name":"a","kind":"stack","inputs":["1","2"]},
		{"name":"b","kind":"stack","inputs":["3","4"]},
		{"name":"c","kind":"stack","inputs":["5","6"]}
	]}`), FormatJSON, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	sel, err := m.Select([]string{"c", "a"})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got := sel.Names(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("selected %v, want [a c]", got)
	}
	if len(m.Jobs) != 3 {
		t.Error("Select modified the manifest")
	}

	if _, err := m.Select([]string{"a", "zzz"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestExampleManifests(t *testing.T) {
	for _, name := range []string{"sprites.toml", "sprites.yaml"} {
		t.Run(name, func(t *testing.T) {
			m, err := Load(filepath.Join("..", "..", "examples", name))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			jobs := m.Expand()
			if len(jobs) != 5 {
				t.Fatalf("Expand() = %d jobs, want 5", len(jobs))
			}
			if jobs[1].Name != "temple-fire/stack" || jobs[1].Kind != KindStack {
				t.Errorf("jobs[1] = %s %s, want the then_stack job", jobs[1].Kind, jobs[1].Name)
			}
			if jobs[2].Frame != (composite.FrameGeometry{Width: 64, Height: 64, Count: 8}) {
				t.Errorf("temple-smoke frame = %+v", jobs[2].Frame)
			}
		})
	}
}
