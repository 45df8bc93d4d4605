package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		filename string
		dir      string
		base     string
		ext      string
	}{
		{"src/main.rs", "src", "main", "rs"},
		{"notes", "", "notes", ""},
		{".gitignore", "", "", "gitignore"},
		{"a/b/archive.tar.gz", "a/b", "archive", "gz"},
		{"/etc/hosts", "/etc", "hosts", ""},
		{"./README.md", ".", "README", "md"},
		{"dir/.env", "dir", "", "env"},
		{"trailing.", "", "trailing", ""},
		{"", "", "", ""},
		{"src/[weird](name).go", "src", "[weird](name)", "go"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			dir, base, ext := SplitPath(tt.filename)
			if dir != tt.dir {
				t.Errorf("dir: got %q, want %q", dir, tt.dir)
			}
			if base != tt.base {
				t.Errorf("base: got %q, want %q", base, tt.base)
			}
			if ext != tt.ext {
				t.Errorf("ext: got %q, want %q", ext, tt.ext)
			}
		})
	}
}

func TestNewEditorContext(t *testing.T) {
	ctx := NewEditorContext("internal/mux/tmux.go", "42")
	if ctx.Filename != "internal/mux/tmux.go" {
		t.Errorf("Filename: got %q", ctx.Filename)
	}
	if ctx.Line != "42" {
		t.Errorf("Line: got %q, want %q", ctx.Line, "42")
	}
	if ctx.Dir != "internal/mux" || ctx.Base != "tmux" || ctx.Extension != "go" {
		t.Errorf("derived fields: got dir=%q base=%q ext=%q", ctx.Dir, ctx.Base, ctx.Extension)
	}

	data, err := json.Marshal(ctx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"line":"42"`) {
		t.Errorf("line should serialize as a string, got %s", data)
	}
}

func TestParseDirection(t *testing.T) {
	for _, in := range []string{"left", "Right", " up ", "DOWN"} {
		if _, err := ParseDirection(in); err != nil {
			t.Errorf("ParseDirection(%q): unexpected error %v", in, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestDirection_Opposite(t *testing.T) {
	pairs := map[Direction]Direction{Left: Right, Right: Left, Up: Down, Down: Up}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Errorf("%s.Opposite() = %s, want %s", d, got, want)
		}
	}
}

func TestParseMatch(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    Match
		wantErr bool
	}{
		{name: "rg output", token: "src/main.rs:12:5:fn main() {", want: Match{Path: "src/main.rs", Line: "12", Column: "5"}},
		{name: "path and line", token: "go.mod:3", want: Match{Path: "go.mod", Line: "3"}},
		{name: "trailing newline", token: "a.go:7:1\n", want: Match{Path: "a.go", Line: "7", Column: "1"}},
		{name: "non-numeric column ignored", token: "a.go:7:x", want: Match{Path: "a.go", Line: "7"}},
		{name: "missing line", token: "a.go", wantErr: true},
		{name: "empty path", token: ":12", wantErr: true},
		{name: "line not a number", token: "a.go:twelve:1", wantErr: true},
		{name: "empty", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMatch(tt.token)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPane_Edges(t *testing.T) {
	p := Pane{ID: "%1", Left: 10, Top: 2, Width: 30, Height: 20}
	if p.Right() != 40 {
		t.Errorf("Right: got %d, want 40", p.Right())
	}
	if p.Bottom() != 22 {
		t.Errorf("Bottom: got %d, want 22", p.Bottom())
	}
}
