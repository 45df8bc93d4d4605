package action

import (
	"reflect"
	"testing"

	"github.com/kballard/go-shellquote"
	"github.com/timvw/helix-panes/internal/layout"
	"github.com/timvw/helix-panes/internal/model"
)

func TestRender(t *testing.T) {
	vars := Vars{"file": "my notes.md", "line": "3"}

	quoted := Render("tig blame +{line} -- {file}", vars, true)
	words, err := shellquote.Split(quoted)
	if err != nil {
		t.Fatalf("split %q: %v", quoted, err)
	}
	want := []string{"tig", "blame", "+3", "--", "my notes.md"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("quoted: got %q, want %q", words, want)
	}

	if got := Render(":open {file}:{line}", vars, false); got != ":open my notes.md:3" {
		t.Errorf("raw: got %q", got)
	}
	if got := Render("fzf --preview 'bat {1}' {missing}", vars, true); got != "fzf --preview 'bat {1}' {missing}" {
		t.Errorf("unknown placeholders: got %q", got)
	}
	if got := Render("echo {file}", Vars{"file": ""}, true); got != "echo ''" {
		t.Errorf("empty value: got %q", got)
	}
}

func TestSplitCommand(t *testing.T) {
	argv, err := SplitCommand("gh browse {file}:{line}", Vars{"file": "src/a b.rs", "line": "9"})
	if err != nil {
		t.Fatalf("SplitCommand() error: %v", err)
	}
	want := []string{"gh", "browse", "src/a b.rs:9"}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("got %q, want %q", argv, want)
	}
}

func TestCrateRoot(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"src/main.rs", "/work"},
		{"crates/core/src/lib.rs", "/work/crates/core"},
		{"/abs/proj/src/lib.rs", "/abs/proj"},
		{"README.md", "/work"},
		{"docs/srcs/x.md", "/work"},
	}
	for _, tt := range tests {
		if got := CrateRoot("/work", tt.filename); got != tt.want {
			t.Errorf("CrateRoot(%q): got %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestEditorVars(t *testing.T) {
	v := EditorVars(model.NewEditorContext("crates/x/src/lib.rs", "7"), "/w")
	want := Vars{"file": "crates/x/src/lib.rs", "line": "7", "dir": "crates/x/src", "base": "lib", "ext": "rs", "root": "/w/crates/x"}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("got %v, want %v", v, want)
	}
}

func TestCatalog(t *testing.T) {
	items := Catalog(layout.DefaultPresets())
	if len(items) != 8 {
		t.Fatalf("expected 8 items, got %d", len(items))
	}
	last := items[len(items)-1]
	if last.Title() != "layout small-terminal" {
		t.Errorf("last item: got %q", last.Title())
	}
	if items[0].Title() != "blame" {
		t.Errorf("first item: got %q", items[0].Title())
	}
}
