package action

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/timvw/helix-panes/internal/model"
)

// Vars maps placeholder names (without braces) to values.
type Vars map[string]string

// Render substitutes {name} placeholders in tpl. With quote set, each value
// is shell-quoted so a filename with spaces or metacharacters stays one
// word; editor commands are rendered raw. Unknown placeholders such as
// fzf's {1} are left untouched.
func Render(tpl string, vars Vars, quote bool) string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		v := vars[name]
		if quote {
			v = shellquote.Join(v)
		}
		pairs = append(pairs, "{"+name+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

// SplitCommand renders tpl quoted and splits it into argv for direct
// execution without a shell.
func SplitCommand(tpl string, vars Vars) ([]string, error) {
	return shellquote.Split(Render(tpl, vars, true))
}

// EditorVars returns the placeholders derived from an editor context.
func EditorVars(ec model.EditorContext, cwd string) Vars {
	return Vars{
		"file": ec.Filename,
		"line": ec.Line,
		"dir":  ec.Dir,
		"base": ec.Base,
		"ext":  ec.Extension,
		"root": CrateRoot(cwd, ec.Filename),
	}
}

// CrateRoot returns the directory holding the "src" component of filename,
// resolved against cwd. Without a src component it returns cwd.
//
//	"crates/core/src/lib.rs" -> cwd/crates/core
//	"src/main.rs"            -> cwd
func CrateRoot(cwd, filename string) string {
	i := strings.Index(filename, "/src/")
	if strings.HasPrefix(filename, "src/") || i <= 0 {
		return cwd
	}
	prefix := filename[:i]
	if filepath.IsAbs(prefix) {
		return prefix
	}
	return filepath.Join(cwd, prefix)
}
