package lua

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuin/gopher-lua/ast"
	"github.com/yuin/gopher-lua/parse"
)

// Exports returns the names declared by top-level local statements in code,
// in declaration order and without duplicates.
func Exports(code string) ([]string, error) {
	chunk, err := parse.Parse(strings.NewReader(code), "<script>")
	if err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, stmt := range chunk {
		switch s := stmt.(type) {
		case *ast.LocalAssignStmt:
			for _, name := range s.Names {
				add(name)
			}
		}
	}
	return names, nil
}

// ModuleSource appends a return of the exported locals to code.
func ModuleSource(code string, exports []string) string {
	fields := make([]string, len(exports))
	for i, name := range exports {
		fields[i] = name + "=" + name
	}
	return code + "\nreturn {" + strings.Join(fields, ",") + "}"
}

// RunFile runs path in a fresh sandboxed state and returns its result as Go
// values.
func RunFile(ctx context.Context, path string) (any, error) {
	state := NewState()
	defer state.Close()

	ret, err := state.DoFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return ToGoValue(ret), nil
}
