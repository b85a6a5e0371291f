// Package typedeps expands a seed set of type symbols' declarations up to
// a bounded depth, tracking which referenced types were pruned by the
// depth cap so a caller can report them separately. It walks the same
// *types.Named identities internal/signature produced, never type names
// alone, which is what keeps apitypes.ItemTypeInstancesTargetSchema and
// its rawapitypes namesake from collapsing into a single emitted
// declaration.
package typedeps

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"go/types"
	"sort"
	"strings"

	"github.com/davetashner/datocms-mcp/internal/typeprogram"
)

// ExpandAll is the expandTypes sentinel meaning "no depth limit".
const ExpandAll = "*"

// DefaultMaxDepth is the depth an expansion uses when Options.MaxDepth is
// left unset (nil).
const DefaultMaxDepth = 2

// Options controls the traversal. MaxDepth is a pointer so an explicit
// zero (cap the expansion to nothing) can be told apart from an unset
// field, which falls back to DefaultMaxDepth.
type Options struct {
	MaxDepth    *int
	ExpandTypes []string
}

// Result is an expansion's output: rendered declarations plus the names
// that hit the depth cap before they could be rendered.
type Result struct {
	ExpandedTypes    string
	NotExpandedTypes []string
}

// Expand walks seeds (as produced by internal/signature's
// ReferencedTypeSymbols) and returns their declarations plus the set of
// types referenced but pruned by the depth cap.
func Expand(prog *typeprogram.Program, seeds map[string]*types.TypeName, opts Options) (*Result, error) {
	maxDepth := DefaultMaxDepth
	if opts.MaxDepth != nil {
		maxDepth = *opts.MaxDepth
	}

	roots := seeds
	if len(opts.ExpandTypes) > 0 {
		replaced := make(map[string]*types.TypeName)
		unlimited := false
		for _, name := range opts.ExpandTypes {
			if name == ExpandAll {
				unlimited = true
				continue
			}
			if tn := resolveByName(prog, name); tn != nil {
				replaced[key(tn)] = tn
			}
		}
		if unlimited {
			maxDepth = 1<<31 - 1
		}
		if len(replaced) > 0 {
			roots = replaced
		}
	}

	// An explicit depth cap of zero (or below) means "expand nothing";
	// every root is reported as deferred rather than walked.
	if maxDepth <= 0 {
		keys := make([]string, 0, len(roots))
		for k, tn := range roots {
			if isClientTypeName(tn) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		return &Result{NotExpandedTypes: keys}, nil
	}

	minDepth := make(map[string]int)
	emitted := make(map[string]*types.TypeName)
	deferred := make(map[string]bool)

	var visit func(tn *types.TypeName, depth int)
	visit = func(tn *types.TypeName, depth int) {
		if !isClientTypeName(tn) {
			return
		}
		k := key(tn)
		if prev, ok := minDepth[k]; ok && prev <= depth {
			return
		}
		minDepth[k] = depth

		if depth > maxDepth {
			deferred[k] = true
			delete(emitted, k)
			for _, ref := range immediateRefs(tn) {
				if !isClientTypeName(ref) {
					continue
				}
				rk := key(ref)
				if _, ok := emitted[rk]; !ok {
					deferred[rk] = true
				}
			}
			return
		}

		emitted[k] = tn
		delete(deferred, k)
		for _, ref := range immediateRefs(tn) {
			visit(ref, depth+1)
		}
	}

	keys := make([]string, 0, len(roots))
	for k := range roots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		visit(roots[k], 0)
	}

	emittedKeys := make([]string, 0, len(emitted))
	for k := range emitted {
		emittedKeys = append(emittedKeys, k)
	}
	sort.Strings(emittedKeys)

	var b strings.Builder
	for i, k := range emittedKeys {
		tn := emitted[k]
		src, err := declarationSource(prog, tn)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "// %s\n%s", qualifiedName(tn), src)
	}

	notExpanded := make([]string, 0, len(deferred))
	for k := range deferred {
		if _, ok := emitted[k]; ok {
			continue
		}
		notExpanded = append(notExpanded, k)
	}
	sort.Strings(notExpanded)

	return &Result{ExpandedTypes: b.String(), NotExpandedTypes: notExpanded}, nil
}

func key(tn *types.TypeName) string {
	return tn.Pkg().Path() + "." + tn.Name()
}

func qualifiedName(tn *types.TypeName) string {
	return tn.Pkg().Name() + "." + tn.Name()
}

func isClientTypeName(tn *types.TypeName) bool {
	return tn.Pkg() != nil && strings.HasPrefix(tn.Pkg().Path(), "github.com/davetashner/datocms-mcp/internal/cmaschema/")
}

// immediateRefs returns the named types tn's underlying type references one
// level down, stopping at named-type boundaries — descending into those is
// the caller's job for the next depth.
func immediateRefs(tn *types.TypeName) []*types.TypeName {
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil
	}

	var refs []*types.TypeName
	seen := make(map[types.Type]bool)
	var walk func(t types.Type)
	walk = func(t types.Type) {
		if t == nil || seen[t] {
			return
		}
		seen[t] = true
		switch tt := t.(type) {
		case *types.Named:
			refs = append(refs, tt.Obj())
		case *types.Pointer:
			walk(tt.Elem())
		case *types.Slice:
			walk(tt.Elem())
		case *types.Array:
			walk(tt.Elem())
		case *types.Map:
			walk(tt.Key())
			walk(tt.Elem())
		case *types.Struct:
			for i := 0; i < tt.NumFields(); i++ {
				walk(tt.Field(i).Type())
			}
		}
	}
	walk(named.Underlying())
	return refs
}

// resolveByName resolves an expandTypes entry, handling both bare names and
// "Namespace.Type" qualified names.
func resolveByName(prog *typeprogram.Program, name string) *types.TypeName {
	pkgHint, typeName := "", name
	if i := strings.LastIndex(name, "."); i >= 0 {
		pkgHint, typeName = name[:i], name[i+1:]
	}

	for _, pkg := range prog.Pkgs {
		if !strings.HasPrefix(pkg.PkgPath, "github.com/davetashner/datocms-mcp/internal/cmaschema/") {
			continue
		}
		if pkgHint != "" && pkg.Types.Name() != pkgHint {
			continue
		}
		obj := pkg.Types.Scope().Lookup(typeName)
		if tn, ok := obj.(*types.TypeName); ok {
			return tn
		}
	}
	return nil
}

// declarationSource prints tn's type declaration with its doc comment
// stripped.
func declarationSource(prog *typeprogram.Program, tn *types.TypeName) (string, error) {
	for _, pkg := range prog.Pkgs {
		if pkg.Types != tn.Pkg() {
			continue
		}
		for _, file := range pkg.Syntax {
			var found *ast.TypeSpec
			ast.Inspect(file, func(n ast.Node) bool {
				if found != nil {
					return false
				}
				if ts, ok := n.(*ast.TypeSpec); ok && ts.Name.Pos() == tn.Pos() {
					found = ts
					return false
				}
				return true
			})
			if found == nil {
				continue
			}
			clone := *found
			clone.Doc = nil
			clone.Comment = nil
			var buf bytes.Buffer
			if err := printer.Fprint(&buf, pkg.Fset, &clone); err != nil {
				return "", fmt.Errorf("typedeps: print %s: %w", tn.Name(), err)
			}
			return "type " + buf.String(), nil
		}
	}
	return "", fmt.Errorf("typedeps: declaration for %s not found in loaded syntax", tn.Name())
}
