// Package signature extracts, for a (resource, method) pair, its
// parameters, return type, docstring, action URL, and the set of named
// type symbols it references. The walk mirrors
// broady-tygor/tygorgen/provider.SourceProvider.convertType's recursive
// descent, but instead of converting to an IR it simply records every
// *types.TypeName it encounters, preserving identity so internal/typedeps
// and the ApiTypes/RawApiTypes disambiguation work off the same symbols
// the checker itself resolved.
package signature

import (
	"fmt"
	"go/ast"
	"go/types"
	"regexp"
	"strings"

	"github.com/davetashner/datocms-mcp/internal/typeprogram"
)

// Parameter describes a single method parameter.
type Parameter struct {
	Name       string
	Type       string // checker-printed type
	IsOptional bool   // Go has no optional params; always false
	Doc        string
}

// Overload is one call signature of a method. Go has no method overloading,
// so a MethodSignature always has exactly one Overload; the field is a
// slice to leave room for a future variadic-as-overload convention.
type Overload struct {
	Parameters []Parameter
	ReturnType string
}

// MethodSignature is the data model for one resource method's signature.
type MethodSignature struct {
	MethodName            string
	Overloads             []Overload
	Doc                   string
	ActionURL             string
	ReferencedTypeSymbols map[string]*types.TypeName // keyed by pkgPath.Name for stable iteration
}

var readMoreRE = regexp.MustCompile(`(?m)Read more:\s*(\S+)\s*$`)

// Extract resolves one (resource, method) pair to its signature. It
// returns (nil, nil) — not an error — when the resource or method does not
// exist; callers turn that into an input-class error with a
// discovery-tool remedy.
func Extract(prog *typeprogram.Program, resource, method string) (*MethodSignature, error) {
	field := prog.ResourceField(resource)
	if field == nil {
		return nil, nil
	}

	resourceType := field.Type()
	ptr, ok := resourceType.(*types.Pointer)
	if ok {
		resourceType = ptr.Elem()
	}
	named, ok := resourceType.(*types.Named)
	if !ok {
		return nil, fmt.Errorf("signature: resource %q is not a named type", resource)
	}

	obj, _, _ := types.LookupFieldOrMethod(named, true, named.Obj().Pkg(), method)
	fn, ok := obj.(*types.Func)
	if !ok || fn == nil {
		return nil, nil
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return nil, fmt.Errorf("signature: %s.%s has no signature", resource, method)
	}

	refs := make(map[string]*types.TypeName)
	overload := Overload{}
	qual := func(p *types.Package) string {
		if p == named.Obj().Pkg() {
			return ""
		}
		return p.Name()
	}
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		if isContext(p.Type()) {
			continue // ctx is plumbing, not a documented parameter
		}
		overload.Parameters = append(overload.Parameters, Parameter{
			Name: p.Name(),
			Type: types.TypeString(p.Type(), qual),
		})
		collectNamedTypes(p.Type(), refs, make(map[types.Type]bool))
	}

	if sig.Results().Len() > 0 {
		// Convention: the first non-error result is the meaningful return
		// type; a trailing error result is the Go analog of a rejected
		// Promise and is not itself a referenced type.
		for i := 0; i < sig.Results().Len(); i++ {
			r := sig.Results().At(i)
			if isErrorType(r.Type()) {
				continue
			}
			overload.ReturnType = types.TypeString(r.Type(), qual)
			collectNamedTypes(r.Type(), refs, make(map[types.Type]bool))
		}
	}

	doc := findDoc(prog, fn)
	actionURL := parseActionURL(doc)

	return &MethodSignature{
		MethodName:            method,
		Overloads:             []Overload{overload},
		Doc:                   doc,
		ActionURL:             actionURL,
		ReferencedTypeSymbols: refs,
	}, nil
}

// isContext reports whether t is context.Context — the Go analog of an
// async method's implicit "this call may suspend" marker.
func isContext(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	pkg := named.Obj().Pkg()
	return pkg != nil && pkg.Path() == "context" && named.Obj().Name() == "Context"
}

func isErrorType(t types.Type) bool {
	return t.String() == "error"
}

// collectNamedTypes walks t structurally — pointers, slices, arrays, maps,
// structs, and generic type arguments — recording every named type it
// finds. Basic types, the empty interface, and types outside the client's
// own packages are skipped: only declarations from the client's own
// packages are worth expanding for a caller.
func collectNamedTypes(t types.Type, out map[string]*types.TypeName, seen map[types.Type]bool) {
	if t == nil || seen[t] {
		return
	}
	seen[t] = true

	switch tt := t.(type) {
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() != nil && isClientPackage(obj.Pkg().Path()) {
			key := obj.Pkg().Path() + "." + obj.Name()
			out[key] = obj
		}
		// Descend into the underlying type too, so a named slice/map/struct
		// alias surfaces the types it's built from.
		collectNamedTypes(tt.Underlying(), out, seen)
		if targs := tt.TypeArgs(); targs != nil {
			for i := 0; i < targs.Len(); i++ {
				collectNamedTypes(targs.At(i), out, seen)
			}
		}
	case *types.Pointer:
		collectNamedTypes(tt.Elem(), out, seen)
	case *types.Slice:
		collectNamedTypes(tt.Elem(), out, seen)
	case *types.Array:
		collectNamedTypes(tt.Elem(), out, seen)
	case *types.Map:
		collectNamedTypes(tt.Key(), out, seen)
		collectNamedTypes(tt.Elem(), out, seen)
	case *types.Struct:
		for i := 0; i < tt.NumFields(); i++ {
			collectNamedTypes(tt.Field(i).Type(), out, seen)
		}
	case *types.Interface:
		// Non-empty interfaces would need method-set walking; the client
		// schema never declares one, so nothing further to do.
	default:
		// *types.Basic and friends: nothing to collect.
	}
}

// isClientPackage reports whether pkgPath is part of the introspected
// client's own module, excluding the standard library and third-party
// dependencies.
func isClientPackage(pkgPath string) bool {
	return strings.HasPrefix(pkgPath, "github.com/davetashner/datocms-mcp/internal/cmaschema/")
}

// findDoc locates fn's declaration in the AST and returns its doc comment
// text, following broady-tygor/tygorgen/provider.SourceProvider.extractDocumentation's
// approach of searching pkg.Syntax for the declaration at fn's position.
func findDoc(prog *typeprogram.Program, fn *types.Func) string {
	pos := fn.Pos()
	for _, pkg := range prog.Pkgs {
		if pkg.Types != fn.Pkg() {
			continue
		}
		for _, file := range pkg.Syntax {
			if file.Pos() > pos || file.End() < pos {
				continue
			}
			var doc *ast.CommentGroup
			ast.Inspect(file, func(n ast.Node) bool {
				if fd, ok := n.(*ast.FuncDecl); ok && fd.Name.Pos() == pos {
					doc = fd.Doc
					return false
				}
				return true
			})
			if doc != nil {
				return strings.TrimSpace(doc.Text())
			}
		}
	}
	return ""
}

// parseActionURL extracts the URL following a trailing "Read more:" line in
// a docstring.
func parseActionURL(doc string) string {
	m := readMoreRE.FindStringSubmatch(doc)
	if m == nil {
		return ""
	}
	return m[1]
}
