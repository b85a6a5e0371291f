// Package typeprogram builds the compilation the rest of the introspector
// walks, rooted at internal/cmaschema/client instead of a TypeScript
// .d.ts, using golang.org/x/tools/go/packages the same way
// broady-tygor's internal/discover and tygorgen/provider load and
// type-check a target package.
package typeprogram

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"

	"github.com/davetashner/datocms-mcp/internal/memoize"
)

// ClientPackagePath is the Go import path rooted for introspection,
// standing in for the real client's top-level declaration file.
const ClientPackagePath = "github.com/davetashner/datocms-mcp/internal/cmaschema/client"

// Program is the shared compilation every extractor operates against.
// Comparing symbols found via Program (types.Object, types.Type) by Go
// identity — never by name alone — is what preserves the
// ApiTypes-vs-RawApiTypes distinction between a resource's simple and
// Raw* method variants.
type Program struct {
	Pkgs      []*packages.Package
	Client    *types.Named // the Client struct type
	ClientPkg *packages.Package
}

// Lookup returns the *types.Package for pkgPath, or nil if it was not part
// of this compilation's transitive closure.
func (p *Program) Lookup(pkgPath string) *types.Package {
	for _, pkg := range p.Pkgs {
		if pkg.PkgPath == pkgPath {
			return pkg.Types
		}
	}
	return nil
}

// ResourceField returns the struct field on Client named resource (e.g.
// "Items", "ItemTypes"), or nil if no such resource exists.
func (p *Program) ResourceField(resource string) *types.Var {
	st, ok := p.Client.Underlying().(*types.Struct)
	if !ok {
		return nil
	}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Name() == resource {
			return f
		}
	}
	return nil
}

// ResourceNames returns every resource namespace declared on Client (its
// exported struct field names, in declaration order), the type-level
// analog of resourceschema's flattened namespace list.
func (p *Program) ResourceNames() []string {
	st, ok := p.Client.Underlying().(*types.Struct)
	if !ok {
		return nil
	}
	var names []string
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Exported() && f.Name() != "Config" {
			names = append(names, f.Name())
		}
	}
	return names
}

// ResourceMethods returns the exported method names declared on resource's
// type, in method-set order. Used to bind a hyperschema link back to
// every overload whose actionUrl matches the link's docUrl.
func (p *Program) ResourceMethods(resource string) []string {
	field := p.ResourceField(resource)
	if field == nil {
		return nil
	}
	t := field.Type()
	named, ok := t.(*types.Named)
	if !ok {
		if ptr, ok := t.(*types.Pointer); ok {
			named, ok = ptr.Elem().(*types.Named)
			if !ok {
				return nil
			}
		} else {
			return nil
		}
	}

	mset := types.NewMethodSet(types.NewPointer(named))
	names := make([]string, 0, mset.Len())
	for i := 0; i < mset.Len(); i++ {
		names = append(names, mset.At(i).Obj().Name())
	}
	return names
}

// build performs the one-time load+typecheck. It fails loudly (returns a
// descriptive error) if the Client type is missing — an invariant
// violation, not an input error, so callers should let it abort only the
// in-flight call.
func build() (*Program, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedDeps |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, ClientPackagePath)
	if err != nil {
		return nil, fmt.Errorf("typeprogram: load %s: %w", ClientPackagePath, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("typeprogram: package %s has type errors", ClientPackagePath)
	}

	var clientPkg *packages.Package
	for _, pkg := range pkgs {
		if pkg.PkgPath == ClientPackagePath {
			clientPkg = pkg
			break
		}
	}
	if clientPkg == nil {
		return nil, fmt.Errorf("typeprogram: package %s not found among loaded packages", ClientPackagePath)
	}

	obj := clientPkg.Types.Scope().Lookup("Client")
	if obj == nil {
		return nil, fmt.Errorf("typeprogram: Client type not declared in %s", ClientPackagePath)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("typeprogram: Client is not a type declaration in %s", ClientPackagePath)
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil, fmt.Errorf("typeprogram: Client is not a named type in %s", ClientPackagePath)
	}
	if _, ok := named.Underlying().(*types.Struct); !ok {
		return nil, fmt.Errorf("typeprogram: Client is not a struct type in %s", ClientPackagePath)
	}

	// Flatten every transitively-loaded package (client, apitypes,
	// rawapitypes, and their own deps) so extractors can resolve symbols
	// from any of them by path.
	all := allPackages(pkgs)

	return &Program{
		Pkgs:      all,
		Client:    named,
		ClientPkg: clientPkg,
	}, nil
}

func allPackages(roots []*packages.Package) []*packages.Package {
	seen := make(map[string]bool)
	var out []*packages.Package
	var visit func(p *packages.Package)
	visit = func(p *packages.Package) {
		if seen[p.PkgPath] {
			return
		}
		seen[p.PkgPath] = true
		out = append(out, p)
		for _, imp := range p.Imports {
			visit(imp)
		}
	}
	for _, r := range roots {
		visit(r)
	}
	return out
}

var memoBuild = memoize.New(build)

// Get returns the shared, memoized Program, building it on first use.
func Get() (*Program, error) {
	return memoBuild()
}

// ResetForTest clears the memoized program so tests can rebuild it against
// a differently-configured environment. Safe to call from any package's
// tests since the underlying source (internal/cmaschema/client) never
// changes at runtime; provided for symmetry with the rest of the
// memoized-loader packages.
func ResetForTest() {
	memoBuild = memoize.New(build)
}
