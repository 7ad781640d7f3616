package hints

import (
	"fmt"
	"go/ast"
	"go/types"
	"sync"

	"github.com/pablor21/typelens/annotation"
	"github.com/pablor21/typelens/logger"
	"golang.org/x/tools/go/packages"
)

const sourceLoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedModule

// SourceResolver reads declarations from Go source. Packages are loaded
// with go/packages the first time one of their symbols is requested, or
// upfront with Load.
type SourceResolver struct {
	mu        sync.Mutex
	dir       string
	packages  map[string]*packages.Package
	converter *GoTypeConverter
	logger    logger.Logger
}

// NewSourceResolver creates a resolver loading packages relative to dir
// (the current directory when empty).
func NewSourceResolver(dir string, log logger.Logger) *SourceResolver {
	if log == nil {
		log = logger.NewDefaultLogger()
	}
	log.SetTag("SourceResolver")
	return &SourceResolver{
		dir:       dir,
		packages:  make(map[string]*packages.Package),
		converter: NewGoTypeConverter(log),
		logger:    log,
	}
}

// Converter returns the go/types converter used by the resolver
func (r *SourceResolver) Converter() *GoTypeConverter {
	return r.converter
}

func (r *SourceResolver) config() *packages.Config {
	return &packages.Config{Mode: sourceLoadMode, Dir: r.dir}
}

// Load loads every package matching patterns (see PackageGlob) and keeps
// them for later lookups.
func (r *SourceResolver) Load(patterns ...string) ([]*packages.Package, error) {
	pkgs, err := LoadPackages(r.config(), patterns...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackageLoad, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pkg := range pkgs {
		r.register(pkg)
	}
	r.logger.Info(fmt.Sprintf("Loaded %d packages", len(pkgs)))
	return pkgs, nil
}

func (r *SourceResolver) register(pkg *packages.Package) {
	for _, e := range pkg.Errors {
		r.logger.Warn(fmt.Sprintf("Package %s: %v", pkg.PkgPath, e))
	}
	r.packages[pkg.PkgPath] = pkg
}

func (r *SourceResolver) loadPackage(pkgPath string) (*packages.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pkg, ok := r.packages[pkgPath]; ok {
		return pkg, nil
	}

	r.logger.Debug(fmt.Sprintf("Loading package %s", pkgPath))
	pkgs, err := packages.Load(r.config(), pkgPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPackageLoad, pkgPath, err)
	}
	if len(pkgs) == 0 || pkgs[0].Types == nil {
		return nil, fmt.Errorf("%w: %s", ErrPackageLoad, pkgPath)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 && len(pkg.GoFiles) == 0 {
		// nothing to read declarations from
		return nil, fmt.Errorf("%w: %s: %v", ErrPackageLoad, pkgPath, pkg.Errors[0])
	}
	r.register(pkg)
	return pkg, nil
}

// lookup finds the declaration named by target
func (r *SourceResolver) lookup(target any) (types.Object, *packages.Package, error) {
	sym, ok := SymbolOf(target)
	if !ok {
		return nil, nil, unsupported(target)
	}
	parts, ok := parseSymbol(sym)
	if !ok {
		return nil, nil, notFound(sym)
	}
	pkg, err := r.loadPackage(parts.PkgPath)
	if err != nil {
		return nil, nil, err
	}
	scope := pkg.Types.Scope()

	if parts.Receiver == "" {
		obj := scope.Lookup(parts.Name)
		if obj == nil {
			return nil, nil, notFound(sym)
		}
		return obj, pkg, nil
	}

	recv, ok := scope.Lookup(parts.Receiver).(*types.TypeName)
	if !ok {
		return nil, nil, notFound(sym)
	}
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(recv.Type()), true, pkg.Types, parts.Name)
	fn, ok := obj.(*types.Func)
	if !ok {
		return nil, nil, notFound(sym)
	}
	return fn, pkg, nil
}

// Annotation returns the annotation of the declaration named by target:
// the kind of a type, the Callable of a function.
func (r *SourceResolver) Annotation(target any) (any, error) {
	obj, _, err := r.lookup(target)
	if err != nil {
		return nil, err
	}
	return r.converter.Convert(obj.Type()), nil
}

// ResolveHints implements Resolver
func (r *SourceResolver) ResolveHints(target any, includeExtras bool) (map[string]any, error) {
	obj, pkg, err := r.lookup(target)
	if err != nil {
		return nil, err
	}

	var hints map[string]any
	switch o := obj.(type) {
	case *types.Func:
		hints = r.signatureHints(o.Type().(*types.Signature))
	case *types.TypeName:
		hints = r.fieldHints(o, pkg, includeExtras)
	default:
		return nil, unsupported(obj)
	}

	if !includeExtras {
		for name, a := range hints {
			hints[name] = annotation.StripExtras(a)
		}
	}
	return hints, nil
}

// Parameters implements Resolver. Method signatures never include the
// receiver, so bound methods need no adjustment.
func (r *SourceResolver) Parameters(c Callable) ([]Parameter, error) {
	obj, _, err := r.lookup(c.Target)
	if err != nil {
		return nil, err
	}

	switch o := obj.(type) {
	case *types.Func:
		sig := o.Type().(*types.Signature)
		params := make([]Parameter, sig.Params().Len())
		for i := range params {
			params[i] = Parameter{
				Name:     paramName(sig.Params().At(i), i),
				Variadic: sig.Variadic() && i == len(params)-1,
			}
		}
		return params, nil
	case *types.TypeName:
		var params []Parameter
		for _, f := range structFields(o) {
			params = append(params, Parameter{Name: f.Name()})
		}
		return params, nil
	}
	return nil, unsupported(obj)
}

func (r *SourceResolver) signatureHints(sig *types.Signature) map[string]any {
	hints := make(map[string]any, sig.Params().Len()+1)
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		pt := p.Type()
		if sig.Variadic() && i == sig.Params().Len()-1 {
			if s, ok := pt.(*types.Slice); ok {
				pt = s.Elem()
			}
		}
		hints[paramName(p, i)] = r.converter.Convert(pt)
	}
	if ret := r.converter.ReturnOf(sig); ret != nil {
		hints[ReturnKey] = ret
	}
	return hints
}

func (r *SourceResolver) fieldHints(tn *types.TypeName, pkg *packages.Package, includeExtras bool) map[string]any {
	hints := make(map[string]any)
	var docs map[string]*ast.Field
	if includeExtras {
		docs = fieldDocs(pkg, tn.Name())
	}

	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		return hints
	}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Embedded() || !isExported(f.Name()) {
			continue
		}
		a := r.converter.Convert(f.Type())
		if includeExtras {
			var meta []any
			if field, ok := docs[f.Name()]; ok {
				for _, line := range parseAnnotations(field.Doc.Text()) {
					meta = append(meta, line)
				}
			}
			if tag := st.Tag(i); tag != "" {
				meta = append(meta, tag)
			}
			a = annotation.Annotated(a, meta...)
		}
		hints[f.Name()] = a
	}
	return hints
}

func structFields(tn *types.TypeName) []*types.Var {
	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		return nil
	}
	var fields []*types.Var
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Embedded() || !isExported(f.Name()) {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// fieldDocs maps the field names of the struct type named typeName to
// their syntax nodes.
func fieldDocs(pkg *packages.Package, typeName string) map[string]*ast.Field {
	docs := make(map[string]*ast.Field)
	for _, file := range pkg.Syntax {
		ast.Inspect(file, func(n ast.Node) bool {
			ts, ok := n.(*ast.TypeSpec)
			if !ok || ts.Name.Name != typeName {
				return true
			}
			if st, ok := ts.Type.(*ast.StructType); ok {
				for _, field := range st.Fields.List {
					for _, name := range field.Names {
						docs[name.Name] = field
					}
				}
			}
			return false
		})
	}
	return docs
}

func paramName(v *types.Var, i int) string {
	name := v.Name()
	if name == "" || name == "_" {
		return positionalName(i)
	}
	return name
}
