// Package generate scans Go packages for slicey directive comments and
// emits the requested type alias declarations into a generated file.
//
// A type opts in with one or both of the directives
//
//	//slicey:spanned
//	//slicey:sliced
//
// in the doc comment of its declaration. For a type Token they produce
//
//	type SpannedToken = slicey.Spanned[Token]
//	type SlicedToken = slicey.Sliced[Token]
package generate

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/swolfenden9/slicey/internal/version"
)

// DefaultOutFile is the name of the generated file written into each
// package directory.
const DefaultOutFile = "slicey__gen.go"

const (
	directiveSpanned = "//slicey:spanned"
	directiveSliced  = "//slicey:sliced"
)

// Alias describes the alias declarations requested for one type.
type Alias struct {
	TypeName string
	Spanned  bool
	Sliced   bool
}

// Package is the result of scanning one package directory: its package name
// and the aliases its types request, in source order.
type Package struct {
	Name    string
	Dir     string
	Aliases []Alias
}

// Run scans the Go package in dir and writes the generated alias file into
// it. It returns the path written, or the empty string when no type in the
// package requests an alias.
func Run(dir, outFile, sliceyImport string) (string, error) {
	pkg, err := ScanDir(dir, outFile)
	if err != nil {
		return "", err
	}
	return writePkg(pkg, outFile, sliceyImport)
}

// RunFile is like Run but scans a single Go source file, writing the
// generated alias file alongside it.
func RunFile(file, outFile, sliceyImport string) (string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", file, err)
	}
	aliases, err := scanFile(fset, f)
	if err != nil {
		return "", err
	}
	pkg := &Package{Name: f.Name.Name, Dir: filepath.Dir(file), Aliases: aliases}
	return writePkg(pkg, outFile, sliceyImport)
}

func writePkg(pkg *Package, outFile, sliceyImport string) (string, error) {
	if len(pkg.Aliases) == 0 {
		return "", nil
	}

	g := newGenerator(pkg, sliceyImport)

	// aliases generated inside the slicey module's own package refer to the
	// types unqualified
	if target, err := importPathOf(pkg.Dir); err != nil {
		return "", err
	} else if target == sliceyImport {
		g.qualifier = ""
	}

	code, err := g.generate()
	if err != nil {
		return "", err
	}

	dest := filepath.Join(pkg.Dir, outFile)
	if err := os.WriteFile(dest, code, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, nil
}

// ScanDir parses every Go source file in dir, skipping test files and the
// generated output file itself, and collects the aliases requested by
// directive comments.
func ScanDir(dir, outFile string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	fset := token.NewFileSet()
	pkg := &Package{Dir: dir}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") || name == outFile {
			continue
		}
		filename := filepath.Join(dir, name)
		f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filename, err)
		}
		if pkg.Name == "" {
			pkg.Name = f.Name.Name
		} else if pkg.Name != f.Name.Name {
			return nil, fmt.Errorf("%s: found packages %s and %s in %s", name, pkg.Name, f.Name.Name, dir)
		}
		aliases, err := scanFile(fset, f)
		if err != nil {
			return nil, err
		}
		pkg.Aliases = append(pkg.Aliases, aliases...)
	}

	if pkg.Name == "" {
		return nil, fmt.Errorf("no Go source files in %s", dir)
	}
	return pkg, nil
}

func scanFile(fset *token.FileSet, f *ast.File) ([]Alias, error) {
	var aliases []Alias
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			a := Alias{TypeName: ts.Name.Name}
			// for a grouped declaration the directive sits on the spec, for
			// a standalone one on the decl
			applyDirectives(gd.Doc, &a)
			applyDirectives(ts.Doc, &a)
			if !a.Spanned && !a.Sliced {
				continue
			}
			if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
				return nil, fmt.Errorf("%s: cannot generate aliases for generic type %s", fset.Position(ts.Pos()), ts.Name.Name)
			}
			aliases = append(aliases, a)
		}
	}
	return aliases, nil
}

func applyDirectives(doc *ast.CommentGroup, a *Alias) {
	if doc == nil {
		return
	}
	for _, c := range doc.List {
		switch strings.TrimSpace(c.Text) {
		case directiveSpanned:
			a.Spanned = true
		case directiveSliced:
			a.Sliced = true
		}
	}
}

// generator produces the contents of the generated alias file for one
// package.
type generator struct {
	pkg          *Package
	sliceyImport string

	// qualifier is the package qualifier prepended to Spanned/Sliced in the
	// emitted aliases. empty means the aliases are generated into the slicey
	// package itself.
	qualifier string

	bannerEnabled bool

	outb bytes.Buffer
}

func newGenerator(pkg *Package, sliceyImport string) *generator {
	return &generator{
		pkg:           pkg,
		sliceyImport:  sliceyImport,
		qualifier:     path.Base(sliceyImport),
		bannerEnabled: true,
	}
}

func (g *generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.outb, format, args...)
}

func (g *generator) generate() ([]byte, error) {
	if g.bannerEnabled {
		g.printf("// this file is mechanically generated, do not edit!\n")
		g.printf("// version: %s\n", version.String())
	}
	g.printf("package %s\n\n", g.pkg.Name)

	qual := ""
	if g.qualifier != "" {
		g.printf("import %q\n\n", g.sliceyImport)
		qual = g.qualifier + "."
	}

	for _, a := range g.pkg.Aliases {
		if a.Spanned {
			g.printf("type Spanned%s = %sSpanned[%s]\n", a.TypeName, qual, a.TypeName)
		}
		if a.Sliced {
			g.printf("type Sliced%s = %sSliced[%s]\n", a.TypeName, qual, a.TypeName)
		}
	}

	formatted, err := format.Source(g.outb.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gofmt the generated code: %w", err)
	}
	return formatted, nil
}
