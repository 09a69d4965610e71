package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Dep describes one dependency of the service.
type Dep struct {
	// Name is used for method naming (Inject<Name> / With<Name>).
	Name string `yaml:"name"`

	// Field is the unexported field on the service that receives the dependency.
	Field string `yaml:"field"`

	// Type is the Go type of the dependency as written in the service package.
	Type string `yaml:"type"`
}

// ImportSpec models one Go import: optional alias and full import path.
type ImportSpec struct {
	Alias string `yaml:"alias"`
	Path  string `yaml:"path"`
}

// Spec is the input schema consumed by the generator.
type Spec struct {
	Package     string       `yaml:"package"`
	FacadeName  string       `yaml:"facadeName"`
	ImplType    string       `yaml:"implType"`
	Constructor string       `yaml:"constructor"`
	Imports     []ImportSpec `yaml:"imports"`
	Required    []Dep        `yaml:"required"`
	Optional    []Dep        `yaml:"optional"`
}

type templateData struct {
	Spec       Spec
	StdImports []ImportSpec
	ExtImports []ImportSpec
}

// run executes the generator and returns an exit code.
func run(args []string, stderr io.Writer) int {
	flags := pflag.NewFlagSet("facadegen", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	specPath := flags.String("spec", "", "path to the *.inject.yaml spec")
	outPath := flags.String("out", "", "output .gen.go file path")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if strings.TrimSpace(*specPath) == "" || strings.TrimSpace(*outPath) == "" {
		_, _ = fmt.Fprintln(stderr, "usage: facadegen --spec <file.inject.yaml> --out <file.gen.go>")
		return 2
	}

	specBytes, err := os.ReadFile(*specPath)
	must(err)

	spec, err := parseSpec(specBytes)
	must(err)
	validateSpec(&spec)

	generatedFilePath := filepath.Clean(*outPath)
	must(checkConstructor(filepath.Dir(generatedFilePath), spec.Constructor))

	src, err := render(spec)
	must(err)

	must(writeFileAtomic(generatedFilePath, src, 0o644))
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// parseSpec decodes a spec. Unknown keys are rejected.
func parseSpec(b []byte) (Spec, error) {
	var spec Spec
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return Spec{}, fmt.Errorf("facadegen: decode spec: %w", err)
	}
	return spec, nil
}

// validateSpec panics when the spec cannot produce a valid builder.
func validateSpec(spec *Spec) {
	var missingFields []string

	requireNonEmpty := func(fieldName, value string) {
		if strings.TrimSpace(value) == "" {
			missingFields = append(missingFields, fieldName)
		}
	}

	requireNonEmpty("package", spec.Package)
	requireNonEmpty("facadeName", spec.FacadeName)
	requireNonEmpty("implType", spec.ImplType)
	requireNonEmpty("constructor", spec.Constructor)

	if len(spec.Required) == 0 {
		missingFields = append(missingFields, "required (must have at least 1)")
	}

	if len(missingFields) > 0 {
		panic(fmt.Errorf("spec missing required fields: %v", missingFields))
	}

	totalDeps := len(spec.Required) + len(spec.Optional)
	seenNames := make(map[string]struct{}, totalDeps)
	seenFields := make(map[string]struct{}, totalDeps)

	validateDep := func(dep Dep) {
		if dep.Name == "" || dep.Field == "" || dep.Type == "" {
			panic(fmt.Errorf("each dep must have name/field/type; got: %+v", dep))
		}
		if !token.IsIdentifier(dep.Name) || !token.IsIdentifier(dep.Field) {
			panic(fmt.Errorf("dep name and field must be Go identifiers; got: %+v", dep))
		}
		if _, ok := seenNames[dep.Name]; ok {
			panic(fmt.Errorf("duplicate dep name: %s", dep.Name))
		}
		if _, ok := seenFields[dep.Field]; ok {
			panic(fmt.Errorf("duplicate dep field: %s", dep.Field))
		}
		seenNames[dep.Name] = struct{}{}
		seenFields[dep.Field] = struct{}{}
	}

	for _, dep := range spec.Required {
		validateDep(dep)
	}
	for _, dep := range spec.Optional {
		validateDep(dep)
	}

	for _, imp := range spec.Imports {
		if strings.TrimSpace(imp.Path) == "" {
			panic(fmt.Errorf("import without path: %+v", imp))
		}
	}
}

// checkConstructor makes sure the constructor in sourceDir takes no
// arguments. A directory without Go sources is not checked.
func checkConstructor(sourceDir, constructor string) error {
	dirEntries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil
	}

	fileSet := token.NewFileSet()
	parsedAny := false

	for _, entry := range dirEntries {
		fileName := entry.Name()
		if entry.IsDir() ||
			!strings.HasSuffix(fileName, ".go") ||
			strings.HasSuffix(fileName, "_test.go") ||
			strings.HasSuffix(fileName, ".gen.go") {
			continue
		}

		parsedFile, _ := parser.ParseFile(fileSet, filepath.Join(sourceDir, fileName), nil, parser.AllErrors)
		if parsedFile == nil {
			continue
		}
		parsedAny = true

		for _, declaration := range parsedFile.Decls {
			funcDecl, ok := declaration.(*ast.FuncDecl)
			if !ok || funcDecl.Recv != nil || funcDecl.Name.Name != constructor {
				continue
			}
			if params := funcDecl.Type.Params; params != nil && len(params.List) > 0 {
				return fmt.Errorf("constructor %q must take no arguments", constructor)
			}
			return nil
		}
	}

	if parsedAny {
		return fmt.Errorf("constructor %q not found in %s", constructor, sourceDir)
	}
	return nil
}

// resolveImports returns the spec's imports plus fmt, de-duplicated by path
// and split into standard library and other groups, each sorted.
func resolveImports(spec *Spec) (std, ext []ImportSpec) {
	seen := map[string]struct{}{}
	all := append([]ImportSpec{{Path: "fmt"}}, spec.Imports...)
	for _, imp := range all {
		imp.Path = strings.TrimSpace(imp.Path)
		if _, dup := seen[imp.Path]; dup {
			continue
		}
		seen[imp.Path] = struct{}{}
		if isStdlib(imp.Path) {
			std = append(std, imp)
		} else {
			ext = append(ext, imp)
		}
	}
	byPath := func(list []ImportSpec) func(i, j int) bool {
		return func(i, j int) bool { return list[i].Path < list[j].Path }
	}
	sort.Slice(std, byPath(std))
	sort.Slice(ext, byPath(ext))
	return std, ext
}

// isStdlib reports whether the first path element has no dot.
func isStdlib(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}

// render executes the template and gofmts the result.
func render(spec Spec) ([]byte, error) {
	std, ext := resolveImports(&spec)
	var out bytes.Buffer
	if err := genTemplate.Execute(&out, templateData{Spec: spec, StdImports: std, ExtImports: ext}); err != nil {
		return nil, err
	}
	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("facadegen: format generated code: %w", err)
	}
	return src, nil
}

var genTemplate = template.Must(
	template.New("facadegen").Parse(`// Code generated by facadegen; DO NOT EDIT.

package {{.Spec.Package}}

import (
{{- range .StdImports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
{{- if .ExtImports}}
{{range .ExtImports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
{{- end}}
)

// {{.Spec.FacadeName}} wires {{.Spec.ImplType}} and refuses to build until every required dependency is injected.
type {{.Spec.FacadeName}} struct {
	svc *{{.Spec.ImplType}}
{{- range .Spec.Required}}
	has{{.Name}} bool
{{- end}}
}

// New{{.Spec.FacadeName}} constructs the underlying {{.Spec.ImplType}} with {{.Spec.Constructor}}.
func New{{.Spec.FacadeName}}() *{{.Spec.FacadeName}} {
	return &{{.Spec.FacadeName}}{svc: {{.Spec.Constructor}}()}
}
{{range .Spec.Required}}
// Inject{{.Name}} sets the required {{.Name}} dependency.
func (b *{{$.Spec.FacadeName}}) Inject{{.Name}}(dep {{.Type}}) *{{$.Spec.FacadeName}} {
	b.svc.{{.Field}} = dep
	b.has{{.Name}} = true
	return b
}
{{end}}
{{- range .Spec.Optional}}
// With{{.Name}} sets the optional {{.Name}} dependency.
func (b *{{$.Spec.FacadeName}}) With{{.Name}}(dep {{.Type}}) *{{$.Spec.FacadeName}} {
	b.svc.{{.Field}} = dep
	return b
}
{{end}}
// Inject runs fn against the underlying {{.Spec.ImplType}} for custom wiring.
func (b *{{.Spec.FacadeName}}) Inject(fn func(*{{.Spec.ImplType}})) *{{.Spec.FacadeName}} {
	if fn != nil {
		fn(b.svc)
	}
	return b
}

// Build returns the wired {{.Spec.ImplType}} or an error naming the first missing dependency.
func (b *{{.Spec.FacadeName}}) Build() (*{{.Spec.ImplType}}, error) {
{{- range .Spec.Required}}
	if !b.has{{.Name}} {
		return nil, fmt.Errorf("{{$.Spec.FacadeName}} not wired: missing required dep {{.Name}}")
	}
{{- end}}
	return b.svc, nil
}

// MustBuild is Build that panics on incomplete wiring.
func (b *{{.Spec.FacadeName}}) MustBuild() *{{.Spec.ImplType}} {
	svc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return svc
}
`),
)

type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes to a temporary file next to targetPath and renames
// it into place, so readers never observe partial writes.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	tmpFile, err := createTempFile(filepath.Dir(targetPath), filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	return renameFile(tmpPath, targetPath)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
