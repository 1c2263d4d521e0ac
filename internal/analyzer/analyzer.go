// Package analyzer parses Go source files and extracts annotated struct
// declarations, their members and enum const blocks into a docmodel.
package analyzer

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"github.com/Gijsreyn/bicep-local-docgen/internal/logger"
	"github.com/Gijsreyn/bicep-local-docgen/pkg/docmodel"
)

var log = logger.ForComponent("analyzer")

// Analyzer accumulates a model over a sequence of files. A fresh instance is
// used per run; the result is handed over by value and never mutated by the
// analyzer afterwards.
type Analyzer struct {
	fset   *token.FileSet
	result docmodel.AnalysisResult

	enumOrder  []string
	enumValues map[string][]string
	enumPos    map[string]token.Position
}

// New allocates an analyzer for one run.
func New() *Analyzer {
	return &Analyzer{
		fset:       token.NewFileSet(),
		enumValues: map[string][]string{},
		enumPos:    map[string]token.Position{},
	}
}

// AnalyzeFiles parses every file in order and returns the gathered result.
// A file that fails to parse is recorded as a diagnostic and skipped.
func AnalyzeFiles(paths []string) docmodel.AnalysisResult {
	a := New()
	for _, p := range paths {
		a.AnalyzeFile(p)
	}
	return a.Result()
}

// AnalyzeFile parses a single file into the accumulating model.
func (a *Analyzer) AnalyzeFile(path string) {
	file, err := parser.ParseFile(a.fset, path, nil, parser.ParseComments)
	if err != nil {
		log.Warn("skipping unparseable file", "path", path, "error", err)
		a.result.Diagnose(path, 0, "parse error: %v", err)
		return
	}
	a.analyzeFile(path, file)
}

// Result finalizes enum collection and returns the model.
func (a *Analyzer) Result() docmodel.AnalysisResult {
	for _, name := range a.enumOrder {
		pos := a.enumPos[name]
		a.result.Enums = append(a.result.Enums, &docmodel.EnumDecl{
			Name:   name,
			Values: a.enumValues[name],
			File:   pos.Filename,
			Line:   pos.Line,
		})
	}
	a.enumOrder = nil
	return a.result
}

func (a *Analyzer) analyzeFile(path string, file *ast.File) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		switch gen.Tok {
		case token.TYPE:
			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}
				doc := gen.Doc
				if ts.Doc != nil {
					doc = ts.Doc
				}
				a.processStruct(path, file.Name.Name, ts, st, doc)
			}
		case token.CONST:
			a.processConstBlock(gen)
		}
	}
}

func (a *Analyzer) processStruct(path, pkg string, ts *ast.TypeSpec, st *ast.StructType, doc *ast.CommentGroup) {
	pos := a.fset.Position(ts.Pos())
	d := &docmodel.Declaration{
		Name:    ts.Name.Name,
		Package: pkg,
		File:    path,
		Line:    pos.Line,
	}

	a.applyDirectives(d, doc, func(line int, format string, args ...any) {
		a.result.Diagnose(path, line, format, args...)
	})

	for _, fld := range st.Fields.List {
		if len(fld.Names) == 0 {
			d.BaseTypeNames = append(d.BaseTypeNames, embeddedBaseName(fld.Type))
			continue
		}
		for _, ident := range fld.Names {
			if !ident.IsExported() {
				continue
			}
			d.Members = append(d.Members, a.buildMember(ident.Name, fld))
		}
	}

	a.result.Declarations = append(a.result.Declarations, d)
	log.Debug("analyzed declaration", "name", d.Name, "resource", d.ResourceTypeName, "members", len(d.Members))
}

func (a *Analyzer) buildMember(name string, fld *ast.Field) *docmodel.Member {
	m := &docmodel.Member{
		Name:        name,
		Type:        types.ExprString(fld.Type),
		Ref:         refFromExpr(fld.Type),
		Description: fieldDescription(fld),
	}
	if fld.Tag != nil {
		if tagVal, err := strconv.Unquote(fld.Tag.Value); err == nil {
			applyFlagTag(m, lookupTag(tagVal, "docgen"))
		}
	}
	return m
}

// applyFlagTag sets the member flags from the docgen struct tag. Flag text
// is matched by substring containment, so any combination is additive and
// order-independent.
func applyFlagTag(m *docmodel.Member, tag string) {
	tag = strings.ToLower(tag)
	m.Required = strings.Contains(tag, "required")
	m.ReadOnly = strings.Contains(tag, "readonly")
	m.Identifier = strings.Contains(tag, "identifier")
}

func lookupTag(tagVal, key string) string {
	return reflect.StructTag(tagVal).Get(key)
}

// fieldDescription takes the field doc comment, falling back to the trailing
// line comment, and keeps the first paragraph.
func fieldDescription(fld *ast.Field) string {
	var text string
	if fld.Doc != nil {
		text = fld.Doc.Text()
	} else if fld.Comment != nil {
		text = fld.Comment.Text()
	}
	return firstParagraph(text)
}

func firstParagraph(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	para := strings.Split(text, "\n\n")[0]
	lines := strings.Split(para, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}

func (a *Analyzer) processConstBlock(gen *ast.GenDecl) {
	var current string
	for _, spec := range gen.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		switch {
		case vs.Type != nil:
			ident, ok := vs.Type.(*ast.Ident)
			if !ok {
				current = ""
				continue
			}
			current = ident.Name
		case len(vs.Values) > 0:
			// untyped const, ends any running enum group
			current = ""
		}
		if current == "" {
			continue
		}
		for i, name := range vs.Names {
			if name.Name == "_" {
				continue
			}
			a.addEnumValue(current, enumValue(current, name.Name, vs, i), a.fset.Position(name.Pos()))
		}
	}
}

// enumValue prefers the literal string value and falls back to the const
// name with the enum type prefix stripped.
func enumValue(typeName, constName string, vs *ast.ValueSpec, i int) string {
	if i < len(vs.Values) {
		if lit, ok := vs.Values[i].(*ast.BasicLit); ok && lit.Kind == token.STRING {
			if v, err := strconv.Unquote(lit.Value); err == nil {
				return v
			}
		}
	}
	return strings.TrimPrefix(constName, typeName)
}

func (a *Analyzer) addEnumValue(typeName, value string, pos token.Position) {
	if _, seen := a.enumValues[typeName]; !seen {
		a.enumOrder = append(a.enumOrder, typeName)
		a.enumPos[typeName] = pos
	}
	a.enumValues[typeName] = append(a.enumValues[typeName], value)
}

// embeddedBaseName yields the unqualified base type name of an embedded
// field, stripping pointers, package qualifiers and generic arguments.
func embeddedBaseName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	return docmodel.UnqualifyTypeName(types.ExprString(expr))
}
