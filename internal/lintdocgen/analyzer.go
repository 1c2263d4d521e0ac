// Package lintdocgen provides a linter for docgen annotations: struct tag
// flags and doc-comment directives.
package lintdocgen

import (
	"go/ast"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer is the docgen annotation linter.
var Analyzer = &analysis.Analyzer{
	Name: "lintdocgen",
	Doc:  "checks docgen struct tags and doc-comment directives for correct format",
	Run:  run,
}

var knownFlags = map[string]bool{
	"required":   true,
	"readonly":   true,
	"identifier": true,
}

var knownDirectives = map[string]bool{
	"resource": true,
	"metadata": true,
	"heading":  true,
	"example":  true,
	"section":  true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		checkStructTags(file, pass)
		checkDirectives(file, pass)
	}
	return nil, nil
}

func checkStructTags(file *ast.File, pass *analysis.Pass) {
	ast.Inspect(file, func(n ast.Node) bool {
		ts, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}
		st, ok := ts.Type.(*ast.StructType)
		if !ok {
			return true
		}
		for _, fld := range st.Fields.List {
			if fld.Tag == nil {
				continue
			}
			tagVal, err := strconv.Unquote(fld.Tag.Value)
			if err != nil {
				continue
			}
			validateFlagTag(reflect.StructTag(tagVal).Get("docgen"), fld, pass)
		}
		return false
	})
}

func validateFlagTag(tag string, fld *ast.Field, pass *analysis.Pass) {
	if tag == "" {
		return
	}
	for _, item := range strings.Split(tag, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !knownFlags[strings.ToLower(item)] {
			pass.Reportf(fld.Tag.Pos(), "unknown docgen flag %q: expect a comma-separated subset of required, readonly, identifier", item)
		}
	}
}

func checkDirectives(file *ast.File, pass *analysis.Pass) {
	for _, group := range file.Comments {
		for _, c := range group.List {
			line := strings.TrimPrefix(c.Text, "//")
			trimmed := strings.TrimSpace(line)
			rest, ok := strings.CutPrefix(trimmed, "docgen:")
			if !ok {
				continue
			}
			name, args, _ := strings.Cut(rest, " ")
			validateDirective(name, strings.TrimSpace(args), c, pass)
		}
	}
}

func validateDirective(name, args string, c *ast.Comment, pass *analysis.Pass) {
	if !knownDirectives[name] {
		pass.Reportf(c.Pos(), "unknown docgen directive %q", name)
		return
	}
	switch name {
	case "resource":
		if args == "" {
			pass.Reportf(c.Pos(), "docgen:resource needs a resource type name")
		}
	case "heading", "section":
		if args == "" {
			pass.Reportf(c.Pos(), "docgen:%s needs a quoted title", name)
		}
	case "metadata":
		if countArgs(args) < 2 {
			pass.Reportf(c.Pos(), "docgen:metadata needs a key and a value")
		}
	}
}

// countArgs counts directive arguments, treating a double-quoted run as one
// argument.
func countArgs(s string) int {
	n := 0
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			break
		}
		n++
		if s[i] == '"' {
			i++
			for i < len(s) && s[i] != '"' {
				if s[i] == '\\' {
					i++
				}
				i++
			}
			i++
			continue
		}
		for i < len(s) && s[i] != ' ' && s[i] != '\t' {
			i++
		}
	}
	return n
}
