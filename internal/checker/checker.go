// Package checker re-runs the analysis pipeline and reports resource
// declarations that are missing required documentation metadata.
package checker

import (
	"fmt"
	"io"
	"sort"

	"github.com/Gijsreyn/bicep-local-docgen/internal/config"
	"github.com/Gijsreyn/bicep-local-docgen/internal/logger"
	"github.com/Gijsreyn/bicep-local-docgen/internal/pipeline"
	"github.com/Gijsreyn/bicep-local-docgen/pkg/docmodel"
)

var log = logger.ForComponent("checker")

// Error is one missing-metadata finding. Suggestion holds the exact
// directive line that would satisfy the failed check.
type Error struct {
	File        string
	Line        int
	Declaration string
	Message     string
	Suggestion  string
}

// Result aggregates the findings of one check run.
type Result struct {
	FilesChecked int
	Resources    int
	Errors       []Error
	Diagnostics  []docmodel.Diagnostic
}

// HasErrors reports whether any declaration failed a check; it drives the
// non-zero exit status.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// Run discovers and analyzes the source set and checks every
// resource-bearing declaration. Each check is independent; extended checks
// (front matter, custom sections) only run when requested.
func Run(opts config.Options) (Result, error) {
	files, err := pipeline.Discover(opts)
	if err != nil {
		return Result{}, err
	}
	model := pipeline.Analyze(files)

	res := Result{
		FilesChecked: len(files),
		Diagnostics:  model.Diagnostics,
	}
	for _, diag := range model.Diagnostics {
		log.Warn(diag.String())
	}

	for _, d := range model.Resources() {
		res.Resources++
		res.Errors = append(res.Errors, checkDeclaration(d, opts.Extended)...)
	}
	return res, nil
}

func checkDeclaration(d *docmodel.Declaration, extended bool) []Error {
	var errs []Error
	add := func(message, suggestion string) {
		errs = append(errs, Error{
			File:        d.File,
			Line:        d.Line,
			Declaration: d.Name,
			Message:     message,
			Suggestion:  suggestion,
		})
	}

	if d.Heading == nil {
		add("missing heading",
			fmt.Sprintf("//docgen:heading %q \"Describe the %s resource.\"", d.ResourceTypeName, d.ResourceTypeName))
	}
	if len(d.Examples) == 0 {
		add("missing example",
			fmt.Sprintf("//docgen:example \"Basic\" \"Creates a %s.\"", d.ResourceTypeName))
	}
	if extended {
		if len(d.FrontMatter) == 0 {
			add("missing front matter",
				fmt.Sprintf("//docgen:metadata \"title\" %q", d.ResourceTypeName))
		}
		if len(d.CustomSections) == 0 {
			add("missing custom section",
				"//docgen:section \"Notes\" \"Additional usage notes.\"")
		}
	}
	return errs
}

// Report writes the per-file error reports followed by a terminal summary.
func Report(w io.Writer, res Result) {
	byFile := map[string][]Error{}
	var files []string
	for _, e := range res.Errors {
		if _, seen := byFile[e.File]; !seen {
			files = append(files, e.File)
		}
		byFile[e.File] = append(byFile[e.File], e)
	}
	sort.Strings(files)

	for _, f := range files {
		fmt.Fprintf(w, "%s:\n", f)
		for _, e := range byFile[f] {
			fmt.Fprintf(w, "  %s:%d: %s: %s\n", e.Declaration, e.Line, e.Message, hint(e))
		}
		fmt.Fprintln(w)
	}

	if res.HasErrors() {
		fmt.Fprintf(w, "%d problem(s) across %d file(s), %d resource(s) checked\n",
			len(res.Errors), len(files), res.Resources)
		return
	}
	fmt.Fprintf(w, "all %d resource(s) documented, %d file(s) checked\n", res.Resources, res.FilesChecked)
}

func hint(e Error) string {
	if e.Suggestion == "" {
		return ""
	}
	return "add " + e.Suggestion
}
