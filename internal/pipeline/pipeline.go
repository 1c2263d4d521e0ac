// Package pipeline wires discovery, analysis, resolution and rendering into
// the generate run, and exposes the shared discovery/analysis phases to the
// checker.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Gijsreyn/bicep-local-docgen/internal/analyzer"
	"github.com/Gijsreyn/bicep-local-docgen/internal/config"
	"github.com/Gijsreyn/bicep-local-docgen/internal/ignore"
	"github.com/Gijsreyn/bicep-local-docgen/internal/logger"
	"github.com/Gijsreyn/bicep-local-docgen/internal/renderer"
	"github.com/Gijsreyn/bicep-local-docgen/internal/resolver"
	"github.com/Gijsreyn/bicep-local-docgen/pkg/docmodel"
)

var log = logger.ForComponent("pipeline")

// Summary aggregates the outcome of one generate run.
type Summary struct {
	FilesScanned int
	Rendered     []string
	Skipped      []string
	Failed       []string
	Diagnostics  []docmodel.Diagnostic
}

// Err returns a non-nil error when any declaration failed to render or
// write, driving the process exit status.
func (s Summary) Err() error {
	if len(s.Failed) > 0 {
		return fmt.Errorf("%d document(s) failed", len(s.Failed))
	}
	return nil
}

// Discover walks the source directories and returns the candidate files in
// walk order, filtered through the ignore matcher and the file patterns.
func Discover(opts config.Options) ([]string, error) {
	matcher, err := ignore.NewMatcher(opts.SourceDirs[0], opts.IgnoreFile)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, dir := range opts.SourceDirs {
		err := filepath.WalkDir(dir, func(path string, de os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if de.IsDir() {
				if path != dir && matcher.IsIgnored(path) {
					log.Debug("ignoring directory", "path", path)
					return filepath.SkipDir
				}
				return nil
			}
			if matcher.IsIgnored(path) || !matchesAny(opts.FilePatterns, de.Name()) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}
	return files, nil
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Analyze runs the per-file analysis followed by the whole-model resolution
// passes and returns the finished model.
func Analyze(paths []string) docmodel.AnalysisResult {
	result := analyzer.AnalyzeFiles(paths)
	resolver.Resolve(&result)
	return result
}

// Generate runs the full pipeline and writes one Markdown document per
// resource-bearing declaration into the output directory. Existing files
// are only overwritten with Force; a render failure is fatal for that
// declaration only.
func Generate(opts config.Options) (Summary, error) {
	files, err := Discover(opts)
	if err != nil {
		return Summary{}, err
	}
	result := Analyze(files)

	sum := Summary{FilesScanned: len(files), Diagnostics: result.Diagnostics}
	for _, diag := range result.Diagnostics {
		log.Warn(diag.String())
	}

	resources := result.Resources()
	if len(resources) == 0 {
		log.Info("no resource-bearing declarations found", "files", len(files))
		return sum, nil
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return sum, fmt.Errorf("create output directory: %w", err)
	}

	rend := renderer.New(&result)
	for _, d := range resources {
		doc, err := rend.Render(d)
		if err != nil {
			log.Error("render failed", "declaration", d.Name, "error", err)
			sum.Failed = append(sum.Failed, d.Name)
			continue
		}

		out := filepath.Join(opts.OutputDir, renderer.FileName(d))
		if _, err := os.Stat(out); err == nil && !opts.Force {
			log.Warn("output exists, skipping (use --force to overwrite)", "path", out)
			sum.Skipped = append(sum.Skipped, out)
			continue
		}
		if err := os.WriteFile(out, []byte(doc), 0o644); err != nil { // #nosec G306
			log.Error("write failed", "path", out, "error", err)
			sum.Failed = append(sum.Failed, d.Name)
			continue
		}
		log.Info("wrote document", "resource", d.ResourceTypeName, "path", out)
		sum.Rendered = append(sum.Rendered, out)
	}
	return sum, nil
}
