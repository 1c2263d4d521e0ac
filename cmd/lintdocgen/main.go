package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/Gijsreyn/bicep-local-docgen/internal/lintdocgen"
)

func main() {
	singlechecker.Main(lintdocgen.Analyzer)
}
