// Package resolver performs the whole-model passes that run after analysis:
// merging embedded base members into derived declarations and attaching enum
// value lists to the members that reference them. Both passes only augment
// the model, they never remove anything.
package resolver

import (
	"github.com/Gijsreyn/bicep-local-docgen/pkg/docmodel"
)

// Resolve runs inheritance resolution followed by enum mapping.
func Resolve(r *docmodel.AnalysisResult) {
	resolveInheritance(r)
	mapEnums(r)
}

// resolveInheritance copies base members into derived declarations. Bases
// are visited before their dependents (topological order over base-type
// edges), so inheritance propagates through chains of any depth regardless
// of discovery order. A member already defined on the derived declaration
// always wins over an inherited one of the same name.
func resolveInheritance(r *docmodel.AnalysisResult) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := map[string]int{}

	var visit func(d *docmodel.Declaration)
	visit = func(d *docmodel.Declaration) {
		if state[d.Name] != unvisited {
			return
		}
		state[d.Name] = visiting
		for _, baseName := range d.BaseTypeNames {
			base := r.Declaration(baseName)
			if base == nil {
				r.Diagnose(d.File, d.Line, "base type %s of %s not found", baseName, d.Name)
				continue
			}
			if state[base.Name] == visiting {
				r.Diagnose(d.File, d.Line, "inheritance cycle through %s", base.Name)
				continue
			}
			visit(base)
			mergeMembers(d, base)
		}
		state[d.Name] = done
	}

	for _, d := range r.Declarations {
		visit(d)
	}
}

// mergeMembers appends deep copies of base members not already present on
// the derived declaration. Copies are independent so that later passes can
// re-target one side without affecting the other.
func mergeMembers(derived, base *docmodel.Declaration) {
	for _, bm := range base.Members {
		if derived.Member(bm.Name) != nil {
			continue
		}
		derived.Members = append(derived.Members, bm.Clone())
	}
}

// mapEnums marks every member whose type reference resolves to a known enum
// and replaces its value list wholesale with the enum's values. Only bare
// and nullable identifier references are eligible.
func mapEnums(r *docmodel.AnalysisResult) {
	for _, e := range r.Enums {
		for _, d := range r.Declarations {
			for _, m := range d.Members {
				if !m.Ref.ReferencesIdentifier() || m.Ref.Named() != e.Name {
					continue
				}
				m.IsEnum = true
				m.EnumValues = append([]string(nil), e.Values...)
			}
		}
	}
}
