package analyzer

import (
	"go/ast"
	"go/types"

	"github.com/Gijsreyn/bicep-local-docgen/pkg/docmodel"
)

// refFromExpr resolves a field type expression into the tagged TypeRef
// variant once, so later phases never re-parse raw type text.
func refFromExpr(expr ast.Expr) docmodel.TypeRef {
	switch t := expr.(type) {
	case *ast.StarExpr:
		elem := refFromExpr(t.X)
		return docmodel.TypeRef{Kind: docmodel.KindNullable, Elem: &elem}
	case *ast.ArrayType:
		elem := refFromExpr(t.Elt)
		return docmodel.TypeRef{Kind: docmodel.KindCollection, Elem: &elem}
	case *ast.MapType:
		elem := refFromExpr(t.Value)
		return docmodel.TypeRef{Kind: docmodel.KindCollection, Elem: &elem}
	case *ast.Ident:
		if docmodel.IsPrimitiveName(t.Name) {
			return docmodel.TypeRef{Kind: docmodel.KindPrimitive, Name: t.Name}
		}
		return docmodel.TypeRef{Kind: docmodel.KindReference, Name: t.Name}
	case *ast.SelectorExpr:
		return docmodel.TypeRef{Kind: docmodel.KindReference, Name: t.Sel.Name}
	case *ast.IndexExpr:
		return refFromExpr(t.X)
	case *ast.IndexListExpr:
		return refFromExpr(t.X)
	case *ast.ParenExpr:
		return refFromExpr(t.X)
	}
	// interfaces, funcs, channels and anonymous structs all document as an
	// opaque reference
	return docmodel.TypeRef{Kind: docmodel.KindReference, Name: docmodel.UnqualifyTypeName(types.ExprString(expr))}
}
