package a

//docgen:resource Widget
//docgen:heading "Widget" "Manages widgets."
//docgen:metadata "title" "Widget"
type Widget struct {
	Name string `docgen:"required,identifier"`
	Size int    `docgen:"readonly"`

	Bad   string `docgen:"mandatory"`       // want "unknown docgen flag"
	Mixed string `docgen:"required,hidden"` // want "unknown docgen flag"
}

type Plain struct {
	Field string `json:"field"`
}

type Spaced struct {
	Ok string `docgen:" required , readonly "`
}
