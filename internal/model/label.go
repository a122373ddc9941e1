package model

// Label is identified by name in a single namespace shared across all
// tasks. Labels are created implicitly the first time a new name is
// attached to a task; an existing name keeps its original color.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LabelColors are the eight allowed swatch values.
var LabelColors = []string{"red", "orange", "yellow", "green", "blue", "purple", "pink", "gray"}

// ValidLabelColor reports whether color is one of the allowed swatches.
func ValidLabelColor(color string) bool {
	for _, c := range LabelColors {
		if c == color {
			return true
		}
	}
	return false
}
