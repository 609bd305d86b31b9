// Package codegen projects catalog schemas into DAX and TMDL text.
// Every function here is pure: identical input yields byte-identical output.
package codegen

import (
	"strings"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/models"
)

// MeasureText renders the schema's measures in catalog order. Each measure
// becomes a comment line with its description followed by "<name> = <expression>".
// Blocks are separated by a blank line. Expressions are emitted verbatim.
func MeasureText(schema models.Schema) string {
	measures := schema.SemanticModel.Measures
	blocks := make([]string, 0, len(measures))
	for _, m := range measures {
		blocks = append(blocks, "// "+m.Description+"\n"+m.Name+" = "+m.Expression)
	}
	return strings.Join(blocks, "\n\n")
}
