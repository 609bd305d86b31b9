package codegen

import (
	"strings"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/models"
)

// TMDLHeader opens every generated document.
const TMDLHeader = `model ACC_Semantic_Model
    culture: en-US
    defaultPowerBIDataSourceVersion: powerBI_V3

    annotations:
        - name: Description
          value: Semantic model for Autodesk Construction Cloud data
`

// TMDLDocument renders the header once followed by a table block per table of
// each schema, in the given order. Repeated schemas produce repeated blocks.
func TMDLDocument(schemas []models.Schema) string {
	parts := []string{TMDLHeader}

	for _, schema := range schemas {
		for _, table := range schema.Tables {
			parts = append(parts,
				"\n    table "+table.Name,
				"        description: "+table.Description,
				"",
			)
			for _, col := range table.Columns {
				parts = append(parts,
					"        column "+col.Name,
					"            dataType: "+col.Type.Token(),
					"            description: "+col.Description,
					"",
				)
			}
		}
	}

	return strings.Join(parts, "\n")
}
