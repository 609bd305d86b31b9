package prompts

import (
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/models"
)

// tablePrefixes are the star-schema role prefixes stripped when naming entities.
var tablePrefixes = []string{"dim_", "fact_"}

// EntityName derives a business entity name from a table name.
// Examples: "dim_project" -> "Project", "fact_change_orders" -> "Change Order".
func EntityName(tableName string) string {
	name := tableName
	for _, prefix := range tablePrefixes {
		if strings.HasPrefix(name, prefix) {
			name = strings.TrimPrefix(name, prefix)
			break
		}
	}

	words := strings.Split(name, "_")
	if len(words) > 0 {
		words[len(words)-1] = inflection.Singular(words[len(words)-1])
	}
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// TableRole returns "dimension" or "fact" from the table's naming convention.
func TableRole(tableName string) string {
	switch {
	case strings.HasPrefix(tableName, "dim_"):
		return "dimension"
	case strings.HasPrefix(tableName, "fact_"):
		return "fact"
	default:
		return "table"
	}
}

// BuildSemanticModelContext describes the selected schemas as plain text,
// suitable for the semantic_model_schema argument of an NL-to-DAX prompt.
func BuildSemanticModelContext(schemas []models.Schema) string {
	var b strings.Builder

	b.WriteString("# ACC Semantic Model\n")

	for _, schema := range schemas {
		b.WriteString(fmt.Sprintf("\n## %s\n", schema.Name))
		if schema.Description != "" {
			b.WriteString(schema.Description + "\n")
		}

		for _, table := range schema.Tables {
			b.WriteString(fmt.Sprintf("\n### %s (%s, entity: %s)\n",
				table.Name, TableRole(table.Name), EntityName(table.Name)))
			if table.Description != "" {
				b.WriteString(table.Description + "\n")
			}
			for _, col := range table.Columns {
				b.WriteString(fmt.Sprintf("- %s %s: %s\n", col.Name, col.Type, col.Description))
			}
		}

		if len(schema.SemanticModel.Measures) > 0 {
			b.WriteString("\nMeasures:\n")
			for _, m := range schema.SemanticModel.Measures {
				b.WriteString(fmt.Sprintf("- [%s] = %s -- %s\n", m.Name, m.Expression, m.Description))
			}
		}

		if len(schema.SemanticModel.Hierarchies) > 0 {
			b.WriteString("\nHierarchies:\n")
			for _, h := range schema.SemanticModel.Hierarchies {
				b.WriteString(fmt.Sprintf("- %s: %s\n", h.Name, strings.Join(h.Levels, " > ")))
			}
		}
	}

	return b.String()
}

// BuildNLToDAXSystemPrompt wraps a semantic model context in the system prompt
// used to translate natural language questions into DAX.
func BuildNLToDAXSystemPrompt(semanticModelContext string) string {
	var b strings.Builder

	b.WriteString("You are a DAX query expert for Microsoft Fabric.\n")
	b.WriteString("Given the following semantic model schema:\n")
	b.WriteString(semanticModelContext)
	b.WriteString("\nConvert user questions to valid DAX queries.\n")
	b.WriteString("Return only the DAX code, no explanations.")

	return b.String()
}
