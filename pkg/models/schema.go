package models

import (
	"slices"
	"strings"
)

// ColumnType is the logical data type of an ACC column.
type ColumnType string

const (
	ColumnTypeString    ColumnType = "STRING"
	ColumnTypeDate      ColumnType = "DATE"
	ColumnTypeDecimal   ColumnType = "DECIMAL"
	ColumnTypeInteger   ColumnType = "INTEGER"
	ColumnTypeTimestamp ColumnType = "TIMESTAMP"
	ColumnTypeBigInt    ColumnType = "BIGINT"
)

// IsValid returns true if the column type is a known type.
func (t ColumnType) IsValid() bool {
	switch t {
	case ColumnTypeString, ColumnTypeDate, ColumnTypeDecimal,
		ColumnTypeInteger, ColumnTypeTimestamp, ColumnTypeBigInt:
		return true
	default:
		return false
	}
}

// Token returns the lower-cased form used in TMDL dataType lines.
func (t ColumnType) Token() string {
	return strings.ToLower(string(t))
}

// Column describes a single column of an ACC table.
type Column struct {
	Name        string     `json:"name" yaml:"name"`
	Type        ColumnType `json:"type" yaml:"type"`
	Description string     `json:"description" yaml:"description"`
}

// Table describes a dimension or fact table. Name is unique within its schema.
type Table struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Columns     []Column `json:"columns" yaml:"columns"`
}

// Measure is a named DAX expression. Expression is opaque text and is never
// parsed or evaluated.
type Measure struct {
	Name        string `json:"name" yaml:"name"`
	Expression  string `json:"expression" yaml:"expression"`
	Description string `json:"description" yaml:"description"`
}

// Hierarchy is a drill-down path. Levels are ordered coarse to fine.
type Hierarchy struct {
	Name   string   `json:"name" yaml:"name"`
	Levels []string `json:"levels" yaml:"levels"`
}

// SemanticModel holds the measures and hierarchies defined over a schema's tables.
type SemanticModel struct {
	Measures    []Measure   `json:"measures" yaml:"measures"`
	Hierarchies []Hierarchy `json:"hierarchies" yaml:"hierarchies"`
}

// Schema is one ACC data domain (projects, issues, cost, documents, schedule).
type Schema struct {
	Key           string        `json:"key" yaml:"key"`
	Name          string        `json:"name" yaml:"name"`
	Description   string        `json:"description" yaml:"description"`
	Tables        []Table       `json:"tables" yaml:"tables"`
	SemanticModel SemanticModel `json:"semantic_model" yaml:"semantic_model"`
}

// Clone returns a deep copy of the schema.
func (s Schema) Clone() Schema {
	out := s
	out.Tables = slices.Clone(s.Tables)
	for i := range out.Tables {
		out.Tables[i].Columns = slices.Clone(out.Tables[i].Columns)
	}
	out.SemanticModel.Measures = slices.Clone(s.SemanticModel.Measures)
	out.SemanticModel.Hierarchies = slices.Clone(s.SemanticModel.Hierarchies)
	for i := range out.SemanticModel.Hierarchies {
		out.SemanticModel.Hierarchies[i].Levels = slices.Clone(out.SemanticModel.Hierarchies[i].Levels)
	}
	return out
}
