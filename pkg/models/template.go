package models

// Complexity is the effort tier of a semantic model template.
type Complexity string

const (
	ComplexityLow    Complexity = "Low"
	ComplexityMedium Complexity = "Medium"
	ComplexityHigh   Complexity = "High"
)

// IsValid returns true if the complexity is a known tier.
func (c Complexity) IsValid() bool {
	switch c {
	case ComplexityLow, ComplexityMedium, ComplexityHigh:
		return true
	default:
		return false
	}
}

// Template describes a Fabric semantic model template.
type Template struct {
	Key         string     `json:"key" yaml:"key"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Complexity  Complexity `json:"complexity" yaml:"complexity"`
	UseCase     string     `json:"use_case" yaml:"use_case"`
}
