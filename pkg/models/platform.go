package models

import "slices"

// IntegrationLevel describes how tightly an AI platform integrates with Fabric.
type IntegrationLevel string

const (
	IntegrationNative  IntegrationLevel = "Native"
	IntegrationBuiltIn IntegrationLevel = "Built-in"
)

// IsValid returns true if the integration level is known.
func (l IntegrationLevel) IsValid() bool {
	switch l {
	case IntegrationNative, IntegrationBuiltIn:
		return true
	default:
		return false
	}
}

// Platform is one entry of the AI platform comparison.
type Platform struct {
	Key              string           `json:"key" yaml:"key"`
	Name             string           `json:"name" yaml:"name"`
	Description      string           `json:"description" yaml:"description"`
	Pros             []string         `json:"pros" yaml:"pros"`
	Cons             []string         `json:"cons" yaml:"cons"`
	BestFor          string           `json:"best_for" yaml:"best_for"`
	IntegrationLevel IntegrationLevel `json:"integration_level" yaml:"integration_level"`
}

// Clone returns a copy of the platform that shares no slices with p.
func (p Platform) Clone() Platform {
	out := p
	out.Pros = slices.Clone(p.Pros)
	out.Cons = slices.Clone(p.Cons)
	return out
}
