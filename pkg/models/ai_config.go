package models

import "slices"

// AIConfigGuide is the static Azure OpenAI setup guidance served to the wizard.
type AIConfigGuide struct {
	SetupSteps     []SetupStep      `json:"setup_steps" yaml:"setup_steps"`
	ExamplePrompts []PromptCategory `json:"example_prompts" yaml:"example_prompts"`
}

// Clone returns a deep copy of the guide.
func (g AIConfigGuide) Clone() AIConfigGuide {
	out := g
	out.SetupSteps = slices.Clone(g.SetupSteps)
	out.ExamplePrompts = slices.Clone(g.ExamplePrompts)
	for i := range out.ExamplePrompts {
		out.ExamplePrompts[i].Questions = slices.Clone(out.ExamplePrompts[i].Questions)
	}
	return out
}

// SetupStep is one numbered step of the guide, with an optional code sample.
type SetupStep struct {
	Step        int    `json:"step" yaml:"step"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Code        string `json:"code,omitempty" yaml:"code"`
}

// PromptCategory groups example natural language questions.
type PromptCategory struct {
	Category  string   `json:"category" yaml:"category"`
	Questions []string `json:"questions" yaml:"questions"`
}
