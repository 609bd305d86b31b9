// Package catalog holds the immutable ACC schema, template and platform
// catalogs. The data is embedded at build time and parsed once per process.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/models"
)

//go:embed data/*.yaml
var embeddedData embed.FS

const (
	schemasFile   = "data/schemas.yaml"
	templatesFile = "data/templates.yaml"
	platformsFile = "data/platforms.yaml"
	aiConfigFile  = "data/ai_config.yaml"
)

// Catalog is a read-only view over the loaded catalog data.
// There is no mutation API; accessors return deep copies, so callers may
// modify what they receive without affecting other readers.
type Catalog struct {
	schemaKeys   []string
	schemas      map[string]models.Schema
	templateKeys []string
	templates    map[string]models.Template
	platformKeys []string
	platforms    map[string]models.Platform
	aiConfig     models.AIConfigGuide
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog built from the embedded data.
// It panics if the embedded data is invalid, since that can only happen
// through a broken build.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(embeddedData)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded data is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses and validates the catalog documents found in fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	var schemaDoc struct {
		Schemas []models.Schema `yaml:"schemas"`
	}
	if err := readYAML(fsys, schemasFile, &schemaDoc); err != nil {
		return nil, err
	}

	var templateDoc struct {
		Templates []models.Template `yaml:"templates"`
	}
	if err := readYAML(fsys, templatesFile, &templateDoc); err != nil {
		return nil, err
	}

	var platformDoc struct {
		Platforms []models.Platform `yaml:"platforms"`
	}
	if err := readYAML(fsys, platformsFile, &platformDoc); err != nil {
		return nil, err
	}

	var aiConfig models.AIConfigGuide
	if err := readYAML(fsys, aiConfigFile, &aiConfig); err != nil {
		return nil, err
	}

	c := &Catalog{
		schemas:   make(map[string]models.Schema, len(schemaDoc.Schemas)),
		templates: make(map[string]models.Template, len(templateDoc.Templates)),
		platforms: make(map[string]models.Platform, len(platformDoc.Platforms)),
		aiConfig:  aiConfig,
	}

	for _, s := range schemaDoc.Schemas {
		if err := validateSchema(s); err != nil {
			return nil, err
		}
		if _, dup := c.schemas[s.Key]; dup {
			return nil, fmt.Errorf("duplicate schema key %q", s.Key)
		}
		c.schemas[s.Key] = s
		c.schemaKeys = append(c.schemaKeys, s.Key)
	}

	for _, t := range templateDoc.Templates {
		if t.Key == "" || t.Name == "" {
			return nil, fmt.Errorf("template %q: key and name are required", t.Key)
		}
		if !t.Complexity.IsValid() {
			return nil, fmt.Errorf("template %q: invalid complexity %q", t.Key, t.Complexity)
		}
		if _, dup := c.templates[t.Key]; dup {
			return nil, fmt.Errorf("duplicate template key %q", t.Key)
		}
		c.templates[t.Key] = t
		c.templateKeys = append(c.templateKeys, t.Key)
	}

	for _, p := range platformDoc.Platforms {
		if p.Key == "" || p.Name == "" {
			return nil, fmt.Errorf("platform %q: key and name are required", p.Key)
		}
		if !p.IntegrationLevel.IsValid() {
			return nil, fmt.Errorf("platform %q: invalid integration level %q", p.Key, p.IntegrationLevel)
		}
		if _, dup := c.platforms[p.Key]; dup {
			return nil, fmt.Errorf("duplicate platform key %q", p.Key)
		}
		c.platforms[p.Key] = p
		c.platformKeys = append(c.platformKeys, p.Key)
	}

	return c, nil
}

func readYAML(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func validateSchema(s models.Schema) error {
	if s.Key == "" || s.Name == "" {
		return fmt.Errorf("schema %q: key and name are required", s.Key)
	}

	tableNames := make(map[string]bool, len(s.Tables))
	for _, t := range s.Tables {
		if t.Name == "" {
			return fmt.Errorf("schema %q: table name is required", s.Key)
		}
		if tableNames[t.Name] {
			return fmt.Errorf("schema %q: duplicate table %q", s.Key, t.Name)
		}
		tableNames[t.Name] = true

		for _, col := range t.Columns {
			if col.Name == "" {
				return fmt.Errorf("schema %q table %q: column name is required", s.Key, t.Name)
			}
			if !col.Type.IsValid() {
				return fmt.Errorf("schema %q table %q column %q: invalid type %q", s.Key, t.Name, col.Name, col.Type)
			}
		}
	}

	for _, m := range s.SemanticModel.Measures {
		if m.Name == "" {
			return fmt.Errorf("schema %q: measure name is required", s.Key)
		}
	}
	return nil
}

// SchemaKeys returns the schema keys in catalog order.
func (c *Catalog) SchemaKeys() []string {
	return append([]string(nil), c.schemaKeys...)
}

// Schemas returns a fresh map of every schema keyed by catalog key.
func (c *Catalog) Schemas() map[string]models.Schema {
	out := make(map[string]models.Schema, len(c.schemas))
	for k, v := range c.schemas {
		out[k] = v.Clone()
	}
	return out
}

// Schema returns the schema for key.
func (c *Catalog) Schema(key string) (models.Schema, bool) {
	s, ok := c.schemas[key]
	if !ok {
		return models.Schema{}, false
	}
	return s.Clone(), true
}

// TemplateKeys returns the template keys in catalog order.
func (c *Catalog) TemplateKeys() []string {
	return append([]string(nil), c.templateKeys...)
}

// Templates returns a fresh map of every template keyed by catalog key.
func (c *Catalog) Templates() map[string]models.Template {
	out := make(map[string]models.Template, len(c.templates))
	for k, v := range c.templates {
		out[k] = v
	}
	return out
}

// PlatformKeys returns the platform keys in catalog order.
func (c *Catalog) PlatformKeys() []string {
	return append([]string(nil), c.platformKeys...)
}

// Platforms returns a fresh map of every platform keyed by catalog key.
func (c *Catalog) Platforms() map[string]models.Platform {
	out := make(map[string]models.Platform, len(c.platforms))
	for k, v := range c.platforms {
		out[k] = v.Clone()
	}
	return out
}

// AIConfig returns the static Azure OpenAI guidance.
func (c *Catalog) AIConfig() models.AIConfigGuide {
	return c.aiConfig.Clone()
}
