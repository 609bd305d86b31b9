package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/apperrors"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/catalog"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/models"
)

// CatalogService provides read-only lookups over the schema, template and
// platform catalogs.
type CatalogService interface {
	// ListSchemas returns every schema keyed by catalog key.
	ListSchemas(ctx context.Context) map[string]models.Schema

	// SchemaKeys returns schema keys in catalog order.
	SchemaKeys(ctx context.Context) []string

	// GetSchema returns a single schema. Returns apperrors.ErrNotFound for unknown keys.
	GetSchema(ctx context.Context, key string) (models.Schema, error)

	// ListTemplates returns every Fabric template keyed by catalog key.
	ListTemplates(ctx context.Context) map[string]models.Template

	// TemplateKeys returns template keys in catalog order.
	TemplateKeys(ctx context.Context) []string

	// ListPlatforms returns every AI platform keyed by catalog key.
	ListPlatforms(ctx context.Context) map[string]models.Platform

	// PlatformKeys returns platform keys in catalog order.
	PlatformKeys(ctx context.Context) []string

	// GetAIConfigGuide returns the static Azure OpenAI guidance.
	GetAIConfigGuide(ctx context.Context) models.AIConfigGuide
}

type catalogService struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewCatalogService creates a catalog service over the given catalog.
func NewCatalogService(c *catalog.Catalog, logger *zap.Logger) CatalogService {
	return &catalogService{
		catalog: c,
		logger:  logger,
	}
}

var _ CatalogService = (*catalogService)(nil)

func (s *catalogService) ListSchemas(ctx context.Context) map[string]models.Schema {
	return s.catalog.Schemas()
}

func (s *catalogService) SchemaKeys(ctx context.Context) []string {
	return s.catalog.SchemaKeys()
}

func (s *catalogService) GetSchema(ctx context.Context, key string) (models.Schema, error) {
	schema, ok := s.catalog.Schema(key)
	if !ok {
		return models.Schema{}, fmt.Errorf("schema %q: %w", key, apperrors.ErrNotFound)
	}
	return schema, nil
}

func (s *catalogService) ListTemplates(ctx context.Context) map[string]models.Template {
	return s.catalog.Templates()
}

func (s *catalogService) TemplateKeys(ctx context.Context) []string {
	return s.catalog.TemplateKeys()
}

func (s *catalogService) ListPlatforms(ctx context.Context) map[string]models.Platform {
	return s.catalog.Platforms()
}

func (s *catalogService) PlatformKeys(ctx context.Context) []string {
	return s.catalog.PlatformKeys()
}

func (s *catalogService) GetAIConfigGuide(ctx context.Context) models.AIConfigGuide {
	return s.catalog.AIConfig()
}
