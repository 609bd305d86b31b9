package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/apperrors"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/catalog"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/codegen"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/logging"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/models"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/prompts"
)

// TMDLResult is the generated document plus the requested keys that were not
// found in the catalog and therefore contributed nothing.
type TMDLResult struct {
	TMDL    string
	Skipped []string
}

// ModelContextResult is the semantic model description for the selected
// schemas together with the NL-to-DAX system prompt that embeds it.
type ModelContextResult struct {
	Context      string
	SystemPrompt string
}

// CodegenService generates text artifacts from the schema catalog.
//
// GenerateDAX and GenerateModelContext are strict about unknown schema keys;
// GenerateTMDL skips them. The TMDL policy is the permissive one so that a
// wizard selection containing a stale key still yields a usable document.
type CodegenService interface {
	// GenerateDAX returns the measure listing for one schema.
	// Returns apperrors.ErrInvalidArgument for unknown keys.
	GenerateDAX(ctx context.Context, schemaKey string) (string, error)

	// GenerateTMDL returns a TMDL-like document for the selected schemas in order.
	// Unknown keys are skipped and reported in TMDLResult.Skipped.
	GenerateTMDL(ctx context.Context, schemaKeys []string) TMDLResult

	// GenerateModelContext describes the selected schemas for NL-to-DAX prompting.
	// Returns apperrors.ErrBadRequest for an empty selection and
	// apperrors.ErrInvalidArgument for unknown keys.
	GenerateModelContext(ctx context.Context, schemaKeys []string) (ModelContextResult, error)
}

type codegenService struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewCodegenService creates a code generation service over the given catalog.
func NewCodegenService(c *catalog.Catalog, logger *zap.Logger) CodegenService {
	return &codegenService{
		catalog: c,
		logger:  logger,
	}
}

var _ CodegenService = (*codegenService)(nil)

func (s *codegenService) GenerateDAX(ctx context.Context, schemaKey string) (string, error) {
	schema, ok := s.catalog.Schema(schemaKey)
	if !ok {
		return "", fmt.Errorf("schema %q: %w", schemaKey, apperrors.ErrInvalidArgument)
	}

	dax := codegen.MeasureText(schema)
	s.logger.Debug("Generated DAX measures",
		zap.String("schema", schemaKey),
		zap.Int("measure_count", len(schema.SemanticModel.Measures)))
	return dax, nil
}

func (s *codegenService) GenerateTMDL(ctx context.Context, schemaKeys []string) TMDLResult {
	selected := make([]models.Schema, 0, len(schemaKeys))
	var skipped []string
	for _, key := range schemaKeys {
		schema, ok := s.catalog.Schema(key)
		if !ok {
			skipped = append(skipped, key)
			continue
		}
		selected = append(selected, schema)
	}

	if len(skipped) > 0 {
		s.logger.Debug("Skipped unknown schemas in TMDL selection",
			zap.Strings("skipped", logging.TruncateAllForLog(skipped)))
	}

	return TMDLResult{
		TMDL:    codegen.TMDLDocument(selected),
		Skipped: skipped,
	}
}

func (s *codegenService) GenerateModelContext(ctx context.Context, schemaKeys []string) (ModelContextResult, error) {
	if len(schemaKeys) == 0 {
		return ModelContextResult{}, fmt.Errorf("at least one schema is required: %w", apperrors.ErrBadRequest)
	}

	selected := make([]models.Schema, 0, len(schemaKeys))
	for _, key := range schemaKeys {
		schema, ok := s.catalog.Schema(key)
		if !ok {
			return ModelContextResult{}, fmt.Errorf("schema %q: %w", key, apperrors.ErrInvalidArgument)
		}
		selected = append(selected, schema)
	}

	modelContext := prompts.BuildSemanticModelContext(selected)
	return ModelContextResult{
		Context:      modelContext,
		SystemPrompt: prompts.BuildNLToDAXSystemPrompt(modelContext),
	}, nil
}
