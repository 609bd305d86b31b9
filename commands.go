package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/apperrors"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/catalog"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/services"
)

func daxCommand() *cli.Command {
	return &cli.Command{
		Name:        "dax",
		Usage:       "Print the DAX measures for a schema",
		Description: `Print each measure of the schema as a description comment followed by "Name = Expression".`,
		ArgsUsage:   " <schema>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return fmt.Errorf("expected exactly 1 argument, got %d", args.Len())
			}
			return runDAX(ctx, os.Stdout, args.First())
		},
	}
}

func tmdlCommand() *cli.Command {
	return &cli.Command{
		Name:        "tmdl",
		Usage:       "Print a TMDL model for one or more schemas",
		Description: `Unknown schema keys are skipped and reported on stderr.`,
		ArgsUsage:   " <schema>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runTMDL(ctx, os.Stdout, os.Stderr, cmd.Args().Slice())
		},
	}
}

func contextCommand() *cli.Command {
	return &cli.Command{
		Name:        "context",
		Usage:       "Print the NL-to-DAX system prompt for one or more schemas",
		Description: `Describe the selected schemas as semantic model context and embed it in a DAX generation prompt.`,
		ArgsUsage:   " <schema>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runContext(ctx, os.Stdout, cmd.Args().Slice())
		},
	}
}

func schemasCommand() *cli.Command {
	return &cli.Command{
		Name:  "schemas",
		Usage: "List the available ACC schemas",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSchemas(ctx, os.Stdout)
		},
	}
}

func newCodegenService() services.CodegenService {
	return services.NewCodegenService(catalog.Default(), zap.NewNop())
}

func runDAX(ctx context.Context, out io.Writer, schemaKey string) error {
	dax, err := newCodegenService().GenerateDAX(ctx, schemaKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			return fmt.Errorf("invalid schema %q (run 'schemas' to list keys)", schemaKey)
		}
		return err
	}
	_, err = fmt.Fprintln(out, dax)
	return err
}

func runTMDL(ctx context.Context, out, errOut io.Writer, schemaKeys []string) error {
	result := newCodegenService().GenerateTMDL(ctx, schemaKeys)
	for _, key := range result.Skipped {
		fmt.Fprintf(errOut, "skipped unknown schema %q\n", key)
	}
	_, err := fmt.Fprint(out, result.TMDL)
	return err
}

func runContext(ctx context.Context, out io.Writer, schemaKeys []string) error {
	result, err := newCodegenService().GenerateModelContext(ctx, schemaKeys)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrBadRequest):
			return fmt.Errorf("at least one schema is required")
		case errors.Is(err, apperrors.ErrInvalidArgument):
			return fmt.Errorf("invalid schema: %w", err)
		}
		return err
	}
	_, err = fmt.Fprintln(out, result.SystemPrompt)
	return err
}

func runSchemas(ctx context.Context, out io.Writer) error {
	catalogService := services.NewCatalogService(catalog.Default(), zap.NewNop())
	schemas := catalogService.ListSchemas(ctx)
	for _, key := range catalogService.SchemaKeys(ctx) {
		schema := schemas[key]
		if _, err := fmt.Fprintf(out, "%-10s %-20s %d tables, %d measures\n",
			key, schema.Name, len(schema.Tables), len(schema.SemanticModel.Measures)); err != nil {
			return err
		}
	}
	return nil
}
