package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apiformats/clientgen/internal/render"
	"github.com/apiformats/clientgen/internal/spec"
	"github.com/apiformats/clientgen/internal/view"
)

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a client class from a Swagger/OpenAPI document",
		Long: "Generate a TypeScript or Node client class from a Swagger 1.x, Swagger 2.0, " +
			"or OpenAPI 3.x document. Options can be provided via flags or a config file.",
		Example: strings.TrimSpace(`  clientgen generate --input petstore.yaml --class-name PetStore --out ./out
  clientgen --config clientgen.yaml generate --lang node --force`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Path or URL to the Swagger/OpenAPI document")
	flags.String("class-name", "", "Name of the generated client class (required)")
	flags.String("module-name", "", "Module identifier passed through to templates")
	flags.String("lang", "", "Target to render (typescript|node); defaults to typescript")
	flags.Bool("multiple", false, "Write one file per operation tag instead of a single class file")
	flags.String("request-body-param-name", "", "Name for the parameter synthesized from an OpenAPI 3.x request body")
	flags.Bool("es6", false, "Emit ES module exports for the node target")
	flags.String("out", "", "Output directory (stdout when omitted)")
	flags.Bool("force", false, "Overwrite a non-empty output directory")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")
	flags.Bool("validate", false, "Run structural validation over OpenAPI 3.x inputs before generating")

	return cmd
}

func runGenerate(ctx context.Context, cfg *GenerateConfig) error {
	// 1) Load and parse the document (file or http/https URL).
	var loadOpts []spec.Option
	if cfg.Validate {
		loadOpts = append(loadOpts, spec.WithValidation(true))
	}
	doc, err := spec.Load(ctx, cfg.Input, loadOpts...)
	if err != nil {
		return friendlySpecError(err)
	}

	target, err := render.ParseTarget(cfg.Lang)
	if err != nil {
		return newUsageError(fmt.Sprintf("generate: %v", err))
	}

	// 2) Normalize into the version-independent view model.
	vm, err := view.Build(doc, view.Options{
		ClassName:                cfg.ClassName,
		ModuleName:               cfg.ModuleName,
		Multiple:                 cfg.Multiple,
		RequestBodyParameterName: cfg.RequestBodyParamName,
		IsES6:                    cfg.ES6,
		IsNode:                   target == render.TargetNode,
	})
	if err != nil {
		return friendlySpecError(err)
	}
	for _, w := range vm.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message)
	}

	// 3) Render. Without --out the single rendered file goes to stdout.
	if cfg.Out == "" {
		text, err := render.Render(vm, target)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, text)
		return nil
	}

	absOut := cfg.Out
	if ap, err := filepath.Abs(cfg.Out); err == nil {
		absOut = ap
	}

	res, err := render.Emit(ctx, vm, render.Options{
		OutDir:   cfg.Out,
		Target:   target,
		Multiple: cfg.Multiple,
		Force:    cfg.Force,
		DryRun:   cfg.DryRun,
	})
	if err != nil {
		return wrapOutputError(err, absOut)
	}

	if cfg.DryRun {
		printPlan(absOut, res.Planned)
	} else if cfg.Verbose {
		for _, p := range res.Planned {
			fmt.Fprintf(os.Stdout, "wrote %s (%d bytes)\n", filepath.Join(absOut, p.RelPath), p.Size)
		}
	}
	return nil
}

// friendlySpecError maps structured pipeline errors into usage errors with
// location context; everything else passes through unchanged.
func friendlySpecError(err error) error {
	var se *spec.Error
	if !errors.As(err, &se) {
		return err
	}
	msg := fmt.Sprintf("spec: %s", se.Message)
	if se.Location != "" {
		msg = fmt.Sprintf("%s\nLocation: %s", msg, se.Location)
	}
	if se.Pointer != "" {
		msg = fmt.Sprintf("%s\nPointer: %s", msg, se.Pointer)
	}
	return newUsageError(msg)
}

func printPlan(outDir string, planned []render.PlannedFile) {
	fmt.Fprintf(os.Stdout, "Planned writes to %s (%d files):\n", outDir, len(planned))
	for _, p := range planned {
		fmt.Fprintf(os.Stdout, "- %s\n", p.RelPath)
	}
}

func wrapOutputError(err error, outDir string) error {
	// Provide clearer guidance for common FS failures.
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") || strings.Contains(lower, "mkdir") || strings.Contains(lower, "rename") || strings.Contains(lower, "output directory") {
		return newUsageError(fmt.Sprintf("output error for %s: %s\nHint: choose a different --out or use --force when appropriate.", outDir, msg))
	}
	return err
}
