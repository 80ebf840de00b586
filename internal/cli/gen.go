package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jaxs-ribs/hyper-bindgen/internal/config"
	"github.com/jaxs-ribs/hyper-bindgen/internal/logging"
)

var stepColor = color.New(color.Bold)

// NewGenCommand creates the gen command: the full two-pass pipeline over a
// workspace root.
func NewGenCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gen [workspace-root]",
		Short: "Generate WIT files and the caller-utils module",
		Long: "gen runs both passes: it scans every process component for capability-tagged\n" +
			"methods and emits WIT interface and world files, then re-parses the emitted\n" +
			"WIT and regenerates the caller-utils module with invocation stubs and\n" +
			"default implementations.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runGen(cmd.Context(), root, opts)
		},
	}
}

func runGen(ctx context.Context, root string, opts *RootOptions) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	if opts.LogFile != "" {
		cfg.Bindgen.LogFile = opts.LogFile
	}
	if opts.LogLevel != "" {
		cfg.Bindgen.LogLevel = opts.LogLevel
	}

	level, err := logging.ParseLevel(cfg.Bindgen.LogLevel)
	if err != nil {
		return err
	}
	logFile := cfg.Bindgen.LogFile
	if !filepath.IsAbs(logFile) {
		logFile = filepath.Join(root, logFile)
	}
	logger, cleanup, err := logging.Setup(logFile, level)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer cleanup()

	apiDir := filepath.Join(root, cfg.Bindgen.APIDir)

	stepColor.Println("=== STEP 1: Generating WIT files ===")
	fwd, err := runForward(ctx, root, apiDir, cfg, logger)
	if err != nil {
		return err
	}
	if len(fwd.Components) == 0 {
		fmt.Println("No process components found — nothing to generate.")
		return nil
	}

	if len(fwd.Interfaces) == 0 {
		fmt.Println("No interfaces found, skipping caller-utils generation.")
	} else {
		stepColor.Println("=== STEP 2: Generating caller-utils module ===")
		if err := runStubPass(apiDir, root, logger); err != nil {
			return err
		}
	}

	printSummary(fwd, logger)
	return nil
}

func printSummary(fwd *forwardResult, logger *slog.Logger) {
	stepColor.Println("=== Summary ===")
	fmt.Printf("- Processed %d process components\n", len(fwd.Components))
	fmt.Printf("- Generated %d WIT interface files\n", len(fwd.Interfaces))
	fmt.Printf("- Aggregate world: %s\n", fwd.WorldName)
	if len(fwd.Interfaces) > 0 {
		color.Green("All operations completed successfully.")
	}
	logger.Info("generation complete",
		"components", len(fwd.Components), "interfaces", len(fwd.Interfaces), "world", fwd.WorldName)
}
