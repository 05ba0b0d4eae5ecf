package cli

import (
	"os"

	"dockerconvert/internal/config"
	"dockerconvert/internal/converter"
	"dockerconvert/internal/dockerfile"
	"dockerconvert/internal/engine"
	"dockerconvert/internal/prompt"
	"dockerconvert/internal/secrets"
	"dockerconvert/internal/writer"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// NewRootCommand creates and returns the root cobra command
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docker-convert [IMAGE]",
		Short: "Reconstruct a Dockerfile from the history of a local image",
		Long: `docker-convert rebuilds an approximate Dockerfile from the layer history
of an image known to the local container engine. Without an IMAGE argument
it lists local images and asks which one to convert.

The result is printed and saved as Dockerfile-<IMAGE>. Existing files are
only replaced after confirmation; otherwise Dockerfile1-<IMAGE>,
Dockerfile2-<IMAGE>, ... are tried.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConvert,
	}

	cmd.Flags().StringP("config", "c", "", "Path to configuration file (optional)")
	cmd.Flags().StringP("output-dir", "o", "", "Directory to write the Dockerfile to (default: current directory)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}

	logger := newLogger(verbose)
	ctx := cmd.Context()
	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	var scanner *secrets.Scanner
	if !cfg.Secrets.Disabled {
		scanner = secrets.NewScanner()
	}

	conv := converter.New(converter.Options{
		Engine: engine.New(engine.Options{
			Binary:      cfg.Engine.Binary,
			HistoryArgs: cfg.Engine.HistoryArgs,
			ImagesArgs:  cfg.Engine.ImagesArgs,
		}, logger),
		Parser:  dockerfile.NewParser(cfg.Keywords),
		Writer:  writer.New(outputDir, cfg.Output.Prefix, p),
		Scanner: scanner,
		Out:     cmd.OutOrStdout(),
		Logger:  logger,
	})

	var image string
	if len(args) > 0 {
		image = args[0]
	} else {
		image, err = conv.SelectImage(ctx, p)
		if err != nil {
			return err
		}
	}

	_, err = conv.Convert(ctx, image)
	return err
}

// newLogger logs to stderr so stdout only carries the Dockerfile and prompts
func newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
	})
}
