package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgonek/lark-block-converter/mdconverter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type convertOptions struct {
	preset     string
	configPath string
	emphasis   string
	blankLines string
	blockIDs   string
	linkBase   string
	strict     bool
	pretty     bool
	output     string
}

func newConvertCmd(globals *globalOptions) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a Markdown file to block JSON",
		Long: `Convert a Markdown file to block JSON.

Reads standard input when no file or "-" is given. Conversion warnings are
logged to standard error; with --strict any warning fails the command.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, globals, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.preset, "preset", "", "Preset: balanced|compact|faithful|strict (env "+envPreset+")")
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file (env "+envConfig+")")
	flags.StringVar(&opts.emphasis, "emphasis", "", "Nested emphasis: outermost|compose")
	flags.StringVar(&opts.blankLines, "blank-lines", "", "Blank line paragraphs: extra|all|none")
	flags.StringVar(&opts.blockIDs, "ids", "", "Block IDs: sequential|uuid")
	flags.StringVar(&opts.linkBase, "link-base", "", "Resolve relative links against this URL (env "+envLinkBase+")")
	flags.BoolVar(&opts.strict, "strict", false, "Fail on conversion warnings and unresolved links")
	flags.BoolVar(&opts.pretty, "pretty", false, "Indent the JSON output")
	flags.StringVarP(&opts.output, "output", "o", "", "Write JSON to this file instead of standard output")

	return cmd
}

func runConvert(cmd *cobra.Command, globals *globalOptions, opts *convertOptions, args []string) error {
	logger, err := newLogger(firstNonEmpty(globals.logLevel, envLogLevel), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := resolveConfig(
		firstNonEmpty(opts.preset, envPreset),
		firstNonEmpty(opts.configPath, envConfig),
		configOverrides{
			emphasis:   opts.emphasis,
			blankLines: opts.blankLines,
			blockIDs:   opts.blockIDs,
			strict:     opts.strict,
		},
	)
	if err != nil {
		return err
	}
	cfg.Logger = logger

	if base := firstNonEmpty(opts.linkBase, envLinkBase); base != "" {
		hook, err := linkBaseHook(base)
		if err != nil {
			return err
		}
		cfg.LinkHook = hook
	}

	conv, err := mdconverter.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	name, markdown, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	result, err := conv.ConvertWithContext(cmd.Context(), markdown)
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", name, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning.Message,
			zap.String("input", name),
			zap.String("type", string(warning.Type)),
			zap.String("node", warning.NodeType),
		)
	}
	if opts.strict && len(result.Warnings) > 0 {
		return fmt.Errorf("conversion of %s produced %d warnings", name, len(result.Warnings))
	}

	var data []byte
	if opts.pretty {
		data, err = result.IndentedJSON()
	} else {
		data, err = result.JSON()
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if opts.output != "" {
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.Info("wrote block JSON",
			zap.String("path", opts.output),
			zap.Int("blocks", len(result.Content.Descendants)),
		)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func readInput(stdin io.Reader, args []string) (string, string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return "stdin", string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read file: %w", err)
	}
	return args[0], string(data), nil
}
