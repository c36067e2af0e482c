package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lizzyg/envparse/internal/config"
	"github.com/lizzyg/envparse/internal/output"
	"github.com/lizzyg/envparse/internal/source"
)

// state is shared by all subcommands of one root command.
type state struct {
	cfg      *config.Config
	logger   *slog.Logger
	format   string
	logLevel string
}

// NewRootCmd builds the envparse command tree.
func NewRootCmd(version string) *cobra.Command {
	s := &state{}
	root := &cobra.Command{
		Use:   "envparse",
		Short: "Read, check and compare .env files",
		Long: `envparse reads .env-style key=value files the lenient way: blank lines,
'#' comment lines and lines without '=' are skipped, each remaining line is
split at its first '=', and keys and values are trimmed. Values are never
unquoted or expanded. Later lines override earlier ones.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd)
		},
	}
	root.SetVersionTemplate(`{{printf "envparse version %s\n" .Version}}`)

	root.PersistentFlags().StringVarP(&s.format, "format", "o", "",
		"output format, one of "+strings.Join(output.Formats, ", ")+" (default from config)")
	root.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "log level: debug, info, warn or error (default from config)")

	root.AddCommand(
		newParseCmd(s),
		newLintCmd(s),
		newDiffCmd(s),
		newFmtCmd(s),
		newWatchCmd(s),
		newRunCmd(s),
		newSchemaCmd(),
		newVersionCmd(),
	)
	return root
}

// setup loads config and applies flag overrides.
func (s *state) setup(cmd *cobra.Command) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := *loaded
	if cmd.Flags().Changed("format") {
		cfg.Format = s.format
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = s.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	s.cfg = &cfg
	s.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func (s *state) loader(cmd *cobra.Command) *source.Loader {
	return source.New(source.WithLogger(s.logger), source.WithStdin(cmd.InOrStdin()))
}

func (s *state) writer() (output.Writer, error) {
	return output.NewWriter(s.cfg.Format)
}

// readText returns the contents of path, or of stdin for "-".
func readText(cmd *cobra.Command, path string) (string, error) {
	if path == source.Stdin {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
