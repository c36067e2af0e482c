package cli

import (
	"log/slog"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/lizzyg/envparse/internal/envload"
)

func newRunCmd(s *state) *cobra.Command {
	var files []string
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "run -f <file> [-f <file>...] -- <command> [args...]",
		Short: "Run a command with the entries of .env files added to its environment",
		Long: `Run a command with the merged entries of the given files added to its
environment. Variables already set keep their value unless --overwrite is
given. Entries with an empty key are not passed on.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(files) == 0 {
				files = s.cfg.Files
			}
			if !cmd.Flags().Changed("overwrite") {
				overwrite = s.cfg.Run.Overwrite
			}
			m, err := s.loader(cmd).Load(cmd.Context(), files...)
			if err != nil {
				return err
			}

			child := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
			child.Env = envload.Environ(os.Environ(), m, overwrite)
			child.Stdin = cmd.InOrStdin()
			child.Stdout = cmd.OutOrStdout()
			child.Stderr = cmd.ErrOrStderr()

			s.logger.Debug("running command",
				slog.String("command", args[0]),
				slog.Int("entries", len(m)),
				slog.Bool("overwrite", overwrite),
			)
			return child.Run()
		},
	}
	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "a .env file; repeat to merge several, later files win")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "let file entries replace variables already set (default from config)")
	return cmd
}
