package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lizzyg/envparse"
	"github.com/lizzyg/envparse/internal/output"
	"github.com/lizzyg/envparse/internal/source"
)

var errNotFormatted = errors.New("file is not in canonical form")

func newFmtCmd(s *state) *cobra.Command {
	var write, check bool
	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a .env file as sorted key=value lines",
		Long: `Print the canonical form of a file: one key=value line per entry, sorted
by key, without comments, skipped lines or overridden duplicates. Parsing the
result gives exactly the same entries as parsing the original.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if write && path == source.Stdin {
				return fmt.Errorf("--write needs a file, not stdin")
			}
			text, err := readText(cmd, path)
			if err != nil {
				return err
			}
			canonical, err := envparse.Marshal(envparse.Parse(text))
			if err != nil {
				return err
			}
			switch {
			case check:
				if canonical != text {
					return fmt.Errorf("%w: %s", errNotFormatted, path)
				}
				return nil
			case write:
				if canonical == text {
					return nil
				}
				if err := output.WriteFileAtomic(path, []byte(canonical), s.logger); err != nil {
					return err
				}
				s.logger.Info("rewrote file", slog.String("path", path))
				return nil
			default:
				_, err := fmt.Fprint(cmd.OutOrStdout(), canonical)
				return err
			}
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "replace the file with its canonical form")
	cmd.Flags().BoolVar(&check, "check", false, "exit non-zero if the file is not in canonical form")
	cmd.MarkFlagsMutuallyExclusive("write", "check")
	return cmd
}
