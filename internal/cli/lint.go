package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lizzyg/envparse/internal/lint"
	"github.com/lizzyg/envparse/internal/output"
)

var errFindings = errors.New("lint findings")

func newLintCmd(s *state) *cobra.Command {
	var godotenv bool
	cmd := &cobra.Command{
		Use:   "lint <file>",
		Short: "Report lines that are skipped, overridden or read differently elsewhere",
		Long: `Report duplicate keys, lines without '=', empty keys and, unless
--godotenv=false, lines that github.com/joho/godotenv would read differently
(quoted values, inline comments, export prefixes, ${VAR} references).
Exits non-zero when anything is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("godotenv") {
				godotenv = s.cfg.Lint.Godotenv
			}
			findings := lint.Check(text, lint.Options{Godotenv: godotenv})
			s.logger.Debug("lint done", slog.String("path", args[0]), slog.Int("findings", len(findings)))

			out := cmd.OutOrStdout()
			if s.cfg.Format == "env" {
				for _, f := range findings {
					if _, err := fmt.Fprintf(out, "%s:%s\n", args[0], f); err != nil {
						return err
					}
				}
			} else {
				if findings == nil {
					findings = []lint.Finding{}
				}
				if err := output.Encode(out, s.cfg.Format, findings); err != nil {
					return err
				}
			}
			if len(findings) > 0 {
				return fmt.Errorf("%w: %d in %s", errFindings, len(findings), args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&godotenv, "godotenv", true, "compare each line with godotenv (default from config)")
	return cmd
}
