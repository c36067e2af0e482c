package cli

import (
	"github.com/spf13/cobra"

	"github.com/lizzyg/envparse/internal/source"
)

func newParseCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse and merge .env files",
		Long: `Parse each file and print the merged entries. A key in a later file
overrides the same key in an earlier one. With no arguments the files listed
in the config are used, and failing that standard input. "-" reads standard
input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = s.cfg.Files
			}
			if len(paths) == 0 {
				paths = []string{source.Stdin}
			}
			w, err := s.writer()
			if err != nil {
				return err
			}
			m, err := s.loader(cmd).Load(cmd.Context(), paths...)
			if err != nil {
				return err
			}
			return w.Write(cmd.OutOrStdout(), m)
		},
	}
}
