package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lizzyg/envparse/internal/diff"
	"github.com/lizzyg/envparse/internal/output"
)

var errDiffers = errors.New("files differ")

func newDiffCmd(s *state) *cobra.Command {
	var exitCode, useCmp bool
	cmd := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Show keys added, removed or changed between two .env files",
		Long: `Show keys added, removed or changed between two .env files. The default
env format prints "-", "+" and "~" lines; json and yaml encode the same
result. --cmp prints a go-cmp report of the two maps instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ld := s.loader(cmd)
			a, err := ld.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			b, err := ld.Load(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			r := diff.Compare(a, b)

			out := cmd.OutOrStdout()
			switch {
			case useCmp:
				_, err = io.WriteString(out, diff.Text(a, b))
			case s.cfg.Format == "env":
				err = r.Write(out)
			default:
				err = output.Encode(out, s.cfg.Format, r)
			}
			if err != nil {
				return err
			}
			if exitCode && !r.Empty() {
				return fmt.Errorf("%w: %s %s", errDiffers, args[0], args[1])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit non-zero when the files differ")
	cmd.Flags().BoolVar(&useCmp, "cmp", false, "print a go-cmp report (-a +b) instead of the key summary")
	return cmd
}
