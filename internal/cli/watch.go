package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lizzyg/envparse/internal/output"
	"github.com/lizzyg/envparse/internal/watch"
)

func newWatchCmd(s *state) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Print a .env file's entries every time it changes",
		Long: `Print a .env file's entries now and again every time they change, until
interrupted. With the env format each snapshot starts with a "# update N"
line and a failed reload is reported as a "# reload failed" comment, so the
stream itself still parses as a .env file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("debounce") {
				debounce = s.cfg.Watch.Debounce
			}
			w, err := s.writer()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			n := 0
			onChange := func(m map[string]string) {
				n++
				if err := writeUpdate(out, s.cfg.Format, n, w, m); err != nil {
					s.logger.Error("write update", slog.Any("err", err))
				}
			}
			onError := func(err error) {
				if s.cfg.Format != "env" {
					return
				}
				if _, werr := fmt.Fprintf(out, "# reload failed: %s\n", oneLine(err)); werr != nil {
					s.logger.Error("write update", slog.Any("err", werr))
				}
			}
			return watch.New(args[0], onChange,
				watch.WithLogger(s.logger),
				watch.WithDebounce(debounce),
				watch.WithLoader(s.loader(cmd)),
				watch.WithErrorHandler(onError),
			).Run(cmd.Context())
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-reading (default from config)")
	return cmd
}

// writeUpdate separates successive snapshots: a comment line for env, a
// document marker for yaml. JSON objects follow each other directly.
func writeUpdate(out io.Writer, format string, n int, w output.Writer, m map[string]string) error {
	switch format {
	case "env":
		if _, err := fmt.Fprintf(out, "# update %d\n", n); err != nil {
			return err
		}
	case "yaml":
		if _, err := io.WriteString(out, "---\n"); err != nil {
			return err
		}
	}
	return w.Write(out, m)
}

func oneLine(err error) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(err.Error())
}
