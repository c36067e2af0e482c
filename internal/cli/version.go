package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lizzyg/envparse/internal/config"
	"github.com/lizzyg/envparse/internal/util"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of envparse",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "envparse version %s\n", cmd.Root().Version)
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of envparse.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := util.GenerateJSONSchema(&config.Config{}, "envparse configuration")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
}
