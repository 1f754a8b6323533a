package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func indexCmd(configPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Print the post index, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			index, err := a.pipeline.Index(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(index)
			}
			for _, name := range index {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the index as a JSON array")
	return cmd
}
