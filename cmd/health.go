package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the News AI API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.open()
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.client.Health(cmd.Context()); err != nil {
				return fmt.Errorf("api at %s is unhealthy: %w", s.client.BaseURL(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok  %s\n", s.client.BaseURL())
			return nil
		},
	}
}
