package main

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/gogpu/sldview/internal/config"
	"github.com/gogpu/sldview/internal/ui"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write the default configuration if none exists",
			RunE: func(cmd *cobra.Command, args []string) error {
				created, err := config.EnsureExists()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if created {
					ui.Good.Fprintf(out, "  Created %s\n", config.Path())
				} else {
					ui.Subtle.Fprintf(out, "  %s already exists\n", config.Path())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file path",
			Run: func(cmd *cobra.Command, args []string) {
				cmd.Println(config.Path())
			},
		},
	)
	return cmd
}
