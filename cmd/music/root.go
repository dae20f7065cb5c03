package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var jsonFlag bool

	ctx := newCommandContext(&configFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:           "music",
		Short:         "Resolve, search and download music tracks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print results as JSON")

	rootCmd.AddCommand(newURLCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newDownloadCommand(ctx))
	rootCmd.AddCommand(newGetCommand(ctx))
	rootCmd.AddCommand(newExtCommand(ctx))

	return rootCmd
}
