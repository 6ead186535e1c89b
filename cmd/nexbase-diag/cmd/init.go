package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexbase-io/nexbase-go/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long:  "Write a commented .nexbase.yaml with the default diagnostics settings to the current directory.",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	path := ".nexbase.yaml"
	if cfgFile != "" {
		path = cfgFile
	}
	if err := config.WriteDefault(path, initForce); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
