package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "echo_cli",
		Short:         "Herramientas de linea de comandos para el pipeline de echoes",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.AddCommand(
		newClassifyCmd(),
		newSubmitCmd(),
		newAnalyticsCmd(),
		newPlantCmd(),
		newTokenCmd(),
	)
	return rootCmd
}
