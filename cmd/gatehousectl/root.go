package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gatehousectl",
	Short: "Gatehouse server control",
	Long:  `gatehousectl manages the Gatehouse permission and token service: run the server, migrate the database, seed roles and inspect configuration.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
