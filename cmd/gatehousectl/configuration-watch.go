package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gatehouse-io/gatehouse/pkg/config"
)

// configurationWatchCmd represents the configuration watch command
var configurationWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the configuration file and report changes",
	Long: `Watch the configuration file and report every reload.

The command keeps the configuration loaded, re-reads it whenever the file
changes, and prints the resulting attribute values. Interrupt to stop.

Example:
  gatehousectl configuration watch`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		fmt.Printf("Watching %s\n", cfg.ConfigFilePath())

		stop := make(chan struct{})
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-interrupt
			close(stop)
		}()

		err := config.Watch(stop,
			func(cfg *config.GatehouseConfig) {
				fmt.Println("Configuration reloaded:")
				fmt.Print(cfg.FormatText())
			},
			func(err error) {
				fmt.Fprintf(os.Stderr, "Reload failed: %v\n", err)
			},
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Watch failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationWatchCmd)
}
