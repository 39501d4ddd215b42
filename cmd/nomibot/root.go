package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped by the release build.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "nomibot",
	Short: "nomibot is the drinking-club chat game server",
	Long:  `nomibot serves the 酒飲み部 mini-game over a LINE messaging webhook.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
