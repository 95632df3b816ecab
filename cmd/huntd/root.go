package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "huntd",
	Short: "huntd runs the treasure hunt server",
	Long:  `huntd serves timed multi-stage treasure hunts over a JSON API, with all answer data held server-side.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
