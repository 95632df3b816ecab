package main

import (
	"fmt"
	"strings"

	hunt "github.com/Kavithma17/Treasure-Hunt"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of huntd",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("huntd version %s\n", strings.TrimSpace(hunt.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
