package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/seqline"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of seqline",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("seqline version %s\n", strings.TrimSpace(seqline.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
