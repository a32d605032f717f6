package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shuttle",
	Short: "Deliver report files to the Media Shuttle portal",
	Long: `Shuttle automates delivery of locally produced report files to a
managed-file-transfer web portal by driving a browser through the portal's
UI. Configuration is loaded from a .env file or SHUTTLE_* environment
variables.`,
	SilenceUsage: true,
}

func main() {
	log.SetTimeFormat("2006-01-02 15:04:05")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func applyVerbosity(cmd *cobra.Command) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(log.DebugLevel)
	}
}
