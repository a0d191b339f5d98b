package cmd

import (
	"fmt"

	"github.com/aiesanjusto/resumen/extractor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extracts statement(s)",
	Long: `Extracts a given statement or statements.
This command runs the classification and reconciliation pipeline against a
single PDF or against every PDF in a folder, printing the summary as JSON.`,
	Run: handler,
}

func handler(cmd *cobra.Command, args []string) {
	target := viper.GetString("target")
	fmt.Println("scanning ", target)
	extractor.ExecuteAgainstPath(target)
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("folder", "f", ".", "Folder in which resumen will scan for files")
	viper.BindPFlag("target", extractCmd.Flags().Lookup("folder"))
}
