package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ragchat",
	Short: "Retrieval-augmented chat backend for document corpora",
	Long: `ragchat ingests documents (PDF, DOCX, PPTX, CSV/XLSX, plain text) into a
persistent vector index and answers natural-language questions against
them, either with single-pass retrieval QA or with a map-reduce
"deep research" pass over a wider set of retrieved material.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".ragchat.yml", "config file path")
}
