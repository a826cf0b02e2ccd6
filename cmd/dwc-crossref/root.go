// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/lexicons-bio/dwc-crossref/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "dwc-crossref",
	Short: "Cross-reference AT Protocol lexicons against Darwin Core",
	Long: "dwc-crossref resolves lexicon schema fields against the Darwin Core\n" +
		"controlled vocabulary and reports which fields map to which terms, which\n" +
		"fields are protocol plumbing or extensions, and which relevant terms the\n" +
		"lexicons do not implement yet.",
}

var (
	flagDwCCSV     string
	flagLexiconDir string
	flagConfig     string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDwCCSV, "dwc-csv", "schemas/dwc/term_versions.csv",
		"path to the TDWG term_versions.csv export")
	rootCmd.PersistentFlags().StringVar(&flagLexiconDir, "lexicon-dir", "lexicons",
		"directory containing the lexicon JSON documents")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"CUE configuration file overriding the built-in rule tables")

	rootCmd.AddCommand(reportCmd, htmlCmd, serveCmd)
}

func loadConfig() (config.Config, error) {
	if flagConfig == "" {
		return config.Default(), nil
	}
	return config.Load(flagConfig)
}
