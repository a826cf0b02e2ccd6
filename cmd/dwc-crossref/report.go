// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/lexicons-bio/dwc-crossref/internal/crossref"
	"github.com/lexicons-bio/dwc-crossref/internal/dwc"
	"github.com/lexicons-bio/dwc-crossref/internal/lexicon"
	"github.com/lexicons-bio/dwc-crossref/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the Darwin Core cross-reference report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		terms, err := dwc.LoadFile(flagDwCCSV)
		if err != nil {
			return err
		}
		sources, err := lexicon.LoadDir(flagLexiconDir)
		if err != nil {
			return err
		}

		cls := crossref.Classify(sources, terms, cfg.Rules)
		return report.Text(cmd.OutOrStdout(), sources, cls)
	},
}
