// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lexicons-bio/dwc-crossref/internal/dwc"
	"github.com/lexicons-bio/dwc-crossref/internal/lexicon"
	"github.com/lexicons-bio/dwc-crossref/internal/report"
)

var flagOutDir string

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Generate the static documentation site",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		terms, err := dwc.LoadFile(flagDwCCSV)
		if err != nil {
			return err
		}

		site := &report.Site{Terms: terms, Cfg: cfg}
		for _, model := range cfg.Models {
			src, err := lexicon.LoadFile(filepath.Join(flagLexiconDir, model.Lexicon))
			if err != nil {
				return err
			}
			site.Pages = append(site.Pages, report.Page{Model: model, Source: src})
		}

		written, err := site.Generate(flagOutDir)
		if err != nil {
			return err
		}
		for _, name := range written {
			logger.Info("wrote page", "path", filepath.Join(flagOutDir, name))
		}
		return nil
	},
}

func init() {
	htmlCmd.Flags().StringVar(&flagOutDir, "out", "docs", "output directory for the generated site")
}
