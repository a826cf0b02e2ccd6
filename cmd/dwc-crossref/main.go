// SPDX-License-Identifier: Apache-2.0

// Command dwc-crossref cross-references AT Protocol lexicon schemas against
// the Darwin Core vocabulary and renders the result as a console report, a
// static HTML site, or MCP tools over stdio.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
