// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/lexicons-bio/dwc-crossref/internal/crossref"
)

// schema constrains override files. Every section is optional; absent
// sections keep their compiled-in defaults.
const schema = `
#ContextRule: {
	field:        string
	pathContains: string
	term:         string
}

#Model: {
	name:        string
	slug:        string
	lexicon:     string
	classes: [...string]
	description: string | *""
}

#Config: {
	infrastructure?: [...string]
	contextual?: [...#ContextRule]
	renames?: {[string]: string}
	relevantClasses?: [...string]
	models?: [...#Model]
	gbifRequired?: [...string]
	gbifRecommended?: [...string]
}
`

type fileContextRule struct {
	Field        string `json:"field"`
	PathContains string `json:"pathContains"`
	Term         string `json:"term"`
}

type fileConfig struct {
	Infrastructure  []string          `json:"infrastructure"`
	Contextual      []fileContextRule `json:"contextual"`
	Renames         map[string]string `json:"renames"`
	RelevantClasses []string          `json:"relevantClasses"`
	Models          []Model           `json:"models"`
	GBIFRequired    []string          `json:"gbifRequired"`
	GBIFRecommended []string          `json:"gbifRecommended"`
}

// Load reads a CUE override file, validates it against the config schema,
// and merges it over the defaults. Sections absent from the file keep their
// default values; sections present replace them wholesale.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (Config, error) {
	ctx := cuecontext.New()

	def := ctx.CompileString(schema).LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return Config{}, fmt.Errorf("internal config schema is invalid: %w", err)
	}

	val := ctx.CompileBytes(data, cue.Filename(path))
	if err := val.Err(); err != nil {
		return Config{}, fmt.Errorf("failed to compile config %s: %w", path, err)
	}

	unified := def.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("config %s does not satisfy schema: %w", path, err)
	}

	var fc fileConfig
	if err := unified.Decode(&fc); err != nil {
		return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg := Default()
	if exists(val, "infrastructure") {
		cfg.Rules.Infrastructure = set(fc.Infrastructure...)
	}
	if exists(val, "contextual") {
		rules := make([]crossref.ContextRule, len(fc.Contextual))
		for i, r := range fc.Contextual {
			rules[i] = crossref.ContextRule{Field: r.Field, PathContains: r.PathContains, Term: r.Term}
		}
		cfg.Rules.Contextual = rules
	}
	if exists(val, "renames") {
		cfg.Rules.Renames = fc.Renames
	}
	if exists(val, "relevantClasses") {
		cfg.Rules.RelevantClasses = set(fc.RelevantClasses...)
	}
	if exists(val, "models") {
		cfg.Models = fc.Models
	}
	if exists(val, "gbifRequired") {
		cfg.GBIFRequired = set(fc.GBIFRequired...)
	}
	if exists(val, "gbifRecommended") {
		cfg.GBIFRecommended = set(fc.GBIFRecommended...)
	}
	return cfg, nil
}

func exists(val cue.Value, field string) bool {
	return val.LookupPath(cue.ParsePath(field)).Exists()
}
