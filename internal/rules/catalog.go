// Package rules holds the fixed catalog of scoring rules the assessment is
// explained against. The catalog is embedded at build time, validated once,
// and shared read-only across the process.
package rules

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Definition is one canonical scoring rule. Instances are immutable; ids are
// unique and stable across releases for audit reproducibility.
type Definition struct {
	ID          string `yaml:"id" json:"id"`
	Category    string `yaml:"category" json:"category"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Threshold   string `yaml:"threshold" json:"threshold"`
	MaxPoints   int    `yaml:"max_points" json:"max_points"`
	Rationale   string `yaml:"rationale" json:"rationale"`
}

const (
	// Count is the fixed number of catalog rules.
	Count = 12
	// CategoryCount is the fixed number of rule categories.
	CategoryCount = 4
)

var catalog = mustLoad()

// Catalog returns the full rule catalog in canonical order. Callers must not
// mutate the returned slice.
func Catalog() []Definition {
	return catalog
}

// ByID returns the rule with the given id, or false if no such rule exists.
func ByID(id string) (Definition, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return r, true
		}
	}
	return Definition{}, false
}

// Categories returns the distinct categories in catalog order.
func Categories() []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range catalog {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	return out
}

// MaxTotalPoints returns the sum of MaxPoints across the catalog.
func MaxTotalPoints() int {
	total := 0
	for _, r := range catalog {
		total += r.MaxPoints
	}
	return total
}

func mustLoad() []Definition {
	var doc struct {
		Rules []Definition `yaml:"rules"`
	}
	if err := yaml.Unmarshal(catalogYAML, &doc); err != nil {
		panic(fmt.Sprintf("rules: embedded catalog is invalid: %v", err))
	}
	if err := validate(doc.Rules); err != nil {
		panic(fmt.Sprintf("rules: embedded catalog is invalid: %v", err))
	}
	return doc.Rules
}

func validate(defs []Definition) error {
	if len(defs) != Count {
		return fmt.Errorf("expected %d rules, got %d", Count, len(defs))
	}
	seen := map[string]bool{}
	perCategory := map[string]int{}
	for _, r := range defs {
		if r.ID == "" || r.Name == "" || r.Category == "" || r.Threshold == "" {
			return fmt.Errorf("rule %q is missing required fields", r.ID)
		}
		if r.MaxPoints <= 0 {
			return fmt.Errorf("rule %s has non-positive max_points", r.ID)
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate rule id %s", r.ID)
		}
		seen[r.ID] = true
		perCategory[r.Category]++
	}
	if len(perCategory) != CategoryCount {
		return fmt.Errorf("expected %d categories, got %d", CategoryCount, len(perCategory))
	}
	for cat, n := range perCategory {
		if n != Count/CategoryCount {
			return fmt.Errorf("category %q has %d rules, expected %d", cat, n, Count/CategoryCount)
		}
	}
	return nil
}
