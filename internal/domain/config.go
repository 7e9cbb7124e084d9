package domain

import (
	"fmt"
	"strings"
)

const (
	DefaultSourceDir = "lib"
	DefaultExtension = ".dart"
)

// ValidRules enumerates every rewrite rule name, in execution order.
var ValidRules = []string{
	"unnecessary_brace_in_string_interps",
	"use_super_parameters",
	"library_private_types_in_public_api",
	"prefer_final_fields",
	"prefer_conditional_assignment",
	"unnecessary_import",
	"library_prefixes",
	"use_build_context_synchronously",
	"unnecessary_cast",
	"dead_null_aware_expression",
	"unnecessary_null_comparison",
	"avoid_types_as_parameter_names",
	"deprecated_radio_members",
	"deprecated_form_field_value",
	"deprecated_on_pop_invoked",
	"deprecated_desired_accuracy",
	"unused_field",
	"unused_element",
	"unused_local_variable",
	"avoid_web_libraries_in_flutter",
}

// ValidChecks enumerates the usage scanner's issue categories.
var ValidChecks = []string{CategoryUnusedImport, CategoryUnusedVariable}

// ProjectConfig holds project-level configuration loaded from .dartlint.yaml.
type ProjectConfig struct {
	SourceDir     string   `yaml:"source_dir"     json:"source_dir,omitempty"`
	Extension     string   `yaml:"extension"      json:"extension,omitempty"`
	ExcludePaths  []string `yaml:"exclude_paths"  json:"exclude_paths,omitempty"`
	DisabledRules []string `yaml:"disabled_rules" json:"disabled_rules,omitempty"`
	SkipChecks    []string `yaml:"skip_checks"    json:"skip_checks,omitempty"`
	Workers       int      `yaml:"workers"        json:"workers,omitempty"`
}

// DefaultConfig scans lib/ for .dart files with every rule enabled.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		SourceDir: DefaultSourceDir,
		Extension: DefaultExtension,
		Workers:   1,
	}
}

// WithDefaults fills unset fields from DefaultConfig.
func (c ProjectConfig) WithDefaults() ProjectConfig {
	d := DefaultConfig()
	if c.SourceDir == "" {
		c.SourceDir = d.SourceDir
	}
	if c.Extension == "" {
		c.Extension = d.Extension
	}
	if c.Workers == 0 {
		c.Workers = d.Workers
	}
	return c
}

// IsRuleDisabled reports whether the named rewrite rule is turned off.
func (c ProjectConfig) IsRuleDisabled(name string) bool {
	return contains(c.DisabledRules, name)
}

// IsCheckSkipped reports whether the named usage check is turned off.
func (c ProjectConfig) IsCheckSkipped(category string) bool {
	return contains(c.SkipChecks, category)
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.Extension != "" && !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}

	for _, r := range c.DisabledRules {
		if !contains(ValidRules, r) {
			return fmt.Errorf("unknown rule %q in disabled_rules", r)
		}
	}

	for _, s := range c.SkipChecks {
		if !contains(ValidChecks, s) {
			return fmt.Errorf("unknown check %q in skip_checks (valid: %s)", s, strings.Join(ValidChecks, ", "))
		}
	}

	if strings.HasPrefix(c.SourceDir, "/") || strings.Contains(c.SourceDir, "..") {
		return fmt.Errorf("source_dir %q must be relative to the project root", c.SourceDir)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
