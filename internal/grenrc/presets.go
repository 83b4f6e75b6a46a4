package grenrc

import (
	"fmt"
	"sort"
)

// Preset names.
const (
	PresetBaseline = "baseline"
	PresetExtended = "extended"
)

var presets = map[string]func() Config{
	PresetBaseline: Baseline,
	PresetExtended: Extended,
}

// Baseline returns the base configuration: pull requests as data source,
// four label groups and the CHANGELOG.md output file.
// Each call builds a fresh value.
func Baseline() Config {
	return Config{
		DataSource:     DataSourcePRs,
		Prefix:         "",
		OnlyMilestones: false,
		GroupBy: GroupBy{
			{Name: "Enhancements", Labels: []string{"enhancement", "internal", "feat"}},
			{Name: "Bug Fixes", Labels: []string{"fix"}},
			{Name: "Documentation", Labels: []string{"doc"}},
			{Name: "Others", Labels: []string{"other"}},
		},
		ChangelogFilename: "CHANGELOG.md",
		Template: Template{
			Commit:           FormatterAuthorOrName,
			Issue:            "- {{name}} [{{text}}]({{url}})",
			NoLabel:          "other",
			Group:            "\n#### {{heading}}\n",
			ChangelogTitle:   "# Changelog\n\n",
			Release:          "## {{release}} ({{date}})\n{{body}}",
			ReleaseSeparator: "\n---\n\n",
		},
	}
}

// Extended returns the baseline with "bug" routed to Bug Fixes and
// wontfix/duplicate items dropped.
func Extended() Config {
	cfg := Baseline()
	for i := range cfg.GroupBy {
		if cfg.GroupBy[i].Name == "Bug Fixes" {
			cfg.GroupBy[i].Labels = append(cfg.GroupBy[i].Labels, "bug")
		}
	}
	cfg.IgnoreIssuesWith = []string{"wontfix", "duplicate"}
	return cfg
}

// Preset returns the named built-in configuration.
func Preset(name string) (Config, error) {
	build, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown preset %q; available: %v", name, PresetNames())
	}
	return build(), nil
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
