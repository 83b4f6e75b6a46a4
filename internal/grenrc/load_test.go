package grenrc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := map[string]struct {
		path    string
		check   func(t *testing.T, cfg *Config)
		wantErr string
	}{
		"extended json matches preset": {
			path: "testdata/extended.grenrc.json",
			check: func(t *testing.T, cfg *Config) {
				want := Extended()
				assert.Equal(t, &want, cfg)
			},
		},
		"yaml keeps declared order and fills defaults": {
			path: "testdata/reordered.grenrc.yml",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"Others", "v2.x Fixes", "Enhancements"}, cfg.GroupNames())
				assert.Equal(t, []string{"fix", "bug"}, cfg.GroupBy.Labels("v2.x Fixes"))
				assert.Equal(t, DataSourceIssues, cfg.DataSource)
				assert.True(t, cfg.OnlyMilestones)
				assert.Equal(t, "docs/CHANGES.md", cfg.ChangelogFilename)
				assert.Equal(t, "misc", cfg.Template.NoLabel)
				assert.Equal(t, Baseline().Template.Issue, cfg.Template.Issue)
				assert.Equal(t, FormatterAuthorOrName, cfg.Template.Commit)
			},
		},
		"overlapping labels rejected": {
			path:    "testdata/overlapping.grenrc.yml",
			wantErr: `label "fix" already routes to group "Enhancements"`,
		},
		"script config rejected": {
			path:    "testdata/script.grenrc.js",
			wantErr: "executable configuration files cannot be loaded",
		},
		"missing file": {
			path:    "testdata/missing.json",
			wantErr: "reading config file",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadWithOptions(LoadOptions{Path: tt.path, SkipEnv: true})
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_ScriptConfigSentinel(t *testing.T) {
	_, err := Load("testdata/script.grenrc.js")
	assert.True(t, errors.Is(err, ErrScriptConfig))
}

func TestLoad_OverlapIsValidationError(t *testing.T) {
	_, err := Load("testdata/overlapping.grenrc.yml")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.ErrorContains(t, err, `group "Enhancements" can never receive it`)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("GREN_DATA_SOURCE", "issues")
	t.Setenv("GREN_ONLY_MILESTONES", "true")
	t.Setenv("GREN_CHANGELOG_FILENAME", "HISTORY.md")
	t.Setenv("GREN_TEMPLATE_NO_LABEL", "misc")
	t.Setenv("GREN_TOKEN", "ignored")

	cfg, err := Load("testdata/extended.grenrc.json")
	require.NoError(t, err)

	assert.Equal(t, "issues", cfg.DataSource)
	assert.True(t, cfg.OnlyMilestones)
	assert.Equal(t, "HISTORY.md", cfg.ChangelogFilename)
	assert.Equal(t, "misc", cfg.Template.NoLabel)
	assert.Equal(t, []string{"wontfix", "duplicate"}, cfg.IgnoreIssuesWith)
}

func TestLoad_InvalidEnvironmentOverride(t *testing.T) {
	t.Setenv("GREN_DATA_SOURCE", "tickets")

	_, err := Load("testdata/extended.grenrc.json")
	assert.True(t, IsValidationError(err))
}

func TestParse_SkipsEnvironment(t *testing.T) {
	t.Setenv("GREN_DATA_SOURCE", "issues")

	cfg, err := Parse([]byte(`{"prefix": "v"}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "prs", cfg.DataSource)
	assert.Equal(t, "v", cfg.Prefix)
}

func TestParse(t *testing.T) {
	tests := map[string]struct {
		data    string
		format  Format
		wantErr bool
	}{
		"empty document uses baseline": {data: "", format: FormatYAML},
		"whitespace only":              {data: "  \n", format: FormatJSON},
		"invalid json":                 {data: `{"dataSource":`, format: FormatJSON, wantErr: true},
		"invalid yaml":                 {data: "groupBy: [\n", format: FormatYAML, wantErr: true},
		"scalar document":              {data: "prs", format: FormatYAML, wantErr: true},
		"groupBy not a mapping":        {data: "groupBy: [fix]", format: FormatYAML, wantErr: true},
		"json array document":          {data: `["prs"]`, format: FormatJSON, wantErr: true},
		"json groupBy not an object":   {data: `{"groupBy": ["fix"]}`, format: FormatJSON, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data), tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			want := Baseline()
			assert.Equal(t, &want, cfg)
		})
	}
}

func TestParse_JSONEscapes(t *testing.T) {
	data := `{"groupBy":{"Bug\/Fixes":["fix"],"\u00c4nderungen":["feat"]},"changelogFilename":"a\/CHANGELOG.md","extra":{"x":[1,2]}}`

	cfg, err := Parse([]byte(data), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bug/Fixes", "Änderungen"}, cfg.GroupNames())
	assert.Equal(t, []string{"fix"}, cfg.GroupBy.Labels("Bug/Fixes"))
	assert.Equal(t, "a/CHANGELOG.md", cfg.ChangelogFilename)
}

func TestLoad_ExtensionlessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".grenrc")
	require.NoError(t, os.WriteFile(path, []byte(`{"dataSource": "commits"}`), 0o644))

	cfg, err := LoadWithOptions(LoadOptions{Path: path, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, DataSourceCommits, cfg.DataSource)
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]struct {
		path string
		data string
		want Format
	}{
		"json extension":      {path: ".grenrc.json", want: FormatJSON},
		"yml extension":       {path: ".grenrc.yml", want: FormatYAML},
		"yaml extension":      {path: "x.YAML", want: FormatYAML},
		"extensionless json":  {path: ".grenrc", data: "  {\"a\": 1}", want: FormatJSON},
		"extensionless yaml":  {path: ".grenrc", data: "dataSource: prs", want: FormatYAML},
		"no path, json bytes": {data: "{}", want: FormatJSON},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path, []byte(tt.data)))
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := map[string]string{
		"GREN_DATA_SOURCE":                "dataSource",
		"GREN_PREFIX":                     "prefix",
		"GREN_ONLY_MILESTONES":            "onlyMilestones",
		"GREN_CHANGELOG_FILENAME":         "changelogFilename",
		"GREN_TEMPLATE_NO_LABEL":          "template.noLabel",
		"GREN_TEMPLATE_RELEASE_SEPARATOR": "template.releaseSeparator",
		"GREN_TOKEN":                      "",
		"GREN_GROUP_BY":                   "",
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, envTransform(input))
		})
	}
}
