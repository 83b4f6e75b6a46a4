package grenrc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGroupByJSONKeepsOrder(t *testing.T) {
	groups := GroupBy{
		{Name: "Zeta", Labels: []string{"z"}},
		{Name: "Alpha", Labels: []string{"a", "b"}},
		{Name: "Empty"},
	}

	data, err := json.Marshal(groups)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":["z"],"Alpha":["a","b"],"Empty":[]}`, string(data))

	var decoded GroupBy
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"Zeta", "Alpha", "Empty"}, decoded.Names())
	assert.Equal(t, []string{"a", "b"}, decoded.Labels("Alpha"))
}

func TestGroupByJSONErrors(t *testing.T) {
	tests := map[string]string{
		"array instead of object": `["a"]`,
		"labels not an array":     `{"Fixes": "fix"}`,
		"truncated":               `{"Fixes": ["fix"]`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			var g GroupBy
			assert.Error(t, json.Unmarshal([]byte(input), &g))
		})
	}
}

func TestGroupByJSONNull(t *testing.T) {
	g := GroupBy{{Name: "x", Labels: []string{"y"}}}
	require.NoError(t, json.Unmarshal([]byte(`null`), &g))
	assert.Nil(t, g)
}

func TestGroupByYAMLKeepsOrder(t *testing.T) {
	input := "Zeta: [z]\nAlpha:\n  - a\n  - b\n"

	var g GroupBy
	require.NoError(t, yaml.Unmarshal([]byte(input), &g))
	assert.Equal(t, []string{"Zeta", "Alpha"}, g.Names())

	out, err := yaml.Marshal(g)
	require.NoError(t, err)

	var again GroupBy
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.Equal(t, g, again)
}

func TestGroupByYAMLRejectsSequence(t *testing.T) {
	var g GroupBy
	assert.Error(t, yaml.Unmarshal([]byte("- a\n- b\n"), &g))
}

func TestRoundTrip(t *testing.T) {
	for _, name := range PresetNames() {
		for _, format := range []Format{FormatJSON, FormatYAML} {
			t.Run(name+"/"+string(format), func(t *testing.T) {
				cfg, err := Preset(name)
				require.NoError(t, err)

				data, err := EncodeString(&cfg, format)
				require.NoError(t, err)

				loaded, err := Parse([]byte(data), format)
				require.NoError(t, err)
				assert.Equal(t, &cfg, loaded)

				again, err := EncodeString(loaded, format)
				require.NoError(t, err)
				assert.Equal(t, data, again)
			})
		}
	}
}

func TestRoundTrip_StandardDecoders(t *testing.T) {
	cfg := Extended()

	jsonData, err := EncodeString(&cfg, FormatJSON)
	require.NoError(t, err)
	var fromJSON Config
	require.NoError(t, json.Unmarshal([]byte(jsonData), &fromJSON))
	assert.Equal(t, cfg, fromJSON)

	yamlData, err := EncodeString(&cfg, FormatYAML)
	require.NoError(t, err)
	var fromYAML Config
	require.NoError(t, yaml.Unmarshal([]byte(yamlData), &fromYAML))
	assert.Equal(t, cfg, fromYAML)
}

func TestEncodeJSONShape(t *testing.T) {
	cfg := Baseline()
	data, err := EncodeString(&cfg, FormatJSON)
	require.NoError(t, err)

	assert.Contains(t, data, `"dataSource": "prs"`)
	assert.Contains(t, data, `"issue": "- {{name}} [{{text}}]({{url}})"`)
	assert.NotContains(t, data, "ignoreIssuesWith")
	assert.Less(t, strings.Index(data, `"Enhancements"`), strings.Index(data, `"Others"`))
}

func TestEncodeYAMLKeepsLeadingNewlines(t *testing.T) {
	cfg := Extended()
	data, err := EncodeString(&cfg, FormatYAML)
	require.NoError(t, err)

	assert.Contains(t, data, `group: "\n#### {{heading}}\n"`)
	assert.Contains(t, data, `releaseSeparator: "\n---\n\n"`)

	loaded, err := Parse([]byte(data), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "\n#### {{heading}}\n", loaded.Template.Group)
	assert.Equal(t, "\n---\n\n", loaded.Template.ReleaseSeparator)
	assert.Equal(t, cfg.Template, loaded.Template)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    Format
		wantErr bool
	}{
		"json": {input: "json", want: FormatJSON},
		"yaml": {input: "yaml", want: FormatYAML},
		"yml":  {input: "yml", want: FormatYAML},
		"toml": {input: "toml", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
