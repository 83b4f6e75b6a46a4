package grenrc

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override document values.
// GREN_DATA_SOURCE maps to dataSource, GREN_TEMPLATE_NO_LABEL to template.noLabel.
const EnvPrefix = "GREN_"

// ErrScriptConfig is returned for executable configs such as .grenrc.js.
var ErrScriptConfig = errors.New("executable configuration files cannot be loaded")

// debugLogger is a no-op until SetDebugLogger is called.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for load operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// LoadOptions configures how a document is loaded.
type LoadOptions struct {
	// Path of the document. Format is inferred from its extension.
	Path string
	// Data is used instead of reading Path when non-nil.
	Data []byte
	// Format overrides extension based detection.
	Format Format
	// SkipEnv disables GREN_* environment overrides.
	SkipEnv bool
}

// Load reads, applies environment overrides to, and validates the document at path.
func Load(path string) (*Config, error) {
	return LoadWithOptions(LoadOptions{Path: path})
}

// Parse decodes and validates an in-memory document without environment overrides.
func Parse(data []byte, format Format) (*Config, error) {
	return LoadWithOptions(LoadOptions{Data: data, Format: format, SkipEnv: true})
}

// LoadWithOptions loads a document with custom options.
// Priority: environment variables > document > baseline defaults.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	data, format, err := readDocument(opts)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	loadDefaults(k)

	if len(bytes.TrimSpace(data)) > 0 {
		if err := k.Load(rawbytes.Provider(data), parserFor(format)); err != nil {
			return nil, fmt.Errorf("parsing %s config: %w", format, err)
		}
	}

	if !opts.SkipEnv {
		if err := loadEnvironmentConfig(k); err != nil {
			return nil, err
		}
	}

	cfg, err := finalizeConfig(k, data, format)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// readDocument resolves the raw bytes and format of the document.
func readDocument(opts LoadOptions) ([]byte, Format, error) {
	if opts.Path != "" && strings.EqualFold(filepath.Ext(opts.Path), ".js") {
		return nil, "", fmt.Errorf("%s: %w", opts.Path, ErrScriptConfig)
	}

	data := opts.Data
	if data == nil {
		if opts.Path == "" {
			return nil, "", errors.New("no config path or data given")
		}
		logDebug("[grenrc] reading %s", opts.Path)
		b, err := file.Provider(opts.Path).ReadBytes()
		if err != nil {
			return nil, "", fmt.Errorf("reading config file: %w", err)
		}
		data = b
	}

	format := opts.Format
	if format == "" {
		format = DetectFormat(opts.Path, data)
	}
	return data, format, nil
}

// DetectFormat infers the document format from the file extension, or from
// the content for extensionless files such as .grenrc.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yml", ".yaml":
		return FormatYAML
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return FormatJSON
	}
	return FormatYAML
}

func parserFor(format Format) koanf.Parser {
	if format == FormatJSON {
		return json.Parser()
	}
	return koanfyaml.Parser()
}

// loadDefaults applies the baseline values so documents only state differences.
func loadDefaults(k *koanf.Koanf) {
	base := Baseline()
	defaults := map[string]interface{}{
		"dataSource":                base.DataSource,
		"prefix":                    base.Prefix,
		"onlyMilestones":            base.OnlyMilestones,
		"changelogFilename":         base.ChangelogFilename,
		"template.commit":           base.Template.Commit,
		"template.issue":            base.Template.Issue,
		"template.noLabel":          base.Template.NoLabel,
		"template.group":            base.Template.Group,
		"template.changelogTitle":   base.Template.ChangelogTitle,
		"template.release":          base.Template.Release,
		"template.releaseSeparator": base.Template.ReleaseSeparator,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}
}

// envKeys lists the keys that may be overridden from the environment.
var envKeys = map[string]bool{
	"dataSource":                true,
	"prefix":                    true,
	"onlyMilestones":            true,
	"changelogFilename":         true,
	"template.commit":           true,
	"template.issue":            true,
	"template.noLabel":          true,
	"template.group":            true,
	"template.changelogTitle":   true,
	"template.release":          true,
	"template.releaseSeparator": true,
}

func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: GREN_ONLY_MILESTONES -> onlyMilestones. Unknown names map to ""
// and are skipped.
func envTransform(s string) string {
	parts := strings.Split(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_")
	var key string
	if len(parts) > 1 && parts[0] == "template" {
		key = "template." + camelCase(parts[1:])
	} else {
		key = camelCase(parts)
	}
	if !envKeys[key] {
		return ""
	}
	logDebug("[grenrc] env override %s -> %s", s, key)
	return key
}

func camelCase(parts []string) string {
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}

// finalizeConfig unmarshals the merged values and restores groupBy in
// declared order from the raw document.
func finalizeConfig(k *koanf.Koanf, data []byte, format Format) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	groups, found, err := decodeGroups(data, format)
	if err != nil {
		return nil, err
	}
	if found {
		cfg.GroupBy = groups
	} else {
		cfg.GroupBy = Baseline().GroupBy
	}

	return &cfg, nil
}

// decodeGroups reads groupBy in document order, which koanf's maps lose.
func decodeGroups(data []byte, format Format) (GroupBy, bool, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, false, nil
	}
	if format == FormatJSON {
		return decodeJSONGroups(data)
	}
	return decodeYAMLGroups(data)
}

// decodeJSONGroups walks the top-level object and hands groupBy to
// GroupBy.UnmarshalJSON.
func decodeJSONGroups(data []byte) (GroupBy, bool, error) {
	dec := stdjson.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, false, fmt.Errorf("parsing config document: %w", err)
	}
	if delim, ok := tok.(stdjson.Delim); !ok || delim != '{' {
		return nil, false, errors.New("config document must be an object")
	}

	var groups GroupBy
	found := false
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false, fmt.Errorf("parsing config document: %w", err)
		}
		key, _ := tok.(string)

		switch {
		case key == "groupBy":
			if err := dec.Decode(&groups); err != nil {
				return nil, false, err
			}
			found = true
			continue
		case !knownTopLevelKeys[key]:
			logDebug("[grenrc] ignoring unknown key %q", key)
		}

		var skip stdjson.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, false, fmt.Errorf("parsing config document: %w", err)
		}
	}
	return groups, found, nil
}

// decodeYAMLGroups reads groupBy from the yaml.v3 node tree, which keeps
// mapping order.
func decodeYAMLGroups(data []byte) (GroupBy, bool, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("parsing config document: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, false, errors.New("config document must be a mapping")
	}

	var groups GroupBy
	found := false
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		switch {
		case !knownTopLevelKeys[key]:
			logDebug("[grenrc] ignoring unknown key %q", key)
		case key == "groupBy":
			if err := root.Content[i+1].Decode(&groups); err != nil {
				return nil, false, fmt.Errorf("decoding groupBy: %w", err)
			}
			found = true
		}
	}
	return groups, found, nil
}

var knownTopLevelKeys = map[string]bool{
	"dataSource":        true,
	"prefix":            true,
	"onlyMilestones":    true,
	"groupBy":           true,
	"ignoreIssuesWith":  true,
	"changelogFilename": true,
	"template":          true,
}
