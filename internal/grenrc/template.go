package grenrc

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Registered commit formatter names.
const (
	FormatterAuthorOrName = "author-or-name"
	FormatterMessageOnly  = "message-only"
)

// CommitRecord is the input of a commit formatter.
type CommitRecord struct {
	Message string
	URL     string
	Author  string
	Name    string
}

// IssueRecord fills the issue slot.
type IssueRecord struct {
	Name string
	Text string
	URL  string
}

// ReleaseRecord fills the release slot.
type ReleaseRecord struct {
	Release string
	Date    string
	Body    string
}

// CommitFormatter renders one commit as a single line.
type CommitFormatter func(CommitRecord) string

var commitFormatters = map[string]CommitFormatter{
	FormatterAuthorOrName: formatAuthorOrName,
	FormatterMessageOnly:  formatMessageOnly,
}

func formatAuthorOrName(r CommitRecord) string {
	who := r.Name
	if r.Author != "" {
		who = "@" + r.Author
	}
	return fmt.Sprintf("- [%s](%s) - %s", r.Message, r.URL, who)
}

func formatMessageOnly(r CommitRecord) string {
	return fmt.Sprintf("- [%s](%s)", r.Message, r.URL)
}

// LookupCommitFormatter returns the formatter registered under name.
func LookupCommitFormatter(name string) (CommitFormatter, error) {
	f, ok := commitFormatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown commit formatter %q; available: %v", name, CommitFormatterNames())
	}
	return f, nil
}

// CommitFormatterNames lists the registered formatter names, sorted.
func CommitFormatterNames() []string {
	names := make([]string, 0, len(commitFormatters))
	for name := range commitFormatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Placeholders returns the placeholder names used in tmpl, in order of
// first appearance.
func Placeholders(tmpl string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// ExpandPlaceholders replaces {{key}} tokens with values[key].
// Tokens without a value are left verbatim.
func ExpandPlaceholders(tmpl string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(token string) string {
		key := strings.TrimSpace(token[2 : len(token)-2])
		if v, ok := values[key]; ok {
			return v
		}
		return token
	})
}

// FormatCommit renders r with the configured commit formatter.
func (t Template) FormatCommit(r CommitRecord) (string, error) {
	f, err := LookupCommitFormatter(t.Commit)
	if err != nil {
		return "", err
	}
	return f(r), nil
}

// FormatIssue expands the issue slot.
func (t Template) FormatIssue(r IssueRecord) string {
	return ExpandPlaceholders(t.Issue, map[string]string{"name": r.Name, "text": r.Text, "url": r.URL})
}

// FormatGroup expands the group header slot.
func (t Template) FormatGroup(heading string) string {
	return ExpandPlaceholders(t.Group, map[string]string{"heading": heading})
}

// FormatRelease expands the release slot.
func (t Template) FormatRelease(r ReleaseRecord) string {
	return ExpandPlaceholders(t.Release, map[string]string{"release": r.Release, "date": r.Date, "body": r.Body})
}

// slotPlaceholders lists the tokens each literal slot may use.
var slotPlaceholders = []struct {
	field    string
	value    func(Template) string
	allowed  []string
	required []string
}{
	{"template.issue", func(t Template) string { return t.Issue }, []string{"name", "text", "url"}, nil},
	{"template.noLabel", func(t Template) string { return t.NoLabel }, nil, nil},
	{"template.group", func(t Template) string { return t.Group }, []string{"heading"}, []string{"heading"}},
	{"template.changelogTitle", func(t Template) string { return t.ChangelogTitle }, nil, nil},
	{"template.release", func(t Template) string { return t.Release }, []string{"release", "date", "body"}, []string{"body"}},
	{"template.releaseSeparator", func(t Template) string { return t.ReleaseSeparator }, nil, nil},
}
