package grenrc

// Data sources understood by gren.
const (
	DataSourcePRs        = "prs"
	DataSourceIssues     = "issues"
	DataSourceCommits    = "commits"
	DataSourceMilestones = "milestones"
)

// ValidDataSources returns the accepted dataSource values.
func ValidDataSources() []string {
	return []string{DataSourcePRs, DataSourceIssues, DataSourceCommits, DataSourceMilestones}
}

// Config is the root structure of a .grenrc document.
// Field names in koanf/json/yaml tags match the keys gren reads.
type Config struct {
	DataSource        string   `koanf:"dataSource" json:"dataSource" yaml:"dataSource" validate:"required,oneof=prs issues commits milestones"`
	Prefix            string   `koanf:"prefix" json:"prefix" yaml:"prefix"`
	OnlyMilestones    bool     `koanf:"onlyMilestones" json:"onlyMilestones" yaml:"onlyMilestones"`
	GroupBy           GroupBy  `koanf:"-" json:"groupBy" yaml:"groupBy"`
	IgnoreIssuesWith  []string `koanf:"ignoreIssuesWith" json:"ignoreIssuesWith,omitempty" yaml:"ignoreIssuesWith,omitempty"`
	ChangelogFilename string   `koanf:"changelogFilename" json:"changelogFilename" yaml:"changelogFilename" validate:"required"`
	Template          Template `koanf:"template" json:"template" yaml:"template"`
}

// Group routes items carrying any of Labels into the section Name.
type Group struct {
	Name   string
	Labels []string
}

// GroupBy is the ordered list of groups. The order is the section order
// of the generated changelog.
type GroupBy []Group

// Template holds the named formatting slots.
// Commit names a registered CommitFormatter; the other slots are literals
// with {{placeholder}} tokens.
type Template struct {
	Commit           string `koanf:"commit" json:"commit" yaml:"commit" validate:"required"`
	Issue            string `koanf:"issue" json:"issue" yaml:"issue"`
	NoLabel          string `koanf:"noLabel" json:"noLabel" yaml:"noLabel" validate:"required"`
	Group            string `koanf:"group" json:"group" yaml:"group"`
	ChangelogTitle   string `koanf:"changelogTitle" json:"changelogTitle" yaml:"changelogTitle"`
	Release          string `koanf:"release" json:"release" yaml:"release"`
	ReleaseSeparator string `koanf:"releaseSeparator" json:"releaseSeparator" yaml:"releaseSeparator"`
}

// Labels returns a copy of the labels of the named group, or nil.
func (g GroupBy) Labels(name string) []string {
	for _, group := range g {
		if group.Name == name {
			return append([]string(nil), group.Labels...)
		}
	}
	return nil
}

// Names returns the group names in declared order.
func (g GroupBy) Names() []string {
	names := make([]string, 0, len(g))
	for _, group := range g {
		names = append(names, group.Name)
	}
	return names
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	out := *c
	out.GroupBy = make(GroupBy, len(c.GroupBy))
	for i, group := range c.GroupBy {
		out.GroupBy[i] = Group{Name: group.Name, Labels: append([]string(nil), group.Labels...)}
	}
	if c.IgnoreIssuesWith != nil {
		out.IgnoreIssuesWith = append([]string(nil), c.IgnoreIssuesWith...)
	}
	return &out
}

// GroupNames returns the section names in declared order.
func (c *Config) GroupNames() []string {
	return c.GroupBy.Names()
}
