package grenrc

// IsIgnored reports whether any of labels appears in ignoreIssuesWith.
func (c *Config) IsIgnored(labels []string) bool {
	for _, label := range labels {
		for _, ignored := range c.IgnoreIssuesWith {
			if label == ignored {
				return true
			}
		}
	}
	return false
}

// Classify returns the section an item with the given labels lands in.
// Ignored items return ok=false. Otherwise the first group in declared
// order that owns any of the labels wins, and items matching no group
// fall into template.noLabel.
func (c *Config) Classify(labels []string) (category string, ok bool) {
	if c.IsIgnored(labels) {
		return "", false
	}

	for _, group := range c.GroupBy {
		for _, owned := range group.Labels {
			for _, label := range labels {
				if label == owned {
					return group.Name, true
				}
			}
		}
	}

	return c.Template.NoLabel, true
}

// LabelIndex maps each grouped label to the first group that declares it.
func (c *Config) LabelIndex() map[string]string {
	index := make(map[string]string)
	for _, group := range c.GroupBy {
		for _, label := range group.Labels {
			if _, taken := index[label]; !taken {
				index[label] = group.Name
			}
		}
	}
	return index
}
