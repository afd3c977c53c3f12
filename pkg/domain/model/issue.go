package model

import "strings"

// Issue is a read-only snapshot of the triggering GitHub issue. It is owned
// and mutated exclusively by GitHub; this system never writes it back.
type Issue struct {
	Owner  string
	Repo   string
	Number int
	Title  string
	Body   string
	URL    string
	Labels []string
}

// HasLabel reports whether the issue carries a label with the exact name.
func (iss *Issue) HasLabel(name string) bool {
	for _, label := range iss.Labels {
		if label == name {
			return true
		}
	}
	return false
}

// HasLabelWithPrefix reports whether any label starts with the given prefix.
// Prefix matching accommodates labels carrying a suffix, such as
// "QA Approved (alice)". This is a deliberate relaxation of the exact-match
// rule used by earlier iterations of the sign-off workflow.
func (iss *Issue) HasLabelWithPrefix(prefix string) bool {
	_, ok := iss.LabelWithPrefix(prefix)
	return ok
}

// LabelWithPrefix returns the first label starting with the given prefix.
func (iss *Issue) LabelWithPrefix(prefix string) (string, bool) {
	for _, label := range iss.Labels {
		if strings.HasPrefix(label, prefix) {
			return label, true
		}
	}
	return "", false
}
