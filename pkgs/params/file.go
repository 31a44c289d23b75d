package params

import (
	"fmt"
	"sort"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"gopkg.in/yaml.v3"
)

// File is the on-disk form of one function's persisted parameters
type File struct {
	Function    string           `yaml:"function"`
	Fingerprint string           `yaml:"fingerprint"`
	SavedAt     time.Time        `yaml:"saved_at"`
	Arguments   map[string]Entry `yaml:"arguments"`
}

// Entry is the raw token(s) last used for one argument
type Entry struct {
	Tokens []string
	List   bool // Written as a YAML sequence
}

// Scalar returns a single-token entry
func Scalar(token string) Entry {
	return Entry{Tokens: []string{token}}
}

// List returns a multi-token entry
func List(tokens ...string) Entry {
	return Entry{Tokens: append([]string{}, tokens...), List: true}
}

// MarshalYAML writes scalars as plain strings and lists as sequences
func (e Entry) MarshalYAML() (any, error) {
	if e.List {
		if e.Tokens == nil {
			return []string{}, nil
		}
		return e.Tokens, nil
	}
	if len(e.Tokens) == 0 {
		return nil, nil
	}
	return e.Tokens[0], nil
}

// UnmarshalYAML accepts hand-edited values: any scalar (quoted or not)
// becomes one token, a sequence of scalars becomes a list.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			*e = Entry{}
			return nil
		}
		*e = Scalar(node.Value)
		return nil
	case yaml.SequenceNode:
		tokens := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: list items must be plain values", item.Line)
			}
			tokens = append(tokens, item.Value)
		}
		*e = Entry{Tokens: tokens, List: true}
		return nil
	default:
		return fmt.Errorf("line %d: expected a value or a list of values", node.Line)
	}
}

// Empty reports whether the entry carries no value at all
func (e Entry) Empty() bool {
	return !e.List && len(e.Tokens) == 0
}

// Stale is a persisted argument name that is no longer declared
type Stale struct {
	Name       string
	Suggestion string // Closest declared name, if any
}

// Filter drops entries whose names are not in known and reports them
// with the closest declared name.
func (f *File) Filter(known []string) []Stale {
	knownSet := make(map[string]bool, len(known))
	for _, k := range known {
		knownSet[k] = true
	}

	var stale []Stale
	for name := range f.Arguments {
		if knownSet[name] {
			continue
		}
		stale = append(stale, Stale{Name: name, Suggestion: closestMatch(name, known)})
		delete(f.Arguments, name)
	}

	sort.Slice(stale, func(i, j int) bool { return stale[i].Name < stale[j].Name })
	return stale
}

// closestMatch finds the closest string match using fuzzy ranking
func closestMatch(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	// Persisted names are often the longer, older spelling ("names_list"
	// for "names"), so also try the reverse direction.
	for _, c := range candidates {
		if fuzzy.MatchFold(c, target) {
			return c
		}
	}

	return ""
}
