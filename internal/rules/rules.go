// Package rules provides the data-driven heuristic tables used by the exercise compiler.
// Tables are stored as JSON and embedded at compile time; every table is an ordered list
// so that "first match wins" lookups are reproducible.
package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed rules.json
var defaultRules []byte

// Pair is one (pattern, outcome) row of an ordered rule table
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Device describes the rhetorical-device check
type Device struct {
	Marker  string   `json:"marker"`
	Answer  string   `json:"answer"`
	Choices []string `json:"choices"`
	SubArea string   `json:"sub_area"`
}

// Prompts holds question wording for one difficulty register
type Prompts struct {
	Role       string `json:"role"`
	Connective string `json:"connective"`
	Device     string `json:"device"`
	Content    string `json:"content"`
	MainIdea   string `json:"main_idea"`
	Confirm    string `json:"confirm"`
}

// Set is a complete rule configuration
type Set struct {
	Connectives      []Pair             `json:"connectives"`
	Relations        []string           `json:"relations"`
	Particles        []Pair             `json:"particles"`
	Roles            []string           `json:"roles"`
	Device           Device             `json:"device"`
	StopWords        []string           `json:"stop_words"`
	Simplify         []Pair             `json:"simplify"`
	ArchaicMarkers   []string           `json:"archaic_markers"`
	Sentinel         string             `json:"sentinel"`
	LowestTierPrefix string             `json:"lowest_tier_prefix"`
	Prompts          map[string]Prompts `json:"prompts"`

	stopWords map[string]bool
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
)

// Default returns the embedded rule set. It panics if the embedded JSON is invalid.
func Default() *Set {
	defaultOnce.Do(func() {
		s, err := Parse(defaultRules)
		if err != nil {
			panic(fmt.Sprintf("failed to load embedded rules: %v", err))
		}
		defaultSet = s
	})
	return defaultSet
}

// Parse decodes and checks a rule set
func Parse(data []byte) (*Set, error) {
	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse rules JSON: %w", err)
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	s.stopWords = make(map[string]bool, len(s.StopWords))
	for _, w := range s.StopWords {
		s.stopWords[w] = true
	}
	return &s, nil
}

func (s *Set) check() error {
	if len(s.Relations) != 4 {
		return fmt.Errorf("rules: relations must list 4 labels, got %d", len(s.Relations))
	}
	if len(s.Roles) != 4 {
		return fmt.Errorf("rules: roles must list 4 labels, got %d", len(s.Roles))
	}
	if len(s.Device.Choices) != 4 {
		return fmt.Errorf("rules: device choices must list 4 labels, got %d", len(s.Device.Choices))
	}
	for _, c := range s.Connectives {
		if !contains(s.Relations, c.Value) {
			return fmt.Errorf("rules: connective %q maps to unknown relation %q", c.Key, c.Value)
		}
	}
	for _, p := range s.Particles {
		if !contains(s.Roles, p.Value) {
			return fmt.Errorf("rules: particle %q maps to unknown role %q", p.Key, p.Value)
		}
	}
	if !contains(s.Device.Choices, s.Device.Answer) {
		return fmt.Errorf("rules: device answer %q is not among its choices", s.Device.Answer)
	}
	if s.Sentinel == "" {
		return fmt.Errorf("rules: sentinel must not be empty")
	}
	if _, ok := s.Prompts["default"]; !ok {
		return fmt.Errorf("rules: prompts.default is required")
	}
	return nil
}

// Connective returns the first table connective contained in sentence, in table order.
// The returned index is a byte offset into sentence.
func (s *Set) Connective(sentence string) (Pair, int, bool) {
	for _, c := range s.Connectives {
		if pos := strings.Index(sentence, c.Key); pos >= 0 {
			return c, pos, true
		}
	}
	return Pair{}, -1, false
}

// Role maps a case particle to its grammatical role
func (s *Set) Role(particle string) (string, bool) {
	for _, p := range s.Particles {
		if p.Key == particle {
			return p.Value, true
		}
	}
	return "", false
}

// IsStopWord reports whether w is excluded from keyword selection
func (s *Set) IsStopWord(w string) bool {
	return s.stopWords[w]
}

// IsLowestTier reports whether targetLevel belongs to the simplest phrasing register
func (s *Set) IsLowestTier(targetLevel string) bool {
	return s.LowestTierPrefix != "" && strings.HasPrefix(targetLevel, s.LowestTierPrefix)
}

// PromptsFor returns question wording for a target level
func (s *Set) PromptsFor(targetLevel string) Prompts {
	if s.IsLowestTier(targetLevel) {
		if p, ok := s.Prompts["lowest"]; ok {
			return p
		}
	}
	return s.Prompts["default"]
}

// Format replaces template placeholders in the form {{.Key}} with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
