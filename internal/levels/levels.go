// Package levels describes the twelve difficulty levels: their target level tag, school
// grade, content id code, excerpt length and content-type quota.
package levels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/daily-reading/internal/schedule"
	"github.com/jonathan/daily-reading/internal/types"
)

// Content types (sub areas)
const (
	Nonfiction = "NONFICTION"
	Literature = "LITERATURE"
	Speech     = "SPEECH"
	Writing    = "WRITING"
	Grammar    = "GRAMMAR"
	Life       = "LIFE"
	Usage      = "USAGE"
)

// Level is one difficulty level
type Level struct {
	Name        string
	Family      string
	N           int
	TargetLevel string
	Grade       types.GradeRange
	Code        string
	// TargetLength is the excerpt length for elementary levels, 0 when passages are used whole
	TargetLength int
	Quota        []schedule.Quota
}

type family struct {
	name        string
	tag         string
	code        string
	gradeOffset int
	lengths     [3]int
	quota       []schedule.Quota
}

var elementaryQuota = []schedule.Quota{
	{Label: Nonfiction, Count: 110},
	{Label: Literature, Count: 110},
	{Label: Life, Count: 73},
	{Label: Usage, Count: 72},
}

var families = []family{
	{name: "saussure", tag: "SAUSSURE", code: "s", gradeOffset: 0, lengths: [3]int{300, 400, 500}, quota: elementaryQuota},
	{name: "frege", tag: "FREGE", code: "f", gradeOffset: 3, lengths: [3]int{600, 700, 800}, quota: elementaryQuota},
	{name: "russell", tag: "RUSSELL", code: "r", gradeOffset: 6, quota: []schedule.Quota{
		{Label: Nonfiction, Count: 110},
		{Label: Literature, Count: 110},
		{Label: Speech, Count: 36},
		{Label: Writing, Count: 36},
		{Label: Grammar, Count: 73},
	}},
	{name: "wittgenstein", tag: "WITTGENSTEIN", code: "w", gradeOffset: 9, quota: []schedule.Quota{
		{Label: Nonfiction, Count: 146},
		{Label: Literature, Count: 146},
		{Label: Speech, Count: 18},
		{Label: Writing, Count: 18},
		{Label: Grammar, Count: 37},
	}},
}

var titleNames = map[string]string{
	Nonfiction: "비문학",
	Literature: "문학",
	Speech:     "화법",
	Writing:    "작문",
	Grammar:    "문법",
	Life:       "생활문",
	Usage:      "어법",
}

// All returns the twelve levels in generation order
func All() []Level {
	out := make([]Level, 0, len(families)*3)
	for _, f := range families {
		for n := 1; n <= 3; n++ {
			out = append(out, f.level(n))
		}
	}
	return out
}

// Names returns the level names in generation order
func Names() []string {
	all := All()
	out := make([]string, len(all))
	for i, l := range all {
		out[i] = l.Name
	}
	return out
}

func (f family) level(n int) Level {
	grade := f.gradeOffset + n
	quota := make([]schedule.Quota, len(f.quota))
	copy(quota, f.quota)
	return Level{
		Name:         fmt.Sprintf("%s%d", f.name, n),
		Family:       f.name,
		N:            n,
		TargetLevel:  fmt.Sprintf("%s_%d", f.tag, n),
		Grade:        types.GradeRange{Min: grade, Max: grade},
		Code:         fmt.Sprintf("%s%d", f.code, n),
		TargetLength: f.lengths[n-1],
		Quota:        quota,
	}
}

// Lookup resolves a level name such as "frege2"
func Lookup(name string) (Level, error) {
	for _, f := range families {
		if !strings.HasPrefix(name, f.name) {
			continue
		}
		suffix := strings.TrimPrefix(name, f.name)
		n, err := strconv.Atoi(suffix)
		// only the canonical spelling, so "frege01" or "frege+1" never alias "frege1"
		if err != nil || n < 1 || n > 3 || strconv.Itoa(n) != suffix {
			return Level{}, fmt.Errorf("unknown level %q", name)
		}
		return f.level(n), nil
	}
	return Level{}, fmt.Errorf("unknown level %q", name)
}

// IsElementary reports whether passages are cleaned for young readers and excerpted
func (l Level) IsElementary() bool {
	return l.TargetLength > 0
}

// IsLowestTier reports whether the level belongs to the simplest family
func (l Level) IsLowestTier() bool {
	return l.Family == families[0].name
}

// ContentID formats the id of a day's exercise, e.g. "dr-f2-007"
func (l Level) ContentID(day int) string {
	return fmt.Sprintf("dr-%s-%03d", l.Code, day)
}

// FileName formats the output file name of a day, e.g. "007.json"
func FileName(day int) string {
	return fmt.Sprintf("%03d.json", day)
}

// Title formats the display title of a day's exercise
func Title(contentType string, day int) string {
	if name, ok := titleNames[contentType]; ok {
		return fmt.Sprintf("독해(%s) Day %d", name, day)
	}
	return fmt.Sprintf("일일 독해 Day %d", day)
}
