// Package schedule assigns content-type labels to the day slots of a level.
package schedule

import (
	"sort"

	"github.com/jonathan/daily-reading/internal/types"
)

// DaysPerYear is the number of daily slots per level
const DaysPerYear = 365

// Quota is the required count of one label. A level's quota is an ordered list; ties
// between labels with equal remaining counts go to the earlier entry.
type Quota struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Total sums the counts of a quota
func Total(quota []Quota) int {
	total := 0
	for _, q := range quota {
		total += q.Count
	}
	return total
}

// Generate fills slots greedily: each slot takes the label with the most remaining uses
// that differs from the previous slot. When only the previous label has uses left it is
// repeated.
func Generate(quota []Quota, slots int) ([]string, error) {
	seen := make(map[string]bool, len(quota))
	for _, q := range quota {
		if q.Label == "" {
			return nil, &StructuralMismatchError{Message: "empty label"}
		}
		if seen[q.Label] {
			return nil, &StructuralMismatchError{Message: "duplicate label " + q.Label}
		}
		if q.Count < 0 {
			return nil, &StructuralMismatchError{Message: "negative count for " + q.Label}
		}
		seen[q.Label] = true
	}
	if total := Total(quota); total != slots {
		return nil, &StructuralMismatchError{Total: total, Slots: slots}
	}

	remaining := make([]int, len(quota))
	for i, q := range quota {
		remaining[i] = q.Count
	}
	order := make([]int, len(quota))

	out := make([]string, 0, slots)
	last := -1
	for len(out) < slots {
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return remaining[order[a]] > remaining[order[b]]
		})

		pick := -1
		for _, i := range order {
			if remaining[i] > 0 && i != last {
				pick = i
				break
			}
		}
		if pick < 0 {
			pick = order[0]
		}

		out = append(out, quota[pick].Label)
		remaining[pick]--
		last = pick
	}
	return out, nil
}

// Year generates a DaysPerYear-slot schedule
func Year(quota []Quota) ([]string, error) {
	return Generate(quota, DaysPerYear)
}

// Entries numbers a label sequence as days 1..n of level
func Entries(level string, labels []string) []types.ScheduleEntry {
	out := make([]types.ScheduleEntry, len(labels))
	for i, l := range labels {
		out[i] = types.ScheduleEntry{Level: level, Day: i + 1, Label: l}
	}
	return out
}

// Repeats counts adjacent slots sharing a label
func Repeats(labels []string) int {
	n := 0
	for i := 1; i < len(labels); i++ {
		if labels[i] == labels[i-1] {
			n++
		}
	}
	return n
}
