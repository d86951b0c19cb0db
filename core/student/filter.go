package student

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/carnet/core"
)

const suggestionCutoff = 0.5

// IsAllLevels reports whether level is one of the "no filter" choices.
func IsAllLevels(level string) bool {
	level = core.CleanString(level)
	return level == "" || strings.EqualFold(level, AllLevels) || strings.EqualFold(level, AllLevelsFR)
}

// IsKnownLevel reports whether level is one of ClassLevels.
func IsKnownLevel(level string) bool {
	for _, l := range ClassLevels {
		if strings.EqualFold(l, core.CleanString(level)) {
			return true
		}
	}
	return false
}

// FilterByClass keeps the students of the given class level.
// "All", "Tous" or an empty level return students unfiltered.
func FilterByClass(students []Student, level string) []Student {
	if IsAllLevels(level) {
		return students
	}
	level = core.CleanString(level)
	filtered := make([]Student, 0, len(students))
	for _, s := range students {
		if strings.EqualFold(s.Class, level) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Search does a case-insensitive match of query on the student's first and last names.
func Search(students []Student, query string) []Student {
	query = core.CleanString(query)
	if query == "" {
		return students
	}
	filtered := make([]Student, 0, len(students))
	for _, s := range students {
		if core.ContainsFold(s.FullName(), query) || core.ContainsFold(s.LastName+" "+s.FirstName, query) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// SuggestLevel returns the known class level closest to level, if any is close enough.
func SuggestLevel(level string) (string, bool) {
	level = strings.ToUpper(core.CleanString(level))
	if level == "" {
		return "", false
	}
	var (
		best      string
		bestRatio float64
	)
	for _, l := range ClassLevels {
		ratio := difflib.NewMatcher(strings.Split(level, ""), strings.Split(l, "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = l, ratio
		}
	}
	return best, bestRatio >= suggestionCutoff
}
