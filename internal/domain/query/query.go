// Package query implements the event query engine: pure filtering and
// ordering of an event collection. The list view, the calendar projector
// and both storage backends all derive their views through this package so
// ordering semantics cannot drift between surfaces.
package query

import (
	"sort"
	"strings"

	"github.com/okian/planner/internal/domain/event"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortBy selects the ordering of a derived view.
type SortBy string

// Supported orderings.
const (
	SortByDate     SortBy = "date"
	SortByPriority SortBy = "priority"
	SortByTitle    SortBy = "title"
	SortByCategory SortBy = "category"
)

// FilterAll is the wildcard value that disables a category or priority filter.
const FilterAll = "all"

// Config is the filter/sort configuration applied to the event collection.
// All filters compose with AND semantics.
type Config struct {
	// Category passes everything when empty or FilterAll, otherwise requires
	// an exact match.
	Category string

	// Priority follows the same wildcard rule as Category.
	Priority string

	// Search is a case-insensitive substring match against title or
	// description. Empty passes everything.
	Search string

	// SortBy defaults to SortByDate when unset or unrecognized.
	SortBy SortBy
}

// ParseSortBy normalizes raw input, falling back to SortByDate.
func ParseSortBy(s string) SortBy {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortByPriority:
		return SortByPriority
	case SortByTitle:
		return SortByTitle
	case SortByCategory:
		return SortByCategory
	default:
		return SortByDate
	}
}

// Matches reports whether a single event satisfies every filter in the
// config. Sort order is irrelevant here.
func (c Config) Matches(e event.Event) bool {
	if c.Category != "" && c.Category != FilterAll && string(e.Category) != c.Category {
		return false
	}
	if c.Priority != "" && c.Priority != FilterAll && string(e.Priority) != c.Priority {
		return false
	}
	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(e.Title), needle) &&
			!strings.Contains(strings.ToLower(e.Description), needle) {
			return false
		}
	}
	return true
}

// Apply filters and orders the collection. The input slice is never
// mutated; repeated calls with the same inputs yield the same output.
func Apply(events []event.Event, cfg Config) []event.Event {
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		if cfg.Matches(e) {
			out = append(out, e)
		}
	}
	Sort(out, cfg.SortBy)
	return out
}

// Sort orders events in place according to by. The sort is stable so equal
// keys keep their input order.
func Sort(events []event.Event, by SortBy) {
	coll := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		switch by {
		case SortByPriority:
			// Most pressing first; unknown priorities weigh as the default.
			return a.Priority.Weight() > b.Priority.Weight()
		case SortByTitle:
			return coll.CompareString(a.Title, b.Title) < 0
		case SortByCategory:
			if c := coll.CompareString(string(a.Category), string(b.Category)); c != 0 {
				return c < 0
			}
			return a.Datetime.Before(b.Datetime)
		default:
			return a.Datetime.Before(b.Datetime)
		}
	})
}
