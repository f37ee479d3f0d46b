// Package event contains the core domain model shared between layers.
package event

import (
	"strings"
	"time"
)

// Category classifies an event for filtering and badge styling.
type Category string

// Known categories. Unrecognized input degrades to DefaultCategory.
const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryFamily   Category = "family"
	CategorySocial   Category = "social"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

// DefaultCategory is applied when a category is absent or unrecognized.
const DefaultCategory = CategoryPersonal

// Priority orders events from least to most pressing.
type Priority string

// Known priorities, totally ordered urgent > high > medium > low.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DefaultPriority is applied when a priority is absent or unrecognized.
const DefaultPriority = PriorityMedium

// Event represents a single schedulable item.
// Fields mirror the wire schema for /api/events.
type Event struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Datetime    time.Time `json:"datetime" bson:"datetime"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	Category    Category  `json:"category" bson:"category"`
	Priority    Priority  `json:"priority" bson:"priority"`
	Completed   bool      `json:"completed" bson:"completed"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// Patch carries a partial update. Nil fields leave the stored value untouched.
type Patch struct {
	Title       *string
	Description *string
	Datetime    *time.Time
	Location    *string
	Category    *Category
	Priority    *Priority
	Completed   *bool
}

// Apply copies the set fields of the patch onto e. ID and CreatedAt are
// never touched.
func (p Patch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Datetime != nil {
		e.Datetime = *p.Datetime
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Priority != nil {
		e.Priority = *p.Priority
	}
	if p.Completed != nil {
		e.Completed = *p.Completed
	}
	return e
}

var categories = map[Category]struct{}{
	CategoryPersonal: {},
	CategoryWork:     {},
	CategoryFamily:   {},
	CategorySocial:   {},
	CategoryHealth:   {},
	CategoryOther:    {},
}

// ParseCategory normalizes raw input, falling back to DefaultCategory for
// anything it does not recognize. It never fails; defaulting at the
// ingestion boundary keeps display and filter code free of fallbacks.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := categories[c]; ok {
		return c
	}
	return DefaultCategory
}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

var priorityWeights = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

// ParsePriority normalizes raw input, falling back to DefaultPriority for
// anything it does not recognize.
func ParsePriority(s string) Priority {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := priorityWeights[p]; ok {
		return p
	}
	return DefaultPriority
}

// Valid reports whether the priority is one of the known values.
func (p Priority) Valid() bool {
	_, ok := priorityWeights[p]
	return ok
}

// Weight returns the sort weight of the priority, higher meaning more
// pressing. Unknown priorities weigh the same as DefaultPriority so a
// malformed document can never break ordering.
func (p Priority) Weight() int {
	if w, ok := priorityWeights[p]; ok {
		return w
	}
	return priorityWeights[DefaultPriority]
}

// Normalized returns a copy with category and priority coerced onto their
// known value sets.
func (e Event) Normalized() Event {
	if !e.Category.Valid() {
		e.Category = ParseCategory(string(e.Category))
	}
	if !e.Priority.Valid() {
		e.Priority = ParsePriority(string(e.Priority))
	}
	return e
}

// Datetime wire layouts accepted on ingest. The form submits the bare
// concatenation of its date and time inputs, so the offset-free layouts are
// interpreted in the service location.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDatetime parses a combined date+time instant from its wire form.
func ParseDatetime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	var err error
	for _, layout := range datetimeLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
