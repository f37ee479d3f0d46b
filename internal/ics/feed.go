// Package ics renders the event collection as an iCalendar feed so the
// planner can be subscribed to from any calendar client.
package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/okian/planner/internal/domain/event"
)

// prodID identifies this feed's generator per RFC 5545.
const prodID = "-//planner//event feed//EN"

// defaultDuration is used for DTEND; the planner models an instant, not a
// span, and most clients render zero-length events poorly.
const defaultDuration = time.Hour

// Feed serializes events into a VCALENDAR document.
func Feed(events []event.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetSummary(e.Title)
		ve.SetStartAt(e.Datetime)
		ve.SetEndAt(e.Datetime.Add(defaultDuration))
		ve.SetDtStampTime(e.CreatedAt)
		ve.SetCreatedTime(e.CreatedAt)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.Completed {
			ve.SetStatus(ical.ObjectStatusCompleted)
		} else {
			ve.SetStatus(ical.ObjectStatusConfirmed)
		}
	}
	return cal.Serialize()
}
