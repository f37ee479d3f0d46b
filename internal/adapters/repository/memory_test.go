package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/planner/internal/adapters/repository"
	"github.com/okian/planner/internal/domain/event"
	"github.com/okian/planner/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
)

func seed() []event.Event {
	return []event.Event{
		{ID: "1", Title: "Team Meeting", Description: "weekly sync", Category: event.CategoryWork, Priority: event.PriorityHigh,
			Datetime: time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC)},
		{ID: "2", Title: "Dentist", Category: event.CategoryHealth, Priority: event.PriorityMedium, Completed: true,
			Datetime: time.Date(2024, time.March, 3, 9, 0, 0, 0, time.UTC)},
		{ID: "3", Title: "Lunch", Description: "meet at noon", Category: event.CategorySocial, Priority: event.PriorityLow,
			Datetime: time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)},
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	Convey("Given a seeded memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(repository.WithSeed(seed()...))

		Convey("Get returns a stored event", func() {
			e, err := store.Get(ctx, "1")
			So(err, ShouldBeNil)
			So(e.Title, ShouldEqual, "Team Meeting")
		})

		Convey("Get of an unknown id is ErrNotFound", func() {
			_, err := store.Get(ctx, "nope")
			So(err, ShouldEqual, repository.ErrNotFound)
		})

		Convey("Insert adds a document", func() {
			So(store.Insert(ctx, event.Event{ID: "4", Title: "New"}), ShouldBeNil)
			n, _ := store.Count(ctx)
			So(n, ShouldEqual, 4)
		})

		Convey("Update patches only the fields that are set", func() {
			title := "Moved Meeting"
			e, err := store.Update(ctx, "1", event.Patch{Title: &title})
			So(err, ShouldBeNil)
			So(e.Title, ShouldEqual, "Moved Meeting")
			So(e.Description, ShouldEqual, "weekly sync")
			So(e.Priority, ShouldEqual, event.PriorityHigh)
		})

		Convey("Update of an unknown id is ErrNotFound", func() {
			title := "x"
			_, err := store.Update(ctx, "nope", event.Patch{Title: &title})
			So(err, ShouldEqual, repository.ErrNotFound)
		})

		Convey("Delete returns the removed document", func() {
			e, err := store.Delete(ctx, "2")
			So(err, ShouldBeNil)
			So(e.Title, ShouldEqual, "Dentist")
			n, _ := store.Count(ctx)
			So(n, ShouldEqual, 2)
		})

		Convey("Delete of an unknown id leaves the collection unchanged", func() {
			_, err := store.Delete(ctx, "nope")
			So(err, ShouldEqual, repository.ErrNotFound)
			n, _ := store.Count(ctx)
			So(n, ShouldEqual, 3)
		})

		Convey("Toggling completed twice restores the original document", func() {
			original, _ := store.Get(ctx, "1")
			on := true
			off := false
			_, err := store.Update(ctx, "1", event.Patch{Completed: &on})
			So(err, ShouldBeNil)
			back, err := store.Update(ctx, "1", event.Patch{Completed: &off})
			So(err, ShouldBeNil)
			So(back, ShouldResemble, original)
		})
	})
}

func TestMemoryStoreList(t *testing.T) {
	Convey("Given a seeded memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(repository.WithSeed(seed()...))

		Convey("List orders through the query engine", func() {
			events, total, err := store.List(ctx, repository.Query{
				Filter: query.Config{SortBy: query.SortByDate},
			})
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 3)
			So(events[0].ID, ShouldEqual, "2")
			So(events[2].ID, ShouldEqual, "1")
		})

		Convey("The completed filter composes with the rest", func() {
			done := true
			events, total, err := store.List(ctx, repository.Query{Completed: &done})
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 1)
			So(events[0].ID, ShouldEqual, "2")
		})

		Convey("Pagination slices the ordered matches and reports the full total", func() {
			events, total, err := store.List(ctx, repository.Query{
				Filter: query.Config{SortBy: query.SortByDate},
				Page:   2,
				Limit:  2,
			})
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 3)
			So(len(events), ShouldEqual, 1)
			So(events[0].ID, ShouldEqual, "1")
		})

		Convey("A page past the end is empty, not an error", func() {
			events, total, err := store.List(ctx, repository.Query{Page: 9, Limit: 10})
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 3)
			So(events, ShouldBeEmpty)
		})
	})
}

func TestMemoryStoreUpcoming(t *testing.T) {
	Convey("Given a seeded memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(repository.WithSeed(seed()...))
		after := time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC)

		Convey("Upcoming returns strictly-future events, soonest first", func() {
			events, err := store.Upcoming(ctx, after, 10)
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 2)
			So(events[0].ID, ShouldEqual, "3")
			So(events[1].ID, ShouldEqual, "1")
		})

		Convey("The limit caps the feed", func() {
			events, err := store.Upcoming(ctx, after, 1)
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 1)
			So(events[0].ID, ShouldEqual, "3")
		})

		Convey("An exact-boundary event is not upcoming", func() {
			events, err := store.Upcoming(ctx, time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC), 10)
			So(err, ShouldBeNil)
			So(events, ShouldBeEmpty)
		})
	})
}
