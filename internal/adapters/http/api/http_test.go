package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/planner/internal/adapters/http/api"
	"github.com/okian/planner/internal/adapters/repository"
	"github.com/okian/planner/internal/domain/calendar"
	"github.com/okian/planner/internal/domain/event"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps implements api.Dependencies for handler tests.
type mockDeps struct {
	events  []event.Event
	total   int
	one     event.Event
	err     error
	lastQ   repository.Query
	lastIn  event.Event
	lastP   event.Patch
	lastID  string
	toggled event.Event
}

func (m *mockDeps) List(ctx context.Context, q repository.Query) ([]event.Event, int, error) {
	m.lastQ = q
	return m.events, m.total, m.err
}

func (m *mockDeps) Get(ctx context.Context, id string) (event.Event, error) {
	m.lastID = id
	return m.one, m.err
}

func (m *mockDeps) Create(ctx context.Context, draft event.Event) (event.Event, error) {
	m.lastIn = draft
	return m.one, m.err
}

func (m *mockDeps) Update(ctx context.Context, id string, p event.Patch) (event.Event, error) {
	m.lastID, m.lastP = id, p
	return m.one, m.err
}

func (m *mockDeps) Delete(ctx context.Context, id string) (event.Event, error) {
	m.lastID = id
	return m.one, m.err
}

func (m *mockDeps) ToggleCompleted(ctx context.Context, id string) (event.Event, error) {
	m.lastID = id
	return m.toggled, m.err
}

func (m *mockDeps) Upcoming(ctx context.Context, limit int) ([]event.Event, error) {
	return m.events, m.err
}

func (m *mockDeps) MonthGrid(ctx context.Context, year int, month time.Month) (calendar.Grid, error) {
	return calendar.Grid{Year: year, Month: month}, m.err
}

func (m *mockDeps) ICSFeed(ctx context.Context) (string, error) {
	return "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", m.err
}

func (m *mockDeps) Location() *time.Location { return time.UTC }

func newMux(deps *mockDeps) *http.ServeMux {
	server := api.NewServer(deps, api.Limits{DefaultPage: 100, MaxPage: 500, Upcoming: 10})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

func TestListEndpoint(t *testing.T) {
	Convey("Given the events API", t, func() {
		deps := &mockDeps{
			events: []event.Event{{ID: "1", Title: "Team Meeting"}},
			total:  7,
		}
		mux := newMux(deps)

		Convey("GET /api/events returns the success envelope with pagination", func() {
			w := do(mux, "GET", "/api/events?category=work&priority=high&search=meet&sortBy=priority&limit=3&page=2", "")
			So(w.Code, ShouldEqual, http.StatusOK)

			body := decode(w)
			So(body["success"], ShouldEqual, true)
			pg := body["pagination"].(map[string]any)
			So(pg["page"], ShouldEqual, 2)
			So(pg["limit"], ShouldEqual, 3)
			So(pg["total"], ShouldEqual, 7)
			So(pg["pages"], ShouldEqual, 3)

			Convey("And the filter config reached the service intact", func() {
				So(deps.lastQ.Filter.Category, ShouldEqual, "work")
				So(deps.lastQ.Filter.Priority, ShouldEqual, "high")
				So(deps.lastQ.Filter.Search, ShouldEqual, "meet")
				So(string(deps.lastQ.Filter.SortBy), ShouldEqual, "priority")
			})
		})

		Convey("The completed parameter maps to a tri-state filter", func() {
			do(mux, "GET", "/api/events?completed=true", "")
			So(deps.lastQ.Completed, ShouldNotBeNil)
			So(*deps.lastQ.Completed, ShouldBeTrue)

			do(mux, "GET", "/api/events", "")
			So(deps.lastQ.Completed, ShouldBeNil)
		})

		Convey("A non-numeric limit is a 400", func() {
			w := do(mux, "GET", "/api/events?limit=abc", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["success"], ShouldEqual, false)
		})

		Convey("An oversized limit is clamped, not rejected", func() {
			w := do(mux, "GET", "/api/events?limit=99999", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastQ.Limit, ShouldEqual, 500)
		})
	})
}

func TestCreateEndpoint(t *testing.T) {
	Convey("Given the events API", t, func() {
		deps := &mockDeps{one: event.Event{ID: "new", Title: "Team Meeting"}}
		mux := newMux(deps)

		Convey("A valid POST creates with 201 and a message", func() {
			w := do(mux, "POST", "/api/events",
				`{"title":"Team Meeting","datetime":"2024-03-05T14:30","category":"work","priority":"urgent"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)

			body := decode(w)
			So(body["success"], ShouldEqual, true)
			So(body["message"], ShouldEqual, "Event created successfully")

			Convey("And the datetime was combined into one instant", func() {
				So(deps.lastIn.Datetime.Day(), ShouldEqual, 5)
				So(deps.lastIn.Datetime.Hour(), ShouldEqual, 14)
				So(deps.lastIn.Category, ShouldEqual, event.CategoryWork)
				So(deps.lastIn.Priority, ShouldEqual, event.PriorityUrgent)
			})
		})

		Convey("A missing title is a 400", func() {
			w := do(mux, "POST", "/api/events", `{"datetime":"2024-03-05T14:30"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A missing datetime is a 400", func() {
			w := do(mux, "POST", "/api/events", `{"title":"x"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A malformed datetime is a 400, not a create", func() {
			w := do(mux, "POST", "/api/events", `{"title":"x","datetime":"tomorrow-ish"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(deps.lastIn.Title, ShouldBeEmpty)
		})

		Convey("An unknown category degrades to the default instead of failing", func() {
			w := do(mux, "POST", "/api/events",
				`{"title":"x","datetime":"2024-03-05T14:30","category":"gibberish"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			So(deps.lastIn.Category, ShouldEqual, event.DefaultCategory)
		})
	})
}

func TestItemEndpoints(t *testing.T) {
	Convey("Given the events API", t, func() {
		deps := &mockDeps{one: event.Event{ID: "42", Title: "Dentist"}}
		mux := newMux(deps)

		Convey("GET /api/events/{id} fetches one", func() {
			w := do(mux, "GET", "/api/events/42", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastID, ShouldEqual, "42")
		})

		Convey("An unknown id is a 404 envelope", func() {
			deps.err = repository.ErrNotFound
			w := do(mux, "GET", "/api/events/missing", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			body := decode(w)
			So(body["success"], ShouldEqual, false)
			So(body["error"], ShouldEqual, "Event not found")
		})

		Convey("PUT patches only the provided fields", func() {
			w := do(mux, "PUT", "/api/events/42", `{"title":"Moved","priority":"low"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastP.Title, ShouldNotBeNil)
			So(*deps.lastP.Title, ShouldEqual, "Moved")
			So(deps.lastP.Priority, ShouldNotBeNil)
			So(deps.lastP.Datetime, ShouldBeNil)
			So(deps.lastP.Completed, ShouldBeNil)
		})

		Convey("A malformed datetime aborts the edit with a 400", func() {
			w := do(mux, "PUT", "/api/events/42", `{"datetime":"broken"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(deps.lastP.Datetime, ShouldBeNil)
		})

		Convey("DELETE returns the removed event", func() {
			w := do(mux, "DELETE", "/api/events/42", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode(w)
			So(body["message"], ShouldEqual, "Event deleted successfully")
		})

		Convey("PATCH toggle reports the new completion state", func() {
			deps.toggled = event.Event{ID: "42", Completed: true}
			w := do(mux, "PATCH", "/api/events/42/toggle", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["message"], ShouldEqual, "Event marked as complete")

			deps.toggled = event.Event{ID: "42", Completed: false}
			w = do(mux, "PATCH", "/api/events/42/toggle", "")
			So(decode(w)["message"], ShouldEqual, "Event marked as incomplete")
		})

		Convey("A store failure surfaces as a 500 envelope", func() {
			deps.err = context.DeadlineExceeded
			w := do(mux, "GET", "/api/events/42", "")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(decode(w)["success"], ShouldEqual, false)
		})
	})
}

func TestFeedEndpoints(t *testing.T) {
	Convey("Given the events API", t, func() {
		deps := &mockDeps{events: []event.Event{{ID: "1"}}}
		mux := newMux(deps)

		Convey("The upcoming feed wraps its events without pagination", func() {
			w := do(mux, "GET", "/api/events/upcoming/events?limit=5", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode(w)
			So(body["success"], ShouldEqual, true)
			So(body["pagination"], ShouldBeNil)
		})

		Convey("The calendar grid endpoint validates its month", func() {
			w := do(mux, "GET", "/api/events/calendar?year=2024&month=5", "")
			So(w.Code, ShouldEqual, http.StatusOK)

			w = do(mux, "GET", "/api/events/calendar?month=13", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("The ICS endpoint serves text/calendar", func() {
			w := do(mux, "GET", "/api/events/calendar.ics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "text/calendar")
			So(w.Body.String(), ShouldStartWith, "BEGIN:VCALENDAR")
		})
	})
}

func TestHealthAndRoot(t *testing.T) {
	Convey("Given the events API", t, func() {
		mux := newMux(&mockDeps{})

		Convey("GET /health reports OK with a timestamp", func() {
			w := do(mux, "GET", "/health", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode(w)
			So(body["status"], ShouldEqual, "OK")
			So(body["timestamp"], ShouldNotBeEmpty)
		})

		Convey("GET / lists the endpoints", func() {
			w := do(mux, "GET", "/", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["version"], ShouldEqual, "1.0.0")
		})

		Convey("An unknown path is a JSON 404", func() {
			w := do(mux, "GET", "/nope", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decode(w)["error"], ShouldEqual, "Not Found")
		})
	})
}
