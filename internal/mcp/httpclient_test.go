package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/meltforce/ironcycle/internal/models"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path. Verifies the HTTP client hits the right endpoints.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestActiveMesocycle verifies the client parses the single-object response.
func TestActiveMesocycle(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/mesocycles/active": func(w http.ResponseWriter, _ *http.Request) {
			writeTestJSON(t, w, models.Mesocycle{
				ID:            id,
				Status:        models.MesoActive,
				DurationWeeks: 5,
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	meso, err := client.ActiveMesocycle(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if meso.ID != id {
		t.Errorf("id = %s, want %s", meso.ID, id)
	}
	if meso.DeloadWeek() != 6 {
		t.Errorf("deload week = %d, want 6", meso.DeloadWeek())
	}
}

// TestNextWeekTargets verifies the week number lands in the path and the
// target array round-trips.
func TestNextWeekTargets(t *testing.T) {
	mesoID := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/mesocycles/" + mesoID.String() + "/weeks/3/targets": func(w http.ResponseWriter, _ *http.Request) {
			writeTestJSON(t, w, []models.WeekTargets{
				{TargetWeight: 102.5, TargetReps: 8, TargetSets: 3, WeekNumber: 3, Reason: "hit_max_reps"},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	targets, err := client.NextWeekTargets(context.Background(), mesoID, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(targets))
	}
	if targets[0].Reason != "hit_max_reps" {
		t.Errorf("reason = %q, want hit_max_reps", targets[0].Reason)
	}
}

// TestLogSetSendsAPIKey verifies mutations carry the X-API-Key header and
// the JSON body the server expects.
func TestLogSetSendsAPIKey(t *testing.T) {
	setID := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/sets/" + setID.String() + "/log": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("X-API-Key"); got != "secret" {
				t.Errorf("X-API-Key = %q, want secret", got)
			}
			var body struct {
				Reps   int     `json:"reps"`
				Weight float64 `json:"weight"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Reps != 8 || body.Weight != 100 {
				t.Errorf("body = %+v, want reps=8 weight=100", body)
			}

			reps, weight := 8, 100.0
			writeTestJSON(t, w, models.WorkoutSet{
				ID:           setID,
				ActualReps:   &reps,
				ActualWeight: &weight,
				Status:       models.SetCompleted,
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "secret")
	set, err := client.LogSet(context.Background(), setID, 8, 100)
	if err != nil {
		t.Fatal(err)
	}
	if set.Status != models.SetCompleted {
		t.Errorf("status = %s, want completed", set.Status)
	}
}

// TestHTTPClientServerError verifies the client surfaces non-2xx responses
// as errors including the response body.
func TestHTTPClientServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"database down"}`))
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	_, err := client.ListExercises(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

// TestListExercises verifies the flat-array exercise catalog endpoint.
func TestListExercises(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises": func(w http.ResponseWriter, _ *http.Request) {
			writeTestJSON(t, w, []models.Exercise{
				{ID: uuid.New(), Name: "Barbell Bench Press"},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	exercises, err := client.ListExercises(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(exercises) != 1 {
		t.Fatalf("got %d exercises, want 1", len(exercises))
	}
	if exercises[0].Name != "Barbell Bench Press" {
		t.Errorf("name = %q, want Barbell Bench Press", exercises[0].Name)
	}
}
