package admiralty

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ngmaloney/uk-tide-terminal/internal/models"
)

func TestNewClient(t *testing.T) {
	client := NewClient("", "secret")

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}

	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %s, want %s", client.baseURL, DefaultBaseURL)
	}

	if client.httpClient.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", client.httpClient.Timeout)
	}
}

func serveFile(t *testing.T, wantPath, file string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != wantPath {
			t.Errorf("path = %s, want %s", r.URL.Path, wantPath)
		}
		if got := r.Header.Get(subscriptionKeyHeader); got != "test-key" {
			t.Errorf("%s = %q, want test-key", subscriptionKeyHeader, got)
		}

		w.Header().Set("Content-Type", "application/json")
		data, err := os.ReadFile(file)
		if err != nil {
			t.Errorf("reading %s: %v", file, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write(data)
	}))
}

func TestClient_GetStations(t *testing.T) {
	server := serveFile(t, "/Stations", "../../testdata/admiralty_stations.json")
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	stations, err := client.GetStations(context.Background())
	if err != nil {
		t.Fatalf("GetStations() error = %v", err)
	}

	// The feature without an Id is dropped
	if len(stations) != 4 {
		t.Fatalf("len(stations) = %d, want 4", len(stations))
	}

	dover := stations[0]
	if dover.ID != "0089" || dover.DisplayName() != "Dover" {
		t.Errorf("first station = %s %q, want 0089 Dover", dover.ID, dover.DisplayName())
	}
	if dover.Position == nil {
		t.Fatal("Dover position is nil")
	}
	if dover.Position.Latitude != 51.1 || dover.Position.Longitude != 1.3 {
		t.Errorf("Dover position = %+v, want lat 51.1 lon 1.3", *dover.Position)
	}

	if stations[1].ID != "0065" {
		t.Errorf("second station = %s, want 0065 (order preserved)", stations[1].ID)
	}

	if stations[2].Position != nil {
		t.Errorf("Plymouth position = %+v, want nil for a one-element geometry", *stations[2].Position)
	}

	if stations[3].HasName() {
		t.Errorf("station 0418 should have no name, got %q", stations[3].DisplayName())
	}
}

func TestClient_GetTidalEvents(t *testing.T) {
	server := serveFile(t, "/Stations/0089/TidalEvents", "../../testdata/admiralty_tidal_events.json")
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	events, err := client.GetTidalEvents(context.Background(), "0089")
	if err != nil {
		t.Fatalf("GetTidalEvents() error = %v", err)
	}

	if len(events) != 4 {
		t.Fatalf("len(events) = %d, want 4", len(events))
	}

	tests := []struct {
		typ     models.TideType
		display string
	}{
		{models.TideHigh, "Sun 01 - 10:00"},
		{models.TideLow, "Sun 01 - 16:24"},
		{models.TideHigh, models.UnknownTime},
		{models.TideLow, models.UnknownTime},
	}

	for i, tt := range tests {
		if events[i].Type != tt.typ {
			t.Errorf("events[%d].Type = %v, want %v", i, events[i].Type, tt.typ)
		}
		if got := events[i].DisplayTime(); got != tt.display {
			t.Errorf("events[%d].DisplayTime() = %q, want %q", i, got, tt.display)
		}
	}
}

func TestClient_ErrorHandling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"statusCode": 401, "message": "Access denied due to invalid subscription key."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key")
	ctx := context.Background()

	if _, err := client.GetStations(ctx); err == nil {
		t.Error("GetStations() expected error for 401, got nil")
	}
	if _, err := client.GetTidalEvents(ctx, "0089"); err == nil {
		t.Error("GetTidalEvents() expected error for 401, got nil")
	}
}

func TestClient_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features": [`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	if _, err := client.GetStations(context.Background()); err == nil {
		t.Error("GetStations() expected decode error, got nil")
	}
}

func TestParseEventTime(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		want  time.Time
	}{
		{"2023-01-01T10:00:00", true, time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2023-01-01T10:00:00.000", true, time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2023-06-15T23:59:59.9999999", true, time.Date(2023, 6, 15, 23, 59, 59, 0, time.UTC)},
		{"2023-06-15T23:59:59Z", true, time.Date(2023, 6, 15, 23, 59, 59, 0, time.UTC)},
		{"2023-06-15", false, time.Time{}},
		{"", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseEventTime(tt.input)
			if ok != tt.ok {
				t.Fatalf("parseEventTime(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseEventTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func serveBody(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestClient_GetTidalEvents_MistypedFields(t *testing.T) {
	server := serveBody(`[
		{"EventType": "HighWater", "DateTime": "2023-01-01T10:00:00.000"},
		{"EventType": "LowWater", "DateTime": 12345},
		{"EventType": 7, "DateTime": "2023-01-01T22:30:00"},
		"not an event",
		null
	]`)
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	events, err := client.GetTidalEvents(context.Background(), "0089")
	if err != nil {
		t.Fatalf("GetTidalEvents() error = %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	if events[0].Type != models.TideHigh || !events[0].Known {
		t.Errorf("events[0] = %+v, want known high water", events[0])
	}

	if events[1].Type != models.TideLow || events[1].Known {
		t.Errorf("events[1] = %+v, want low water with unknown time", events[1])
	}
	if got := events[1].DisplayTime(); got != models.UnknownTime {
		t.Errorf("events[1].DisplayTime() = %q, want %q", got, models.UnknownTime)
	}

	if events[2].Type != models.TideLow {
		t.Errorf("events[2].Type = %s, want %s", events[2].Type, models.TideLow)
	}
	if got := events[2].DisplayTime(); got != "Sun 01 - 22:30" {
		t.Errorf("events[2].DisplayTime() = %q, want Sun 01 - 22:30", got)
	}
}

func TestClient_GetStations_MistypedFields(t *testing.T) {
	server := serveBody(`{"features": [
		{"properties": {"Id": "0001", "Name": 42}, "geometry": {"coordinates": [1.3, 51.1]}},
		{"properties": {"Id": 2, "Name": "Numeric Id"}, "geometry": {"coordinates": [1.0, 50.0]}},
		{"properties": {"Id": "0003", "Name": "String Coordinates"}, "geometry": {"coordinates": "1.0,50.0"}},
		{"properties": {"Id": "0004", "Name": "Null Longitude"}, "geometry": {"coordinates": [null, 51.1]}},
		{"properties": "broken", "geometry": {"coordinates": [1.0, 50.0]}},
		{"properties": {"Id": "0006", "Name": "Bad Geometry"}, "geometry": []},
		{"properties": {"Id": "0007", "Name": "Calais"}, "geometry": {"coordinates": [1.8, 50.9]}},
		"not a feature"
	]}`)
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	stations, err := client.GetStations(context.Background())
	if err != nil {
		t.Fatalf("GetStations() error = %v", err)
	}

	wantIDs := []string{"0001", "0003", "0004", "0006", "0007"}
	if len(stations) != len(wantIDs) {
		t.Fatalf("got %d stations, want %d", len(stations), len(wantIDs))
	}
	for i, id := range wantIDs {
		if stations[i].ID != id {
			t.Errorf("stations[%d].ID = %s, want %s", i, stations[i].ID, id)
		}
	}

	if stations[0].Name != nil {
		t.Errorf("station 0001 Name = %q, want nil", *stations[0].Name)
	}
	if stations[0].Position == nil {
		t.Error("station 0001 Position is nil, want (51.1, 1.3)")
	}

	for _, s := range stations[1:4] {
		if s.Position != nil {
			t.Errorf("station %s Position = %+v, want nil", s.ID, *s.Position)
		}
		if !s.HasName() {
			t.Errorf("station %s lost its name", s.ID)
		}
	}

	last := stations[4]
	if last.Position == nil || last.Position.Latitude != 50.9 || last.Position.Longitude != 1.8 {
		t.Errorf("station 0007 Position = %+v, want (50.9, 1.8)", last.Position)
	}
}

func TestClient_GetStations_FeaturesNotArray(t *testing.T) {
	server := serveBody(`{"features": {"Id": "0001"}}`)
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	if _, err := client.GetStations(context.Background()); err == nil {
		t.Error("GetStations() expected decode error, got nil")
	}
}
