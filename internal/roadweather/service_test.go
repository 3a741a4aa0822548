package roadweather

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roadweather-service/internal/genai"
	"roadweather-service/internal/geomap"
	"roadweather-service/internal/locations"
	"roadweather-service/internal/openweather"
	"roadweather-service/internal/store"
	t "roadweather-service/internal/types"

	"go.uber.org/zap"
)

// testService builds a service around an OpenWeather fake, with Redis
// disabled so handlers hit the provider directly.
func testService(owBaseUrl string) *Service {
	s := &Service{disableRedis: true}
	s.Logger = zap.NewNop().Sugar()
	s.store = store.New()
	s.carousel = store.NewCarousel(s.store)
	if owBaseUrl != "" {
		s.ow = openweather.New(
			openweather.ApiKeyOption("test-key"),
			openweather.BaseUrlOption(owBaseUrl),
		)
		s.owLimited = openweather.NewRateLimited(s.ow, 100, 10)
		s.editor = locations.NewEditor(s.store, s.ow, s.Logger)
	}
	return s
}

func TestConditionsHandlerUpdatesStore(tt *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"cod": 200,
			"weather": [{"main": "Clouds"}],
			"main": {"temp": 283.15},
			"visibility": 10000,
			"wind": {"speed": 4.1}
		}`)
	}))
	defer server.Close()

	s := testService(server.URL)
	s.store.SetLocation("London, GB", t.Coordinates{Lat: 51.5, Lng: -0.09})
	if !s.store.IsInitial() {
		tt.Fatal("store not initial before first fetch")
	}

	req := httptest.NewRequest("GET", "/conditions", nil)
	w := httptest.NewRecorder()
	s.ConditionsHandler(w, req)

	if w.Code != http.StatusOK {
		tt.Fatalf("status = %d, want 200", w.Code)
	}

	var got t.WeatherSummary
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		tt.Fatalf("invalid response body: %v", err)
	}
	if got.Temperature != 10 {
		tt.Errorf("temperature = %d, want 10", got.Temperature)
	}
	if s.store.IsInitial() {
		tt.Error("store still initial after successful fetch")
	}
	if s.store.Weather().Temperature != 10 {
		tt.Errorf("store temperature = %d, want 10", s.store.Weather().Temperature)
	}
}

func TestConditionsHandlerProviderErrorLeavesStore(tt *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"cod": "404", "message": "city not found"}`)
	}))
	defer server.Close()

	s := testService(server.URL)
	req := httptest.NewRequest("GET", "/conditions", nil)
	w := httptest.NewRecorder()
	s.ConditionsHandler(w, req)

	if w.Code != 502 {
		tt.Errorf("status = %d, want 502", w.Code)
	}
	if !s.store.IsInitial() {
		tt.Error("store left initial state on provider error")
	}
}

func TestConditionsHandlerDiscardsStaleResponse(tt *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		fmt.Fprint(w, `{
			"cod": 200,
			"weather": [{"main": "Rain"}],
			"main": {"temp": 278.15},
			"visibility": 9000,
			"wind": {"speed": 3.2}
		}`)
	}))
	defer server.Close()

	s := testService(server.URL)
	s.store.SetLocation("Oslo, NO", t.Coordinates{Lat: 59.91, Lng: 10.75})

	done := make(chan struct{})
	go func() {
		defer close(done)
		w := httptest.NewRecorder()
		s.ConditionsHandler(w, httptest.NewRequest("GET", "/conditions", nil))
	}()
	<-started

	// The location changes and a newer refresh completes while the first
	// response is still in flight.
	s.store.SetLocation("Madrid, ES", t.Coordinates{Lat: 40.42, Lng: -3.7})
	epoch := s.store.BeginWeatherRefresh()
	if !s.store.SetWeatherAt(epoch, t.WeatherSummary{Temperature: 20, Weather: "Clear"}) {
		tt.Fatal("newer refresh unexpectedly discarded")
	}

	close(release)
	<-done

	if got := s.store.Weather().Temperature; got != 20 {
		tt.Errorf("temperature = %d, want 20 kept from the newer refresh", got)
	}
	if got := s.store.Weather().Weather; got != "Clear" {
		tt.Errorf("weather = %q, want %q kept from the newer refresh", got, "Clear")
	}
}

func TestAdviceHandlerSuppressedWhileInitial(tt *testing.T) {
	s := testService("")

	req := httptest.NewRequest("GET", "/advice", nil)
	w := httptest.NewRecorder()
	s.AdviceHandler(w, req)

	if w.Code != http.StatusNoContent {
		tt.Errorf("status = %d, want 204 while store is initial", w.Code)
	}
}

func TestAdviceHandlerFallbackOnGenerationFailure(tt *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	s := testService("")
	s.gen = genai.New(
		genai.ApiKeyOption("test-key"),
		genai.BaseUrlOption(server.URL),
	)
	s.store.SetWeather(t.WeatherSummary{Temperature: 5, Weather: "Rain", Visibility: 8000, WindSpeed: 3})

	req := httptest.NewRequest("GET", "/advice", nil)
	w := httptest.NewRecorder()
	s.AdviceHandler(w, req)

	if w.Code != http.StatusOK {
		tt.Fatalf("status = %d, want 200", w.Code)
	}

	var resp adviceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		tt.Fatalf("invalid response body: %v", err)
	}
	if resp.Source != "fallback" {
		tt.Errorf("source = %q, want fallback", resp.Source)
	}
	if len(resp.Lines) != 2 {
		tt.Errorf("len(lines) = %d, want 2 canned lines", len(resp.Lines))
	}
}

func TestAdviceHandlerModelResponse(tt *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"candidates": [{"content": {"parts": [{"text": "Slow down.\n\nLeave room."}]}}]
		}`)
	}))
	defer server.Close()

	s := testService("")
	s.gen = genai.New(
		genai.ApiKeyOption("test-key"),
		genai.BaseUrlOption(server.URL),
	)
	s.store.SetWeather(t.WeatherSummary{Temperature: 5, Weather: "Rain"})

	req := httptest.NewRequest("GET", "/advice", nil)
	w := httptest.NewRecorder()
	s.AdviceHandler(w, req)

	var resp adviceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		tt.Fatalf("invalid response body: %v", err)
	}
	if resp.Source != "model" {
		tt.Errorf("source = %q, want model", resp.Source)
	}
	if len(resp.Lines) != 2 || resp.Lines[0] != "Slow down." {
		tt.Errorf("lines = %v, want the two model sentences", resp.Lines)
	}
}

func TestVehicleStepHandlerCycles(tt *testing.T) {
	s := testService("")

	step := func(n int) string {
		body := strings.NewReader(fmt.Sprintf(`{"step": %d}`, n))
		req := httptest.NewRequest("POST", "/vehicle/step", body)
		w := httptest.NewRecorder()
		s.VehicleStepHandler(w, req)

		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			tt.Fatalf("invalid response body: %v", err)
		}
		return resp["vehicle"]
	}

	if got := step(1); got != "motorbike" {
		tt.Errorf("first step = %q, want motorbike", got)
	}
	if got := step(1); got != "van" {
		tt.Errorf("second step = %q, want van", got)
	}
	if got := step(1); got != "car" {
		tt.Errorf("third step = %q, want car (cycle closes)", got)
	}
	if s.store.Vehicle() != store.VehicleCar {
		tt.Errorf("store vehicle = %v, want car", s.store.Vehicle())
	}
}

func TestSearchHandlerEmptyQuery(tt *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tt.Error("geocoder called for empty query")
	}))
	defer server.Close()

	s := testService(server.URL)
	req := httptest.NewRequest("POST", "/location/search", strings.NewReader(`{"query": ""}`))
	w := httptest.NewRecorder()
	s.SearchHandler(w, req)

	if w.Code != 400 {
		tt.Errorf("status = %d, want 400", w.Code)
	}
	if name, _ := s.store.Location(); name != store.DefaultName {
		tt.Errorf("store name = %q, want unchanged", name)
	}
}

func TestSearchHandlerZeroCandidates(tt *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	s := testService(server.URL)
	req := httptest.NewRequest("POST", "/location/search", strings.NewReader(`{"query": "Paris"}`))
	w := httptest.NewRecorder()
	s.SearchHandler(w, req)

	if w.Code != http.StatusOK {
		tt.Fatalf("status = %d, want 200", w.Code)
	}

	var resp searchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		tt.Fatalf("invalid response body: %v", err)
	}
	if resp.State != "editing" {
		tt.Errorf("state = %q, want editing after zero candidates", resp.State)
	}
	if len(resp.Candidates) != 0 {
		tt.Errorf("candidates = %v, want empty", resp.Candidates)
	}
	if name, _ := s.store.Location(); name != store.DefaultName {
		tt.Errorf("store name = %q, want unchanged", name)
	}
}

func TestSearchThenSelectUpdatesLocation(tt *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/geo/1.0/direct":
			fmt.Fprint(w, `[{"name": "Paris", "lat": 48.8589, "lon": 2.32, "country": "FR"}]`)
		case "/data/2.5/weather":
			fmt.Fprint(w, `{"cod": 200, "weather": [{"main": "Clear"}], "main": {"temp": 290.15}, "visibility": 10000, "wind": {"speed": 2}}`)
		}
	}))
	defer server.Close()

	s := testService(server.URL)

	req := httptest.NewRequest("POST", "/location/search", strings.NewReader(`{"query": "Paris"}`))
	w := httptest.NewRecorder()
	s.SearchHandler(w, req)

	var search searchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &search); err != nil {
		tt.Fatalf("invalid response body: %v", err)
	}
	if search.State != "selecting" || len(search.Candidates) != 1 {
		tt.Fatalf("search response = %+v, want selecting with one candidate", search)
	}

	req = httptest.NewRequest("POST", "/location/select", strings.NewReader(`{"index": 0}`))
	w = httptest.NewRecorder()
	s.SelectHandler(w, req)

	if w.Code != http.StatusOK {
		tt.Fatalf("select status = %d, want 200", w.Code)
	}
	name, coords := s.store.Location()
	if name != "Paris, FR" {
		tt.Errorf("store name = %q, want \"Paris, FR\"", name)
	}
	if coords.Lat != 48.8589 || coords.Lng != 2.32 {
		tt.Errorf("store coordinates = %+v, want (48.8589, 2.32)", coords)
	}
}

func TestJourneyHandlerMissingParams(tt *testing.T) {
	s := testService("")

	req := httptest.NewRequest("GET", "/journey?to=Paris", nil)
	w := httptest.NewRecorder()
	s.JourneyHandler(w, req)
	if w.Code != 400 {
		tt.Errorf("status without from = %d, want 400", w.Code)
	}

	req = httptest.NewRequest("GET", "/journey?from=London", nil)
	w = httptest.NewRecorder()
	s.JourneyHandler(w, req)
	if w.Code != 400 {
		tt.Errorf("status without to = %d, want 400", w.Code)
	}
}

func TestOverlayHandlerUnknownLayer(tt *testing.T) {
	s := testService("")

	req := httptest.NewRequest("GET", "/overlay?layer=Lava", nil)
	w := httptest.NewRecorder()
	s.OverlayHandler(w, req)

	if w.Code != 400 {
		tt.Errorf("status = %d, want 400 for unknown layer", w.Code)
	}
}

func TestPanelWidthHandlerClamps(tt *testing.T) {
	s := testService("")
	s.panel = geomap.NewPanel(0.2, 0.6)

	req := httptest.NewRequest("POST", "/panel/width", strings.NewReader(`{"width": 0.9}`))
	w := httptest.NewRecorder()
	s.PanelWidthHandler(w, req)

	var resp panelResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		tt.Fatalf("invalid response body: %v", err)
	}
	if resp.Width != 0.6 {
		tt.Errorf("width = %v, want clamped 0.6", resp.Width)
	}
}
