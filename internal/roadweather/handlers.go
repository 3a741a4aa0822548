package roadweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"roadweather-service/internal/advice"
	"roadweather-service/internal/geomap"
	"roadweather-service/internal/locations"
	"roadweather-service/internal/openweather"
	t "roadweather-service/internal/types"

	"golang.org/x/sync/errgroup"
)

type stateResponse struct {
	Name        string           `json:"name"`
	Coordinates t.Coordinates    `json:"coordinates"`
	Vehicle     string           `json:"vehicle"`
	Weather     t.WeatherSummary `json:"weather"`
	Initial     bool             `json:"initial"`
}

type locationRequest struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	State      string           `json:"state"`
	Candidates []t.GeoCandidate `json:"candidates"`
}

type selectRequest struct {
	Index int `json:"index"`
}

type stepRequest struct {
	Step int `json:"step"`
}

type adviceResponse struct {
	Lines  []string `json:"lines"`
	Source string   `json:"source"`
}

type journeyResponse struct {
	Route  *t.Route        `json:"route"`
	Centre t.Coordinates   `json:"centre"`
	Bounds []t.Coordinates `json:"bounds"`
}

type overlayMarker struct {
	City        string        `json:"city"`
	Coordinates t.Coordinates `json:"coordinates"`
	Label       string        `json:"label"`
}

type overlayResponse struct {
	Layer   string          `json:"layer"`
	Markers []overlayMarker `json:"markers"`
}

type panelWidthRequest struct {
	Width float64 `json:"width"`
}

type panelResponse struct {
	Open  bool    `json:"open"`
	Width float64 `json:"width"`
}

func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]string{"status": "ok"})
}

func (s *Service) StateHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	s.writeResponse(w, stateResponse{
		Name:        snap.Name,
		Coordinates: snap.Coordinates,
		Vehicle:     string(snap.Vehicle),
		Weather:     snap.Weather,
		Initial:     snap.Initial,
	})
}

// ConditionsHandler fetches current conditions for the selected location
// and records them in the weather store. The fetch carries the store's
// refresh epoch, so a response that loses to a newer refresh is returned
// to the caller but never recorded.
func (s *Service) ConditionsHandler(w http.ResponseWriter, r *http.Request) {
	coords := s.store.Coordinates()
	epoch := s.store.BeginWeatherRefresh()
	summary, err := s.currentConditions(r.Context(), coords)
	if err != nil {
		s.Logger.Errorw("error fetching current conditions",
			"lat", coords.Lat, "lng", coords.Lng, "error", err.Error())
		s.writeError(w, CodeError{code: 502, msg: "Error retrieving current conditions."})
		return
	}
	if !s.store.SetWeatherAt(epoch, *summary) {
		s.Logger.Infow("discarded stale conditions response",
			"lat", coords.Lat, "lng", coords.Lng, "epoch", epoch)
	}
	s.writeResponse(w, summary)
}

func (s *Service) ForecastHandler(w http.ResponseWriter, r *http.Request) {
	coords := s.store.Coordinates()
	points, err := s.ow.Forecast(r.Context(), coords, ForecastPointCap)
	if err != nil {
		s.Logger.Errorw("error fetching forecast",
			"lat", coords.Lat, "lng", coords.Lng, "error", err.Error())
		s.writeError(w, CodeError{code: 502, msg: "Error retrieving forecast."})
		return
	}
	s.writeResponse(w, points)
}

// AdviceHandler generates driving advice from the current weather and
// vehicle. While the weather store has never been populated it answers 204
// so advice is never produced from default values.
func (s *Service) AdviceHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	if snap.Initial {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	prompt := advice.Prompt(snap.Weather, snap.Vehicle)
	text, err := s.gen.Generate(r.Context(), prompt)
	if err != nil {
		s.Logger.Errorw("error generating advice", "error", err.Error())
		s.writeResponse(w, adviceResponse{
			Lines:  advice.Fallback(snap.Vehicle, snap.Weather.Weather),
			Source: "fallback",
		})
		return
	}

	lines := advice.SplitLines(text)
	if len(lines) == 0 {
		lines = advice.Fallback(snap.Vehicle, snap.Weather.Weather)
		s.writeResponse(w, adviceResponse{Lines: lines, Source: "fallback"})
		return
	}
	s.writeResponse(w, adviceResponse{Lines: lines, Source: "model"})
}

// AlertsHandler reports active weather warnings. The place defaults to the
// selected location but can be overridden with ?place=.
func (s *Service) AlertsHandler(w http.ResponseWriter, r *http.Request) {
	place := r.URL.Query().Get("place")
	if place == "" {
		place = s.store.Name()
	}

	alerts, err := s.alerts.Alerts(r.Context(), place)
	if err != nil {
		s.Logger.Errorw("error fetching alerts", "place", place, "error", err.Error())
		s.writeError(w, CodeError{code: 502, msg: "Error retrieving weather alerts."})
		return
	}
	s.writeResponse(w, alerts)
}

// JourneyHandler geocodes a start and end place, routes between them and
// returns the polyline with the map centre and bounds.
func (s *Service) JourneyHandler(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" {
		s.writeError(w, CodeError{code: 400, msg: "Missing 'from' query parameter in request"})
		return
	} else if to == "" {
		s.writeError(w, CodeError{code: 400, msg: "Missing 'to' query parameter in request"})
		return
	}

	var start, end *t.Coordinates
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		start, err = s.geoCodeOne(r.Context(), from)
		return err
	})
	g.Go(func() error {
		var err error
		end, err = s.geoCodeOne(r.Context(), to)
		return err
	})
	if err := g.Wait(); err != nil {
		s.writeError(w, err)
		return
	}

	route, err := s.route.Directions(r.Context(), *start, *end)
	if err != nil {
		s.Logger.Errorw("error routing journey", "from", from, "to", to, "error", err.Error())
		s.writeError(w, CodeError{code: 502, msg: "Error retrieving journey route."})
		return
	}
	if route.Straight {
		s.Logger.Warnw("no routable path, using straight line", "from", from, "to", to)
	}

	s.writeResponse(w, journeyResponse{
		Route:  route,
		Centre: geomap.Centre(start, end),
		Bounds: geomap.Bounds(start, end),
	})
}

func (s *Service) geoCodeOne(ctx context.Context, place string) (*t.Coordinates, error) {
	candidates, err := s.ow.GeoCode(ctx, place, 1)
	if err != nil {
		s.Logger.Errorw(err.Error(), "place", place, "action", "GeoCode")
		return nil, CodeError{code: 500, msg: fmt.Sprintf("Internal error geocoding place '%v'.", place)}
	}
	if len(candidates) == 0 {
		return nil, CodeError{code: 400, msg: fmt.Sprintf("Unrecognized place '%v'. Check spelling or be more specific.", place)}
	}
	return &t.Coordinates{Lat: candidates[0].Lat, Lng: candidates[0].Lon}, nil
}

// LocationHandler sets the location wholesale and kicks off the tagged
// weather refresh.
func (s *Service) LocationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, CodeError{code: 405, msg: "Method not allowed"})
		return
	}

	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, CodeError{code: 400, msg: "Invalid location payload"})
		return
	}
	if req.Name == "" {
		s.writeError(w, CodeError{code: 400, msg: "Location name cannot be empty"})
		return
	}

	coords := t.Coordinates{Lat: req.Lat, Lng: req.Lng}
	s.store.SetLocation(req.Name, coords)
	s.refreshWeather(context.Background(), coords)
	s.StateHandler(w, r)
}

// SearchHandler runs the location editor's search transition and returns
// the candidate list.
func (s *Service) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, CodeError{code: 405, msg: "Method not allowed"})
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, CodeError{code: 400, msg: "Invalid search payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editor.State() == locations.StateDisplay {
		s.editor.StartEdit()
	}
	s.editor.SetInput(req.Query)
	if err := s.editor.Submit(r.Context()); err == locations.ErrEmptyQuery {
		s.writeError(w, CodeError{code: 400, msg: err.Error()})
		return
	} else if err != nil {
		s.writeError(w, CodeError{code: 502, msg: "Error searching for locations."})
		return
	}

	s.writeResponse(w, searchResponse{
		State:      s.editor.State().String(),
		Candidates: s.editor.Candidates(),
	})
}

// SelectHandler commits one candidate from the last search into the store.
func (s *Service) SelectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, CodeError{code: 405, msg: "Method not allowed"})
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, CodeError{code: 400, msg: "Invalid select payload"})
		return
	}

	s.mu.Lock()
	err := s.editor.Select(req.Index)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, CodeError{code: 400, msg: err.Error()})
		return
	}

	s.refreshWeather(context.Background(), s.store.Coordinates())
	s.StateHandler(w, r)
}

// VehicleStepHandler advances the vehicle carousel.
func (s *Service) VehicleStepHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, CodeError{code: 405, msg: "Method not allowed"})
		return
	}

	var req stepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, CodeError{code: 400, msg: "Invalid step payload"})
		return
	}

	s.mu.Lock()
	vehicle := s.carousel.Step(req.Step)
	s.mu.Unlock()

	s.writeResponse(w, map[string]string{"vehicle": string(vehicle)})
}

// OverlayHandler populates per-city weather markers for a layer.
func (s *Service) OverlayHandler(w http.ResponseWriter, r *http.Request) {
	layer := openweather.Layer(r.URL.Query().Get("layer"))
	if !layer.Valid() {
		s.writeError(w, CodeError{code: 400, msg: "Unknown overlay layer"})
		return
	}

	minPop := int64(500000)
	if raw := r.URL.Query().Get("minPop"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.writeError(w, CodeError{code: 400, msg: "'minPop' parameter must be an integer"})
			return
		}
		minPop = parsed
	}

	details, err := s.overlay.Populate(r.Context(), minPop)
	if err != nil {
		s.Logger.Errorw("error populating overlay", "layer", layer, "error", err.Error())
		s.writeError(w, CodeError{code: 502, msg: "Error populating weather overlay."})
		return
	}

	markers := make([]overlayMarker, 0, len(details))
	for _, d := range details {
		markers = append(markers, overlayMarker{
			City:        d.Name,
			Coordinates: d.Coordinates,
			Label:       geomap.LabelValue(string(layer), d),
		})
	}
	s.writeResponse(w, overlayResponse{Layer: string(layer), Markers: markers})
}

// OverlaySelectHandler handles a city marker click: the city becomes the
// selected location and the side detail panel opens.
func (s *Service) OverlaySelectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, CodeError{code: 405, msg: "Method not allowed"})
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		s.writeError(w, CodeError{code: 400, msg: "Invalid city payload"})
		return
	}

	city, err := s.cities.Find(r.Context(), req.Name)
	if err != nil {
		s.Logger.Errorw("error looking up city", "city", req.Name, "error", err.Error())
		s.writeError(w, CodeError{code: 500, msg: "Error looking up city."})
		return
	}
	if city == nil {
		s.writeError(w, CodeError{code: 404, msg: fmt.Sprintf("Unknown city '%v'", req.Name)})
		return
	}

	s.store.SetLocation(city.Name, city.Coordinates)
	s.mu.Lock()
	s.panel.Open()
	s.mu.Unlock()
	s.refreshWeather(context.Background(), city.Coordinates)

	details, err := s.owLimited.CityWeather(r.Context(), *city)
	if err != nil {
		s.Logger.Warnf("error fetching city weather for panel: %v", err.Error())
		s.writeResponse(w, city)
		return
	}
	s.writeResponse(w, details)
}

func (s *Service) PanelWidthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, CodeError{code: 405, msg: "Method not allowed"})
		return
	}

	var req panelWidthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, CodeError{code: 400, msg: "Invalid panel payload"})
		return
	}

	s.mu.Lock()
	width := s.panel.Drag(req.Width)
	open := s.panel.IsOpen()
	s.mu.Unlock()

	s.writeResponse(w, panelResponse{Open: open, Width: width})
}

func (s *Service) PanelCloseHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, CodeError{code: 405, msg: "Method not allowed"})
		return
	}

	s.mu.Lock()
	s.panel.Close()
	width := s.panel.Width()
	s.mu.Unlock()

	s.writeResponse(w, panelResponse{Open: false, Width: width})
}
