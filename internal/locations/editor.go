package locations

import (
	"context"
	"errors"

	"roadweather-service/internal/store"
	t "roadweather-service/internal/types"

	"go.uber.org/zap"
)

// State is the location editor's place in its edit/search/select cycle.
type State int

const (
	// StateDisplay shows the current place name, not editable.
	StateDisplay State = iota
	// StateEditing has the text input active with no candidate list.
	StateEditing
	// StateSearching has a candidate fetch in flight.
	StateSearching
	// StateSelecting shows the fetched candidate list.
	StateSelecting
)

func (s State) String() string {
	switch s {
	case StateDisplay:
		return "display"
	case StateEditing:
		return "editing"
	case StateSearching:
		return "searching"
	case StateSelecting:
		return "selecting"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyQuery   = errors.New("location entry cannot be empty")
	ErrNotSelecting = errors.New("no candidate list to select from")
	ErrBadIndex     = errors.New("candidate index out of range")
)

// Geocoder resolves a free-text query to candidate locations.
type Geocoder interface {
	GeoCode(ctx context.Context, query string, limit int) ([]t.GeoCandidate, error)
}

// Editor turns free-text input into a geocoded candidate list and, on
// selection, writes the chosen place into the location store. It is the
// only writer of location state apart from map marker clicks.
type Editor struct {
	store    *store.Store
	geocoder Geocoder
	logger   *zap.SugaredLogger
	limit    int

	state      State
	input      string
	candidates []t.GeoCandidate
}

func NewEditor(s *store.Store, g Geocoder, logger *zap.SugaredLogger) *Editor {
	return &Editor{
		store:    s,
		geocoder: g,
		logger:   logger,
		limit:    5,
		state:    StateDisplay,
	}
}

func (e *Editor) State() State {
	return e.state
}

func (e *Editor) Input() string {
	return e.input
}

func (e *Editor) Candidates() []t.GeoCandidate {
	return e.candidates
}

// StartEdit activates the text input, seeded with the current place name.
func (e *Editor) StartEdit() {
	if e.state != StateDisplay {
		return
	}
	e.input = e.store.Name()
	e.state = StateEditing
}

func (e *Editor) SetInput(input string) {
	if e.state == StateEditing || e.state == StateSelecting {
		e.input = input
	}
}

// Submit runs the candidate search for the current input. An empty query is
// rejected locally: no fetch, no transition, no store change. Zero
// candidates or a fetch failure return the editor to Editing with the list
// cleared.
func (e *Editor) Submit(ctx context.Context) error {
	if e.state != StateEditing && e.state != StateSelecting {
		return nil
	}
	if e.input == "" {
		e.logger.Warnw("empty location query rejected")
		return ErrEmptyQuery
	}

	e.state = StateSearching
	candidates, err := e.geocoder.GeoCode(ctx, e.input, e.limit)
	if err != nil {
		e.logger.Errorw("error fetching potential locations",
			"query", e.input, "error", err.Error())
		e.candidates = nil
		e.state = StateEditing
		return err
	}
	if len(candidates) == 0 {
		e.logger.Errorw("no locations found for query", "query", e.input)
		e.candidates = nil
		e.state = StateEditing
		return nil
	}

	e.candidates = candidates
	e.state = StateSelecting
	return nil
}

// Select commits candidate i: its composed display name and coordinates are
// written into the store and the editor returns to Display.
func (e *Editor) Select(i int) error {
	if e.state != StateSelecting {
		return ErrNotSelecting
	}
	if i < 0 || i >= len(e.candidates) {
		return ErrBadIndex
	}

	chosen := e.candidates[i]
	name := chosen.DisplayName()
	e.store.SetLocation(name, t.Coordinates{Lat: chosen.Lat, Lng: chosen.Lon})

	e.input = name
	e.candidates = nil
	e.state = StateDisplay
	return nil
}

// Cancel toggles edit mode off. The toggle is blocked while the input is
// empty so the store can never end up displaying an empty name.
func (e *Editor) Cancel() error {
	switch e.state {
	case StateEditing, StateSelecting:
		if e.input == "" {
			e.logger.Warnw("empty location query rejected")
			return ErrEmptyQuery
		}
		e.candidates = nil
		e.state = StateDisplay
	}
	return nil
}
