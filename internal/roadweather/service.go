package roadweather

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"roadweather-service/internal/cache"
	"roadweather-service/internal/cities"
	"roadweather-service/internal/genai"
	"roadweather-service/internal/geomap"
	"roadweather-service/internal/locations"
	"roadweather-service/internal/openroute"
	"roadweather-service/internal/openweather"
	"roadweather-service/internal/store"
	"roadweather-service/internal/weatherapi"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ForecastPointCap bounds the hourly forecast list shown on the dashboard.
const ForecastPointCap = 25

type CodeError struct {
	code int
	msg  string
}

func (c CodeError) Error() string {
	return c.msg
}

type errorResponse struct {
	Error string `json:"error"`
}

// Service owns the application state and the provider clients, and exposes
// the dashboard's HTTP surface. All cross-widget coordination happens
// through the store; handlers never call each other.
type Service struct {
	ow           *openweather.Client
	owLimited    *openweather.RateLimitedClient
	route        *openroute.Client
	alerts       *weatherapi.Client
	gen          *genai.Client
	cities       *cities.DB
	rc           *redis.Client
	cache        *cache.ConditionsCache
	disableRedis bool

	store    *store.Store
	carousel *store.Carousel
	editor   *locations.Editor
	overlay  *geomap.Overlay
	panel    *geomap.Panel

	// mu serializes access to the single-session editor, carousel and
	// panel state machines.
	mu sync.Mutex

	Logger *zap.SugaredLogger
}

func New() *Service {
	s := &Service{}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	s.Logger = baseLogger.Sugar()

	s.ow = openweather.New(
		openweather.ApiKeyOption(os.Getenv("openweather_apikey")),
		openweather.BaseUrlOption(os.Getenv("openweather_baseurl")),
		openweather.TileBaseUrlOption(os.Getenv("openweather_tilebaseurl")),
	)
	s.owLimited = openweather.NewRateLimited(s.ow, 1.0, 5)

	s.route = openroute.New(
		openroute.ApiKeyOption(os.Getenv("openroute_apikey")),
		openroute.BaseUrlOption(os.Getenv("openroute_baseurl")),
	)

	s.alerts = weatherapi.New(
		weatherapi.ApiKeyOption(os.Getenv("weatherapi_apikey")),
		weatherapi.BaseUrlOption(os.Getenv("weatherapi_baseurl")),
	)

	s.gen = genai.New(
		genai.ApiKeyOption(os.Getenv("genai_apikey")),
		genai.BaseUrlOption(os.Getenv("genai_baseurl")),
		genai.ModelOption(os.Getenv("genai_model")),
	)

	cityPath := os.Getenv("cities_db_path")
	if cityPath == "" {
		cityPath = "cities.db"
	}
	cityDB, err := cities.Open(cityPath)
	if err != nil {
		s.Logger.Fatalw("error opening city database", "path", cityPath, "error", err.Error())
	}
	if err := cityDB.EnsureSeeded(context.Background()); err != nil {
		s.Logger.Fatalw("error seeding city database", "path", cityPath, "error", err.Error())
	}
	s.cities = cityDB

	s.rc = redis.NewClient(&redis.Options{
		Addr: os.Getenv("redis_address"),
	})
	disableRedis, err := strconv.ParseBool(os.Getenv("disable_redis"))
	if err == nil {
		s.disableRedis = disableRedis
	}
	s.cache = cache.New(s.rc, 10*time.Minute)

	s.store = store.New()
	s.carousel = store.NewCarousel(s.store)
	s.editor = locations.NewEditor(s.store, s.ow, s.Logger)
	s.overlay = geomap.NewOverlay(s.cities, s.owLimited, s.Logger)
	s.panel = geomap.NewPanel(0.2, 0.6)

	return s
}

func (s *Service) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HealthHandler)
	mux.HandleFunc("/state", s.StateHandler)
	mux.HandleFunc("/conditions", s.ConditionsHandler)
	mux.HandleFunc("/forecast", s.ForecastHandler)
	mux.HandleFunc("/advice", s.AdviceHandler)
	mux.HandleFunc("/alerts", s.AlertsHandler)
	mux.HandleFunc("/journey", s.JourneyHandler)
	mux.HandleFunc("/location", s.LocationHandler)
	mux.HandleFunc("/location/search", s.SearchHandler)
	mux.HandleFunc("/location/select", s.SelectHandler)
	mux.HandleFunc("/vehicle/step", s.VehicleStepHandler)
	mux.HandleFunc("/overlay", s.OverlayHandler)
	mux.HandleFunc("/overlay/select", s.OverlaySelectHandler)
	mux.HandleFunc("/panel/width", s.PanelWidthHandler)
	mux.HandleFunc("/panel/close", s.PanelCloseHandler)

	_ = http.ListenAndServe(":80", mux)
}

func (s *Service) writeError(w http.ResponseWriter, err error) {
	codeErr, ok := err.(CodeError)
	if ok {
		bodyBytes, _ := json.Marshal(errorResponse{Error: codeErr.Error()})
		w.WriteHeader(codeErr.code)
		io.WriteString(w, string(bodyBytes))
	} else {
		w.WriteHeader(500)
		io.WriteString(w, "Internal server error")
	}
}

func (s *Service) writeResponse(w http.ResponseWriter, resp interface{}) {
	bodyBytes, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	_, _ = w.Write(bodyBytes)
}
