package evalserver

import (
	"context"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/bytearena/sightline/common/healthcheck"
	"github.com/bytearena/sightline/common/recording"
	"github.com/bytearena/sightline/common/stats"
	commontypes "github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/utils"
	apphandler "github.com/bytearena/sightline/evalserver/handler"
	"github.com/bytearena/sightline/evalserver/types"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	bettererrors "github.com/xtuc/better-errors"
)

type EvalService struct {
	addr    string
	backend *apphandler.Backend
	health  *healthcheck.HealthCheckServer
	server  *http.Server
	lock    sync.Mutex

	// AccessLog receives the combined access log; stdout by default.
	AccessLog io.Writer
}

func NewEvalService(addr string, settings commontypes.Settings, venues *types.VenueMap, recorder recording.Recorder) *EvalService {
	if recorder == nil {
		recorder = recording.MakeEmptyRecorder()
	}

	service := &EvalService{
		addr: addr,
		backend: &apphandler.Backend{
			Venues:   venues,
			Settings: settings,
			Counters: stats.NewCounters(),
			Recorder: recorder,
		},
		health:    healthcheck.NewHealthCheckServer(),
		AccessLog: os.Stdout,
	}

	service.health.Register("settings", settings.Validate)
	service.health.Register("venues", func() error {
		for _, name := range venues.Keys() {
			venue := venues.Get(name)
			if venue == nil {
				continue
			}

			if err := venue.TargetArea().Validate(); err != nil {
				return bettererrors.
					New("Invalid venue target").
					SetContext("venue", name).
					With(err)
			}
		}

		return nil
	})

	return service
}

func (s *EvalService) Counters() *stats.Counters {
	return s.backend.Counters
}

func (s *EvalService) Router() *mux.Router {
	logged := func(handler func(w http.ResponseWriter, r *http.Request)) http.Handler {
		return handlers.CombinedLoggingHandler(s.AccessLog, http.HandlerFunc(handler))
	}

	router := mux.NewRouter()

	router.Handle("/evaluate", logged(apphandler.Evaluate(s.backend))).Methods("POST")
	router.Handle("/evaluate/ws", logged(apphandler.EvaluateStream(s.backend))).Methods("GET")
	router.Handle("/venues", logged(apphandler.Venues(s.backend))).Methods("GET")
	router.Handle("/stats", logged(apphandler.Stats(s.backend))).Methods("GET")
	router.Handle("/health", logged(s.health.Handler())).Methods("GET")

	return router
}

// ListenAndServe blocks until the service is stopped.
func (s *EvalService) ListenAndServe() error {
	s.lock.Lock()
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: handlers.CORS()(s.Router()),
	}
	server := s.server
	s.lock.Unlock()

	utils.Debug("evalserver", "Listening on "+s.addr)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *EvalService) Stop() error {
	s.lock.Lock()
	server := s.server
	s.lock.Unlock()

	if server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
