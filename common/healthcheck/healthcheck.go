package healthcheck

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/bytearena/sightline/common/utils"
)

var marshal = json.Marshal

type HealthCheckServer struct {
	checkers []namedChecker
	lock     *sync.RWMutex
}

type HealthChecks struct {
	Name   string
	Status bool
	Error  string `json:",omitempty"`
}

type HealthCheckHttpResponse struct {
	Checks     []HealthChecks
	StatusCode int
}

type HealthCheckHandler func() error

type namedChecker struct {
	name    string
	handler HealthCheckHandler
}

func NewHealthCheckServer() *HealthCheckServer {
	return &HealthCheckServer{
		checkers: make([]namedChecker, 0),
		lock:     &sync.RWMutex{},
	}
}

func (server *HealthCheckServer) Register(name string, handler HealthCheckHandler) {
	server.lock.Lock()
	server.checkers = append(server.checkers, namedChecker{name, handler})
	server.lock.Unlock()
}

func (server *HealthCheckServer) Run() HealthCheckHttpResponse {
	res := HealthCheckHttpResponse{
		Checks:     make([]HealthChecks, 0),
		StatusCode: http.StatusOK,
	}

	server.lock.RLock()
	defer server.lock.RUnlock()

	for _, checker := range server.checkers {
		check := HealthChecks{Name: checker.name, Status: true}

		if err := checker.handler(); err != nil {
			check.Status = false
			check.Error = err.Error()
			res.StatusCode = http.StatusInternalServerError
		}

		res.Checks = append(res.Checks, check)
	}

	return res
}

func (server *HealthCheckServer) Handler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		res := server.Run()

		data, err := marshal(res)
		if err != nil {
			utils.Debug("healthcheck", "Failed to marshal response: "+err.Error())
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(res.StatusCode)
		w.Write(data)
	}
}
