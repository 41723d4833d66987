package handler

import (
	"context"
	"net/http"

	"github.com/bytearena/sightline/avalue"
	"github.com/bytearena/sightline/common/recording"
	commontypes "github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/utils"
	"github.com/bytearena/sightline/evalserver/types"
	"github.com/gorilla/websocket"
)

type streamDone struct {
	Count  int               `json:"count"`
	Events []recording.Event `json:"events"`
}

// EvaluateStream reads one request from the socket and streams each result
// as soon as it is computed. Closing the socket cancels the evaluation.
func EvaluateStream(backend *Backend) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			utils.Debug("evalserver", "upgrade: "+err.Error())
			return
		}

		defer c.Close()

		var req types.EvaluateRequest
		if err := c.ReadJSON(&req); err != nil {
			c.WriteJSON(types.StreamMessage{Type: "error", Data: err.Error()})
			return
		}

		input, _, err := backend.prepare(req)
		if err != nil {
			c.WriteJSON(types.StreamMessage{Type: "error", Data: err.Error()})
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// mandatory to notice when the socket is closed client side
		go func(client *websocket.Conn) {
			for {
				if _, _, err := client.ReadMessage(); err != nil {
					cancel()
					return
				}
			}
		}(c)

		memory := recording.NewMemoryRecorder()
		var writeErr error

		evaluator := avalue.NewEvaluator(
			recording.MultiRecorder{memory, backend.Recorder},
			avalue.WithCounters(backend.Counters),
			avalue.WithResultHook(func(result commontypes.Result) {
				if writeErr != nil {
					return
				}

				if writeErr = c.WriteJSON(types.StreamMessage{Type: "result", Data: result}); writeErr != nil {
					cancel()
				}
			}),
		)

		results := evaluator.Evaluate(ctx, input.audience, &input.settings, input.target)

		if writeErr == nil {
			c.WriteJSON(types.StreamMessage{Type: "done", Data: streamDone{
				Count:  len(results),
				Events: memory.Events(),
			}})
		}
	}
}
