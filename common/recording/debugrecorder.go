package recording

import (
	"github.com/bytearena/sightline/common/utils"
	uuid "github.com/satori/go.uuid"
)

// DebugRecorder logs events as JSON lines through utils.Debug.
type DebugRecorder struct {
	service string
}

func MakeDebugRecorder(service string) DebugRecorder {
	return DebugRecorder{service: service}
}

func (r DebugRecorder) Record(event Event) {
	ctx := utils.Context{
		"level": string(event.Level),
		"kind":  string(event.Kind),
	}

	if !uuid.Equal(event.SpectatorID, uuid.Nil) {
		ctx["spectator"] = event.SpectatorID.String()
	}

	utils.DebugWithContext(r.service, event.Message, ctx)
}
