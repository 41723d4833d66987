package types

import (
	"math"

	"github.com/bytearena/sightline/common/geometry"
	"github.com/bytearena/sightline/common/utils/vector"
	uuid "github.com/satori/go.uuid"
)

// SpectatorNamespace seeds the name based identifiers of spectators, so that
// a seat label always maps to the same ID.
var SpectatorNamespace = uuid.NewV5(uuid.NamespaceURL, "https://bytearena.com/sightline/spectator")

// headOutlineSegments is the resolution of generated head outlines.
const headOutlineSegments = 16

type Spectator struct {
	ID            uuid.UUID
	Label         string
	Eye           vector.Vector3
	ViewDirection vector.Vector3

	// HeadOutline is a closed polygon; generated from the head size when nil.
	HeadOutline []vector.Vector3
}

func MakeSpectator(label string, eye vector.Vector3, viewDirection vector.Vector3) Spectator {
	return Spectator{
		ID:            uuid.NewV5(SpectatorNamespace, label),
		Label:         label,
		Eye:           eye,
		ViewDirection: viewDirection,
	}
}

// HeadOutlineFor returns the spectator's head silhouette: the stored outline
// when present, otherwise an ellipse of the given size centered on the eye,
// standing in the vertical plane facing the spectator's view direction.
// The spectator is never modified.
func (s Spectator) HeadOutlineFor(width, height float64) []vector.Vector3 {
	if len(s.HeadOutline) > 0 {
		outline := make([]vector.Vector3, len(s.HeadOutline))
		copy(outline, s.HeadOutline)
		return outline
	}

	up := vector.MakeVector3(0, 0, 1)
	lateral := up.Cross(s.ViewDirection.Horizontal()).Normalize()
	if lateral.IsNull() {
		lateral = vector.MakeVector3(1, 0, 0)
	}

	outline := make([]vector.Vector3, 0, headOutlineSegments+1)
	for i := 0; i < headOutlineSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(headOutlineSegments)

		outline = append(outline, s.Eye.
			Add(lateral.MultScalar(width/2*math.Cos(angle))).
			Add(up.MultScalar(height/2*math.Sin(angle))),
		)
	}

	return geometry.Close(outline)
}

func (s Spectator) Clone() Spectator {
	clone := s
	if s.HeadOutline != nil {
		clone.HeadOutline = make([]vector.Vector3, len(s.HeadOutline))
		copy(clone.HeadOutline, s.HeadOutline)
	}

	return clone
}

// Audience is an ordered collection of spectators, owned by the caller.
type Audience []Spectator

// Clone is the read-only snapshot shared by evaluation workers.
func (a Audience) Clone() Audience {
	if a == nil {
		return nil
	}

	clone := make(Audience, len(a))
	for i, s := range a {
		clone[i] = s.Clone()
	}

	return clone
}

func (a Audience) Eyes() []vector.Vector3 {
	eyes := make([]vector.Vector3, len(a))
	for i, s := range a {
		eyes[i] = s.Eye
	}

	return eyes
}
