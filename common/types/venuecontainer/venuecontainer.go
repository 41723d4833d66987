package venuecontainer

import (
	"encoding/json"
	"io/ioutil"

	"github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/utils/number"
	"github.com/bytearena/sightline/common/utils/vector"
	uuid "github.com/satori/go.uuid"
	bettererrors "github.com/xtuc/better-errors"
)

type VenueContainer struct {
	Meta struct {
		Readme string `json:"readme"`
		Name   string `json:"name"`
		Date   string `json:"date"`
	} `json:"meta"`
	Data struct {
		Target     VenuePolygon     `json:"target"`
		Spectators []VenueSpectator `json:"spectators"`
		Cone       *VenueCone       `json:"cone,omitempty"`
	} `json:"data"`
}

type VenuePoint struct {
	X float64
	Y float64
	Z float64
}

func (p VenuePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64{
		number.ToFixed(p.X, 5),
		number.ToFixed(p.Y, 5),
		number.ToFixed(p.Z, 5),
	})
}

func (a *VenuePoint) UnmarshalJSON(b []byte) error {
	var floats []float64
	if err := json.Unmarshal(b, &floats); err != nil {
		return err
	}

	if len(floats) != 3 {
		return bettererrors.
			New("Venue point must have 3 coordinates").
			SetContext("coordinates", string(b))
	}

	a.X = floats[0]
	a.Y = floats[1]
	a.Z = floats[2]

	return nil
}

func (p VenuePoint) Vector3() vector.Vector3 {
	return vector.MakeVector3(p.X, p.Y, p.Z)
}

type VenuePolygon struct {
	Points []VenuePoint
}

func (p VenuePolygon) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Points)
}

func (a *VenuePolygon) UnmarshalJSON(b []byte) error {
	var points []VenuePoint
	if err := json.Unmarshal(b, &points); err != nil {
		return err
	}

	a.Points = points

	return nil
}

func (p VenuePolygon) Vectors() []vector.Vector3 {
	res := make([]vector.Vector3, len(p.Points))
	for i, point := range p.Points {
		res[i] = point.Vector3()
	}

	return res
}

type VenueSpectator struct {
	Id        string        `json:"id,omitempty"`
	Label     string        `json:"label"`
	Eye       VenuePoint    `json:"eye"`
	Direction VenuePoint    `json:"direction"`
	Head      *VenuePolygon `json:"head,omitempty"`
}

// VenueCone is a field of view boundary table, (horizontal, vertical)
// angles in degrees.
type VenueCone struct {
	Angles [][2]float64 `json:"angles"`
}

func Load(filename string) (*VenueContainer, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, bettererrors.
			New("Could not read venue").
			SetContext("file", filename).
			With(bettererrors.NewFromErr(err))
	}

	venue, err := Parse(data)
	if err != nil {
		return nil, bettererrors.
			New("Could not parse venue").
			SetContext("file", filename).
			With(err)
	}

	return venue, nil
}

func Parse(data []byte) (*VenueContainer, error) {
	var venue VenueContainer
	if err := json.Unmarshal(data, &venue); err != nil {
		return nil, bettererrors.NewFromErr(err)
	}

	return &venue, nil
}

// Audience keeps the declared order. Spectators without a UUID get the one
// derived from their label.
func (v *VenueContainer) Audience() (types.Audience, error) {
	audience := make(types.Audience, len(v.Data.Spectators))

	for i, s := range v.Data.Spectators {
		spectator := types.MakeSpectator(s.Label, s.Eye.Vector3(), s.Direction.Vector3())

		if s.Id != "" {
			id, err := uuid.FromString(s.Id)
			if err != nil {
				return nil, bettererrors.
					New("Invalid spectator id").
					SetContext("label", s.Label).
					SetContext("id", s.Id)
			}
			spectator.ID = id
		}

		if s.Head != nil {
			spectator.HeadOutline = s.Head.Vectors()
		}

		audience[i] = spectator
	}

	return audience, nil
}

func (v *VenueContainer) TargetArea() *types.TargetArea {
	return types.MakeTargetArea(v.Data.Target.Vectors())
}

// ViewCone returns nil when the venue does not carry its own cone.
func (v *VenueContainer) ViewCone(near float64) (*types.ViewCone, error) {
	if v.Data.Cone == nil {
		return nil, nil
	}

	angles := make([]vector.Vector2, len(v.Data.Cone.Angles))
	for i, a := range v.Data.Cone.Angles {
		angles[i] = vector.MakeVector2(a[0], a[1])
	}

	return types.ViewConeFromAngles(angles, near)
}

func FromAudience(name string, audience types.Audience, target *types.TargetArea) *VenueContainer {
	venue := &VenueContainer{}
	venue.Meta.Name = name

	for _, p := range target.Outline {
		venue.Data.Target.Points = append(venue.Data.Target.Points, fromVector3(p))
	}

	for _, s := range audience {
		spectator := VenueSpectator{
			Id:        s.ID.String(),
			Label:     s.Label,
			Eye:       fromVector3(s.Eye),
			Direction: fromVector3(s.ViewDirection),
		}

		if len(s.HeadOutline) > 0 {
			head := VenuePolygon{}
			for _, p := range s.HeadOutline {
				head.Points = append(head.Points, fromVector3(p))
			}
			spectator.Head = &head
		}

		venue.Data.Spectators = append(venue.Data.Spectators, spectator)
	}

	return venue
}

func fromVector3(v vector.Vector3) VenuePoint {
	x, y, z := v.Get()
	return VenuePoint{X: x, Y: y, Z: z}
}

/*
{
    "meta": {
        "readme": "North stand, lower tier",
        "name": "north-lower",
        "date": "2017-06-01 00:00:00Z"
    },
    "data": {
        "target": [[-52.5, -34, 0], [52.5, -34, 0], [52.5, 34, 0], [-52.5, 34, 0]],
        "spectators": [
            {
                "label": "N-A-1",
                "eye": [0, -40, 2.1],
                "direction": [0, 1, -0.2]
            }
        ]
    }
}
*/
