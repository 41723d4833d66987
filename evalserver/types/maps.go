package types

import (
	commontypes "github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/types/venuecontainer"
)

type VenueMap struct {
	*commontypes.SyncMap
}

func NewVenueMap() *VenueMap {
	return &VenueMap{
		commontypes.NewSyncMap(),
	}
}

func (vmap *VenueMap) Get(name string) *venuecontainer.VenueContainer {
	if res, ok := (vmap.GetGeneric(name)).(*venuecontainer.VenueContainer); ok {
		return res
	}

	return nil
}
