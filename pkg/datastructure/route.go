package datastructure

import (
	"github.com/lintang-b-s/routepredict/pkg/geo"
)

// Route is an ordered sequence of arcs. Routes built by the preprocessor never
// repeat an arc.
type Route []Arc

func (r Route) Contains(id ArcID) bool {
	for _, a := range r {
		if a.ID() == id {
			return true
		}
	}
	return false
}

func (r Route) IDs() []ArcID {
	ids := make([]ArcID, len(r))
	for i, a := range r {
		ids[i] = a.ID()
	}
	return ids
}

func (r Route) IDSet() map[ArcID]struct{} {
	set := make(map[ArcID]struct{}, len(r))
	for _, a := range r {
		set[a.ID()] = struct{}{}
	}
	return set
}

func (r Route) Clone() Route {
	if r == nil {
		return nil
	}
	cp := make(Route, len(r))
	copy(cp, r)
	return cp
}

func (r Route) HasDuplicates() bool {
	seen := make(map[ArcID]struct{}, len(r))
	for _, a := range r {
		if _, ok := seen[a.ID()]; ok {
			return true
		}
		seen[a.ID()] = struct{}{}
	}
	return false
}

// Coordinates returns the polyline of the route: the entry of the first arc and the
// exit of every oriented arc.
func (r Route) Coordinates() []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(r)+1)
	for _, a := range r {
		if !a.IsOriented() {
			continue
		}
		if len(coords) == 0 {
			coords = append(coords, a.GetEntry())
		}
		coords = append(coords, a.GetExit())
	}
	return coords
}

// RawRoute is one map-matched trip: parallel road id and coordinate observations.
type RawRoute struct {
	RoadIDs     []int64
	Coordinates []geo.Coordinate
}

func NewRawRoute(roadIDs []int64, coordinates []geo.Coordinate) RawRoute {
	return RawRoute{RoadIDs: roadIDs, Coordinates: coordinates}
}

// RoadEndpoints maps a road id to its two endpoint coordinates. The order of the
// pair defines the FORWARD direction of the road.
type RoadEndpoints map[int64][2]geo.Coordinate

// Set stores the endpoints of roadID. Ambiguous entries (both endpoints equal) are
// ignored and reported false.
func (re RoadEndpoints) Set(roadID int64, a, b geo.Coordinate) bool {
	if a == b {
		return false
	}
	re[roadID] = [2]geo.Coordinate{a, b}
	return true
}

func (re RoadEndpoints) Merge(other RoadEndpoints) {
	for id, ep := range other {
		re.Set(id, ep[0], ep[1])
	}
}
