package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/routepredict/pkg"
	"github.com/lintang-b-s/routepredict/pkg/geo"
)

// ArcID identifies a directed traversal of one road. Two arcs are the same arc iff
// their ArcIDs are equal.
type ArcID struct {
	RoadID    int64
	Direction pkg.Direction
}

func NewArcID(roadID int64, direction pkg.Direction) ArcID {
	return ArcID{RoadID: roadID, Direction: direction}
}

func (id ArcID) String() string {
	return fmt.Sprintf("%d:%s", id.RoadID, id.Direction)
}

type Arc struct {
	id    ArcID
	entry geo.Coordinate
	exit  geo.Coordinate
}

func NewArc(roadID int64, direction pkg.Direction, entry, exit geo.Coordinate) Arc {
	return Arc{
		id:    NewArcID(roadID, direction),
		entry: entry,
		exit:  exit,
	}
}

// NewUnorientedArc. arc for a road whose endpoints are unknown
func NewUnorientedArc(roadID int64) Arc {
	return Arc{id: NewArcID(roadID, pkg.UNORIENTED)}
}

// NewArcFromEndpoints builds the arc traversing road roadID in the given direction,
// taking entry/exit coordinates from the endpoint lookup.
func NewArcFromEndpoints(roadID int64, direction pkg.Direction, endpoints RoadEndpoints) Arc {
	ep, ok := endpoints[roadID]
	if !ok || direction == pkg.UNORIENTED {
		return NewUnorientedArc(roadID)
	}
	if direction == pkg.FORWARD {
		return NewArc(roadID, direction, ep[0], ep[1])
	}
	return NewArc(roadID, direction, ep[1], ep[0])
}

func (a Arc) ID() ArcID {
	return a.id
}

func (a Arc) GetRoadID() int64 {
	return a.id.RoadID
}

func (a Arc) GetDirection() pkg.Direction {
	return a.id.Direction
}

func (a Arc) GetEntry() geo.Coordinate {
	return a.entry
}

func (a Arc) GetExit() geo.Coordinate {
	return a.exit
}

func (a Arc) IsOriented() bool {
	return a.id.Direction != pkg.UNORIENTED
}

// Equal compares by road id and direction only.
func (a Arc) Equal(b Arc) bool {
	return a.id == b.id
}

// Length. haversine length of the arc in km, 0 for unoriented arcs
func (a Arc) Length() float64 {
	if !a.IsOriented() {
		return 0
	}
	return geo.Distance(a.entry, a.exit)
}

func (a Arc) String() string {
	return a.id.String()
}
