package preprocessor

import (
	"iter"
	"math"
	"slices"

	"github.com/lintang-b-s/routepredict/pkg"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/geo"
	"github.com/lintang-b-s/routepredict/pkg/util"
)

// progressions shorter than this (km) carry no direction evidence
const directionEpsilon = 1e-6

// observation run: consecutive observations on the same road
type run struct {
	roadID      int64
	first, last int
}

func splitRuns(roadIDs []int64) []run {
	runs := make([]run, 0, len(roadIDs))
	for i, id := range roadIDs {
		if len(runs) > 0 && runs[len(runs)-1].roadID == id {
			runs[len(runs)-1].last = i
			continue
		}
		runs = append(runs, run{roadID: id, first: i, last: i})
	}
	return runs
}

/*
ToDirectedArcs. converts a map-matched trace into one directed arc per run of observations on the same road.

direction of a run on road (a,b):
 1. project the first and last observation of the run onto segment a-b; moving away from a means a->b (FORWARD),
    moving towards a means b->a (BACKWARD).
 2. single observation (or no progression): the endpoint closest to the first observation of the next run is the exit.
 3. last run: the endpoint closest to the last observation of the previous run is the entry.
 4. no evidence at all: FORWARD.

roads missing from endpoints become UNORIENTED arcs.
*/
func ToDirectedArcs(raw da.RawRoute, endpoints da.RoadEndpoints) (da.Route, error) {
	if len(raw.RoadIDs) != len(raw.Coordinates) {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"route has %d road ids but %d coordinates", len(raw.RoadIDs), len(raw.Coordinates))
	}

	runs := splitRuns(raw.RoadIDs)
	route := make(da.Route, 0, len(runs))
	for i, r := range runs {
		ep, ok := endpoints[r.roadID]
		if !ok {
			route = append(route, da.NewUnorientedArc(r.roadID))
			continue
		}

		dir := runDirection(raw.Coordinates, runs, i, ep[0], ep[1])
		route = append(route, da.NewArcFromEndpoints(r.roadID, dir, endpoints))
	}
	return route, nil
}

func runDirection(coords []geo.Coordinate, runs []run, i int, a, b geo.Coordinate) pkg.Direction {
	r := runs[i]
	if r.first != r.last {
		from := geo.DistanceAlongSegment(a, b, coords[r.first])
		to := geo.DistanceAlongSegment(a, b, coords[r.last])
		if math.Abs(to-from) > directionEpsilon {
			if to > from {
				return pkg.FORWARD
			}
			return pkg.BACKWARD
		}
	}

	if i+1 < len(runs) {
		next := coords[runs[i+1].first]
		distA, distB := geo.Distance(a, next), geo.Distance(b, next)
		if math.Abs(distA-distB) > directionEpsilon {
			if distB < distA {
				return pkg.FORWARD
			}
			return pkg.BACKWARD
		}
	}

	if i > 0 {
		prev := coords[runs[i-1].last]
		distA, distB := geo.Distance(a, prev), geo.Distance(b, prev)
		if math.Abs(distA-distB) > directionEpsilon {
			if distA < distB {
				return pkg.FORWARD
			}
			return pkg.BACKWARD
		}
	}

	return pkg.FORWARD
}

// RemoveDuplicates lazily yields the arcs of seq, dropping every arc that was
// already yielded.
func RemoveDuplicates(seq iter.Seq[da.Arc]) iter.Seq[da.Arc] {
	return func(yield func(da.Arc) bool) {
		seen := make(map[da.ArcID]struct{})
		for a := range seq {
			if _, ok := seen[a.ID()]; ok {
				continue
			}
			seen[a.ID()] = struct{}{}
			if !yield(a) {
				return
			}
		}
	}
}

// Preprocess. directed, duplicate-free route of a raw trace
func Preprocess(raw da.RawRoute, endpoints da.RoadEndpoints) (da.Route, error) {
	arcs, err := ToDirectedArcs(raw, endpoints)
	if err != nil {
		return nil, err
	}
	route := slices.Collect(RemoveDuplicates(slices.Values(arcs)))
	if route == nil {
		route = da.Route{}
	}
	return route, nil
}
