package spatialindex

import (
	"math"
	"sort"

	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// RoadCandidate is a road near a query point and its distance (km) from the point.
type RoadCandidate struct {
	RoadID   int64
	Distance float64
}

type road struct {
	id   int64
	a, b geo.Coordinate
}

// Rtree indexes the roads of an endpoint lookup by the bounding box of their segment.
type Rtree struct {
	tr *rtree.RTreeG[road]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[road]
	return &Rtree{
		tr: &tr,
	}
}

// Build. inserts every road of endpoints, its bounding box padded by boundingBoxRadius (km)
func (rt *Rtree) Build(endpoints da.RoadEndpoints, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("roads", len(endpoints)))
	for id, ep := range endpoints {
		lowerALat, lowerALon := geo.GetDestinationPoint(ep[0].Lat, ep[0].Lon, 225, boundingBoxRadius)
		upperALat, upperALon := geo.GetDestinationPoint(ep[0].Lat, ep[0].Lon, 45, boundingBoxRadius)

		lowerBLat, lowerBLon := geo.GetDestinationPoint(ep[1].Lat, ep[1].Lon, 225, boundingBoxRadius)
		upperBLat, upperBLon := geo.GetDestinationPoint(ep[1].Lat, ep[1].Lon, 45, boundingBoxRadius)

		minLat := math.Min(lowerALat, lowerBLat)
		minLon := math.Min(lowerALon, lowerBLon)
		maxLat := math.Max(upperALat, upperBLat)
		maxLon := math.Max(upperALon, upperBLon)

		rt.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, road{id: id, a: ep[0], b: ep[1]})
	}
	log.Info("R-tree spatial index built.")
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius returns up to limit roads whose segment lies within radius (km) of
// (qLat, qLon), closest first.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64, limit int) []RoadCandidate {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)
	q := geo.NewCoordinate(qLat, qLon)

	results := make([]RoadCandidate, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data road) bool {
			snap := geo.ProjectPointToLineCoord(data.a, data.b, q)
			if d := geo.Distance(q, snap); d <= radius {
				results = append(results, RoadCandidate{RoadID: data.id, Distance: d})
			}
			return true
		})

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].RoadID < results[j].RoadID
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
