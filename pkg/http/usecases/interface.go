package usecases

import (
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/engine/predictor"
	"github.com/lintang-b-s/routepredict/pkg/spatialindex"
)

type PredictionEngine interface {
	Route(ids []da.ArcID) da.Route
	Predictor(name string) (predictor.RoutePredictor, bool)
	NearestRoads(lat, lon, radius float64, limit int) []spatialindex.RoadCandidate
}
