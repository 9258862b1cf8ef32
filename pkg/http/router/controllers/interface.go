package controllers

import (
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/engine/predictor"
	"github.com/lintang-b-s/routepredict/pkg/spatialindex"
)

type PredictionService interface {
	PredictRoute(ids []da.ArcID, model string) (da.Route, predictor.Prediction, error)
	NearestRoads(lat, lon, radius float64, limit int) ([]spatialindex.RoadCandidate, error)
}
