package controllers

import (
	"github.com/lintang-b-s/routepredict/pkg"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/engine/predictor"
	"github.com/lintang-b-s/routepredict/pkg/spatialindex"
	"github.com/lintang-b-s/routepredict/pkg/util"
	"github.com/twpayne/go-polyline"
)

type arcRequest struct {
	RoadID    int64  `json:"road_id" validate:"gte=0"`
	Direction string `json:"direction" validate:"required,oneof=forward backward unoriented"`
}

type predictRouteRequest struct {
	Arcs  []arcRequest `json:"arcs" validate:"required,min=1,dive"`
	Model string       `json:"model" validate:"omitempty,oneof=simmons simmons_pca"`
}

func (r predictRouteRequest) arcIDs() []da.ArcID {
	ids := make([]da.ArcID, len(r.Arcs))
	for i, arc := range r.Arcs {
		ids[i] = da.ArcID{RoadID: arc.RoadID, Direction: pkg.GetDirection(arc.Direction)}
	}
	return ids
}

type arcResponse struct {
	RoadID    int64  `json:"road_id"`
	Direction string `json:"direction"`
}

type predictRouteResponse struct {
	Model       string        `json:"model"`
	Arcs        []arcResponse `json:"arcs"`
	Confidence  float64       `json:"confidence"`
	Outcome     string        `json:"outcome"`
	DroppedArcs int           `json:"dropped_arcs"`
	// polylines (precision 5) of the oriented arcs; empty when no arc is oriented
	PartialPath   string `json:"partial_path"`
	PredictedPath string `json:"predicted_path"`
}

// predictionsResponse holds one prediction per requested model, both models when the
// request names none.
type predictionsResponse struct {
	Predictions []predictRouteResponse `json:"predictions"`
}

func NewPredictRouteResponse(model string, partial da.Route, pred predictor.Prediction) predictRouteResponse {
	arcs := make([]arcResponse, 0, len(pred.Route))
	for _, arc := range pred.Route {
		arcs = append(arcs, arcResponse{RoadID: arc.GetRoadID(), Direction: arc.GetDirection().String()})
	}

	return predictRouteResponse{
		Model:         model,
		Arcs:          arcs,
		Confidence:    pred.Confidence,
		Outcome:       pred.Outcome.String(),
		DroppedArcs:   pred.DroppedArcs,
		PartialPath:   encodePath(partial),
		PredictedPath: encodePath(pred.Route),
	}
}

func encodePath(route da.Route) string {
	coords := route.Coordinates()
	if len(coords) == 0 {
		return ""
	}
	points := make([][]float64, len(coords))
	for i, c := range coords {
		points[i] = []float64{c.GetLat(), c.GetLon()}
	}
	return string(polyline.EncodeCoords(points))
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type nearestRoadsRequest struct {
	Lat    float64 `validate:"min=-90,max=90"`
	Lon    float64 `validate:"min=-180,max=180"`
	Radius float64 `validate:"gt=0,lte=5"`
	Limit  int     `validate:"gte=1,lte=100"`
}

// Distance in km, rounded to millimetres.
type roadResponse struct {
	RoadID   int64   `json:"road_id"`
	Distance float64 `json:"distance"`
}

func NewNearestRoadsResponse(roads []spatialindex.RoadCandidate) []roadResponse {
	resp := make([]roadResponse, len(roads))
	for i, r := range roads {
		resp[i] = roadResponse{RoadID: r.RoadID, Distance: util.RoundFloat(r.Distance, 6)}
	}
	return resp
}
