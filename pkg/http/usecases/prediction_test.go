package usecases

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/routepredict/pkg"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/engine/predictor"
	"github.com/lintang-b-s/routepredict/pkg/spatialindex"
	"github.com/lintang-b-s/routepredict/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errModelFailure = errors.New("projection failed")

type stubPredictor struct {
	pred predictor.Prediction
	err  error
}

func (s stubPredictor) PredictRoute(partial da.Route) (predictor.Prediction, error) {
	if len(partial) == 0 {
		return predictor.Prediction{}, predictor.ErrEmptyPartialRoute
	}
	return s.pred, s.err
}

type stubEngine struct {
	predictors map[string]predictor.RoutePredictor
	roads      []spatialindex.RoadCandidate
}

func (e stubEngine) Route(ids []da.ArcID) da.Route {
	r := make(da.Route, 0, len(ids))
	for _, id := range ids {
		r = append(r, da.NewUnorientedArc(id.RoadID))
	}
	return r
}

func (e stubEngine) Predictor(name string) (predictor.RoutePredictor, bool) {
	p, ok := e.predictors[name]
	return p, ok
}

func (e stubEngine) NearestRoads(lat, lon, radius float64, limit int) []spatialindex.RoadCandidate {
	return e.roads
}

func TestPredictionServicePredictRoute(t *testing.T) {
	e := stubEngine{predictors: map[string]predictor.RoutePredictor{
		"ok":     stubPredictor{pred: predictor.Prediction{Route: da.Route{da.NewUnorientedArc(2)}, Outcome: pkg.OUTCOME_COMPLETE}},
		"broken": stubPredictor{err: errModelFailure},
	}}
	ps := NewPredictionService(zap.NewNop(), e)
	ids := []da.ArcID{{RoadID: 1, Direction: pkg.UNORIENTED}}

	testCases := []struct {
		name     string
		model    string
		ids      []da.ArcID
		wantCode error
		wantMsg  string
	}{
		{name: "unknown model", model: "markov", ids: ids, wantCode: util.ErrBadParamInput, wantMsg: `unknown model "markov"`},
		{name: "empty partial route", model: "ok", wantCode: util.ErrBadParamInput, wantMsg: "invalid partial route"},
		{name: "model failure", model: "broken", ids: ids, wantCode: util.ErrInternalServerError, wantMsg: util.MessageInternalServerError},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ps.PredictRoute(tt.ids, tt.model)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantCode)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	_, _, err := ps.PredictRoute(ids, "broken")
	assert.ErrorIs(t, err, errModelFailure)

	partial, pred, err := ps.PredictRoute(ids, "ok")
	require.NoError(t, err)
	assert.Len(t, partial, 1)
	assert.Equal(t, int64(2), pred.Route[0].GetRoadID())
}

func TestPredictionServiceNearestRoads(t *testing.T) {
	ps := NewPredictionService(zap.NewNop(), stubEngine{})
	_, err := ps.NearestRoads(0, 0, 0.1, 10)
	assert.ErrorIs(t, err, util.ErrNotFound)

	ps = NewPredictionService(zap.NewNop(), stubEngine{roads: []spatialindex.RoadCandidate{{RoadID: 4, Distance: 0.01}}})
	roads, err := ps.NearestRoads(0, 0, 0.1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), roads[0].RoadID)
}
