package usecases

import (
	"errors"

	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/engine/predictor"
	"github.com/lintang-b-s/routepredict/pkg/spatialindex"
	"github.com/lintang-b-s/routepredict/pkg/util"
	"go.uber.org/zap"
)

type PredictionService struct {
	log    *zap.Logger
	engine PredictionEngine
}

func NewPredictionService(log *zap.Logger, engine PredictionEngine) *PredictionService {
	return &PredictionService{
		log:    log,
		engine: engine,
	}
}

// PredictRoute predicts the continuation of the partial route given by arc ids. The
// partial route is returned alongside the prediction so callers can render both.
func (ps *PredictionService) PredictRoute(ids []da.ArcID, model string) (da.Route, predictor.Prediction, error) {
	p, ok := ps.engine.Predictor(model)
	if !ok {
		return nil, predictor.Prediction{}, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown model %q", model)
	}

	partial := ps.engine.Route(ids)
	pred, err := p.PredictRoute(partial)
	if err != nil {
		if errors.Is(err, predictor.ErrEmptyPartialRoute) {
			return nil, predictor.Prediction{}, util.WrapErrorf(err, util.ErrBadParamInput, "invalid partial route")
		}
		return nil, predictor.Prediction{}, util.WrapErrorf(err, util.ErrInternalServerError, "%s", util.MessageInternalServerError)
	}

	if pred.IsCyclic() {
		ps.log.Debug("cyclic route prediction", zap.String("model", model), zap.Error(pred.Err()))
	}
	return partial, pred, nil
}

// NearestRoads returns the roads around a coordinate, for clients building the arcs of
// a partial route.
func (ps *PredictionService) NearestRoads(lat, lon, radius float64, limit int) ([]spatialindex.RoadCandidate, error) {
	roads := ps.engine.NearestRoads(lat, lon, radius, limit)
	if len(roads) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrNotFound, "no road within %.3f km of (%f, %f)", radius, lat, lon)
	}
	return roads, nil
}
