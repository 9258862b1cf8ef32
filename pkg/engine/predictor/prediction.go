package predictor

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/routepredict/pkg"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
)

var (
	ErrEmptyPartialRoute = errors.New("partial route is empty")
	ErrModelNotTrained   = errors.New("model has not been trained")
	ErrEmptyCorpus       = errors.New("training corpus contains no arcs")
)

// RoutePredictor predicts the continuation of a partially observed route.
type RoutePredictor interface {
	PredictRoute(partial da.Route) (Prediction, error)
}

// Prediction is the continuation of a partial route (the partial itself is not
// included). Cyclic and truncated outcomes still carry every arc predicted before
// the stop.
type Prediction struct {
	Route      da.Route
	Confidence float64
	Outcome    pkg.Outcome
	// CycleArc is the arc that would have been revisited, set for OUTCOME_CYCLIC.
	CycleArc da.Arc
	// DroppedArcs counts partial arcs unknown to the model and ignored during encoding.
	DroppedArcs int
}

func (p Prediction) IsCyclic() bool {
	return p.Outcome == pkg.OUTCOME_CYCLIC
}

// Err returns a *CyclicRouteError for cyclic predictions and nil otherwise.
func (p Prediction) Err() error {
	if p.Outcome != pkg.OUTCOME_CYCLIC {
		return nil
	}
	return &CyclicRouteError{Route: p.Route.Clone(), Arc: p.CycleArc}
}

// CyclicRouteError reports that extending a route would revisit Arc. Route holds the
// continuation predicted before the cycle was detected.
type CyclicRouteError struct {
	Route da.Route
	Arc   da.Arc
}

func (e *CyclicRouteError) Error() string {
	return fmt.Sprintf("cyclic route: arc %s already visited after %d predicted arcs", e.Arc, len(e.Route))
}

func completed(route da.Route, confidence float64) Prediction {
	return Prediction{Route: route, Confidence: confidence, Outcome: pkg.OUTCOME_COMPLETE}
}

func cyclic(route da.Route, confidence float64, arc da.Arc) Prediction {
	return Prediction{Route: route, Confidence: confidence, Outcome: pkg.OUTCOME_CYCLIC, CycleArc: arc}
}

func truncated(route da.Route, confidence float64) Prediction {
	return Prediction{Route: route, Confidence: confidence, Outcome: pkg.OUTCOME_TRUNCATED}
}
