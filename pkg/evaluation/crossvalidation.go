package evaluation

import (
	"context"

	"github.com/lintang-b-s/routepredict/pkg"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/engine/predictor"
	"github.com/lintang-b-s/routepredict/pkg/metrics"
	"github.com/lintang-b-s/routepredict/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type CrossValidation struct {
	cfg       Config
	routes    []da.Route
	endpoints da.RoadEndpoints
	log       *zap.Logger
}

// NewCrossValidation. routes and endpoints are only read, folds never modify them.
func NewCrossValidation(routes []da.Route, endpoints da.RoadEndpoints, cfg Config, log *zap.Logger) (*CrossValidation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &CrossValidation{
		cfg:       cfg,
		routes:    routes,
		endpoints: endpoints,
		log:       log,
	}, nil
}

/*
Run. k-fold cross validation of the frequency model and the reduced-space model.

for every fold: fresh models are trained on the routes of all other folds, every held-out route is cut into the
observed partial route (first PartialFraction of its arcs) and the expected continuation, both models predict the
continuation and the prediction is scored with the jaccard similarity of the arc sets. cyclic predictions are scored
with the arcs predicted before the cycle. folds are independent and run on up to Workers goroutines.
*/
func (cv *CrossValidation) Run(ctx context.Context) (*Report, error) {
	order := Order(len(cv.routes), cv.cfg.Shuffle, cv.cfg.Seed)
	folds := Partition(len(order), cv.cfg.Folds)

	cv.log.Sugar().Infof("cross validating %d routes with %d folds...", len(cv.routes), len(folds))

	reports := make([]FoldReport, len(folds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cv.cfg.Workers)
	for f := range folds {
		g.Go(func() error {
			fr, err := cv.evaluateFold(gctx, f, folds[f], order)
			if err != nil {
				return err
			}
			reports[f] = fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := newReport(reports, cv.cfg.ConfidenceThreshold)
	cv.log.Info("cross validation done",
		zap.String("simmons", report.Simmons.String()),
		zap.String("simmonsPCA", report.SimmonsPCA.String()),
		zap.String("confidentSimmonsPCA", report.ConfidentSimmonsPCA.String()),
		zap.Int("skipped", report.Skipped))
	return report, nil
}

func (cv *CrossValidation) evaluateFold(ctx context.Context, f int, fold Fold, order []int) (FoldReport, error) {
	fr := FoldReport{Fold: f, TestRoutes: fold.Len(), Evaluations: make([]RouteEvaluation, 0, fold.Len())}
	if fold.Len() == 0 {
		return fr, nil
	}

	train := make([]da.Route, 0, len(order)-fold.Len())
	for pos, idx := range order {
		if !fold.Contains(pos) {
			train = append(train, cv.routes[idx])
		}
	}
	fr.TrainRoutes = len(train)
	if len(train) == 0 {
		fr.Skipped = fold.Len()
		return fr, nil
	}

	simmons := predictor.NewSimmons(predictor.WithMaxPredictionLength(cv.cfg.MaxPredictionLength))
	simmons.LearnRoutes(train)

	simmonsPCA := predictor.NewSimmonsPCA(
		predictor.WithComponents(cv.cfg.Components),
		predictor.WithNeighbors(cv.cfg.Neighbors),
		predictor.WithArcWeighting(pkg.GetArcWeighting(cv.cfg.ArcWeighting)),
	)
	if err := simmonsPCA.LearnRoutes(train, cv.endpoints); err != nil {
		return fr, util.WrapErrorf(err, util.ErrBadParamInput, "fold %d: training reduced-space model", f)
	}

	for pos := fold.Start; pos < fold.End; pos++ {
		if util.StopConcurrentOperation(ctx) {
			return fr, ctx.Err()
		}
		idx := order[pos]
		partial, expected := Split(cv.routes[idx], cv.cfg.PartialFraction)
		if len(partial) == 0 {
			fr.Skipped++
			continue
		}

		eval := RouteEvaluation{Fold: f, Index: idx, Partial: partial, Expected: expected}
		sp, err := simmons.PredictRoute(partial)
		if err != nil {
			return fr, err
		}
		eval.Simmons = ModelEvaluation{Prediction: sp, Score: metrics.Jaccard(expected, sp.Route)}

		pp, err := simmonsPCA.PredictRoute(partial)
		if err != nil {
			return fr, err
		}
		eval.SimmonsPCA = ModelEvaluation{Prediction: pp, Score: metrics.Jaccard(expected, pp.Route)}

		if sp.IsCyclic() || pp.IsCyclic() {
			cv.log.Debug("cyclic prediction", zap.Int("fold", f), zap.Int("route", idx),
				zap.Bool("simmons", sp.IsCyclic()), zap.Bool("simmonsPCA", pp.IsCyclic()))
		}
		fr.Evaluations = append(fr.Evaluations, eval)
	}

	summarizeFold(&fr, cv.cfg.ConfidenceThreshold)
	cv.log.Info("fold evaluated", zap.Int("fold", f), zap.Int("train", fr.TrainRoutes),
		zap.Int("test", fr.TestRoutes), zap.Int("skipped", fr.Skipped),
		zap.Float64("simmonsAvg", fr.Simmons.Avg), zap.Float64("simmonsPCAAvg", fr.SimmonsPCA.Avg),
		zap.Int("dims", simmonsPCA.Components()))
	return fr, nil
}
