package evaluation

import (
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/engine/predictor"
	"github.com/lintang-b-s/routepredict/pkg/metrics"
)

// ModelEvaluation is one model's prediction for one held-out route and its score
// against the expected continuation.
type ModelEvaluation struct {
	Prediction predictor.Prediction
	Score      float64
}

type RouteEvaluation struct {
	Fold int
	// Index of the route in the corpus.
	Index      int
	Partial    da.Route
	Expected   da.Route
	Simmons    ModelEvaluation
	SimmonsPCA ModelEvaluation
}

type FoldReport struct {
	Fold        int
	TrainRoutes int
	TestRoutes  int
	// Skipped counts held-out routes too short to leave a non-empty partial route.
	Skipped     int
	Evaluations []RouteEvaluation

	Simmons             metrics.Summary
	SimmonsPCA          metrics.Summary
	ConfidentSimmonsPCA metrics.Summary
}

type Report struct {
	Folds []FoldReport

	Simmons    metrics.Summary
	SimmonsPCA metrics.Summary
	// ConfidentSimmonsPCA summarizes the reduced-space model on predictions whose
	// confidence exceeds the configured threshold.
	ConfidentSimmonsPCA metrics.Summary

	Skipped          int
	CyclicSimmons    int
	CyclicSimmonsPCA int
}

// ConfidenceScore pairs the confidence of a reduced-space prediction with its score.
type ConfidenceScore struct {
	Confidence float64
	Score      float64
}

// Evaluations returns every route evaluation in fold order.
func (r *Report) Evaluations() []RouteEvaluation {
	evals := make([]RouteEvaluation, 0)
	for _, f := range r.Folds {
		evals = append(evals, f.Evaluations...)
	}
	return evals
}

func (r *Report) ConfidenceScores() []ConfidenceScore {
	evals := r.Evaluations()
	cs := make([]ConfidenceScore, len(evals))
	for i, e := range evals {
		cs[i] = ConfidenceScore{Confidence: e.SimmonsPCA.Prediction.Confidence, Score: e.SimmonsPCA.Score}
	}
	return cs
}

func (r *Report) SimmonsScores() []float64 {
	evals := r.Evaluations()
	scores := make([]float64, len(evals))
	for i, e := range evals {
		scores[i] = e.Simmons.Score
	}
	return scores
}

func (r *Report) SimmonsPCAScores() []float64 {
	evals := r.Evaluations()
	scores := make([]float64, len(evals))
	for i, e := range evals {
		scores[i] = e.SimmonsPCA.Score
	}
	return scores
}

func confidentScores(evals []RouteEvaluation, threshold float64) []float64 {
	scores := make([]float64, 0)
	for _, e := range evals {
		if e.SimmonsPCA.Prediction.Confidence > threshold {
			scores = append(scores, e.SimmonsPCA.Score)
		}
	}
	return scores
}

func summarizeFold(f *FoldReport, threshold float64) {
	simmons := make([]float64, len(f.Evaluations))
	pca := make([]float64, len(f.Evaluations))
	for i, e := range f.Evaluations {
		simmons[i] = e.Simmons.Score
		pca[i] = e.SimmonsPCA.Score
	}
	f.Simmons = metrics.Summarize(simmons)
	f.SimmonsPCA = metrics.Summarize(pca)
	f.ConfidentSimmonsPCA = metrics.Summarize(confidentScores(f.Evaluations, threshold))
}

func newReport(folds []FoldReport, threshold float64) *Report {
	r := &Report{Folds: folds}
	evals := r.Evaluations()
	for _, f := range folds {
		r.Skipped += f.Skipped
	}
	for _, e := range evals {
		if e.Simmons.Prediction.IsCyclic() {
			r.CyclicSimmons++
		}
		if e.SimmonsPCA.Prediction.IsCyclic() {
			r.CyclicSimmonsPCA++
		}
	}
	r.Simmons = metrics.Summarize(r.SimmonsScores())
	r.SimmonsPCA = metrics.Summarize(r.SimmonsPCAScores())
	r.ConfidentSimmonsPCA = metrics.Summarize(confidentScores(evals, threshold))
	return r
}
