package preprocessor

import (
	"github.com/lintang-b-s/routepredict/pkg/concurrent"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"go.uber.org/zap"
)

type Preprocessor struct {
	endpoints da.RoadEndpoints
	workers   int
	log       *zap.Logger
}

func NewPreprocessor(endpoints da.RoadEndpoints, workers int, log *zap.Logger) *Preprocessor {
	return &Preprocessor{
		endpoints: endpoints,
		workers:   workers,
		log:       log,
	}
}

type prepareJob struct {
	idx int
	raw da.RawRoute
}

type prepareResult struct {
	idx   int
	route da.Route
	err   error
}

// PrepareRoutes converts every raw trace of the corpus into a directed, duplicate-free
// route. Output order matches input order; the first failing trace aborts the whole
// corpus.
func (p *Preprocessor) PrepareRoutes(raws []da.RawRoute) ([]da.Route, error) {
	p.log.Info("Preparing routes...", zap.Int("routes", len(raws)), zap.Int("workers", p.workers))

	workers := concurrent.NewWorkerPool[prepareJob, prepareResult](p.workers, len(raws))
	for i, raw := range raws {
		workers.AddJob(prepareJob{idx: i, raw: raw})
	}
	workers.Close()
	workers.Start(func(job prepareJob) prepareResult {
		route, err := Preprocess(job.raw, p.endpoints)
		return prepareResult{idx: job.idx, route: route, err: err}
	})
	workers.Wait()

	routes := make([]da.Route, len(raws))
	var (
		firstErr    error
		firstErrIdx = len(raws)
	)
	for res := range workers.CollectResults() {
		if res.err != nil {
			if res.idx < firstErrIdx {
				firstErr, firstErrIdx = res.err, res.idx
			}
			continue
		}
		routes[res.idx] = res.route
	}
	if firstErr != nil {
		p.log.Error("failed to prepare route", zap.Int("route", firstErrIdx), zap.Error(firstErr))
		return nil, firstErr
	}

	unoriented, arcs, dropped := 0, 0, 0
	for i, route := range routes {
		arcs += len(route)
		dropped += countRuns(raws[i].RoadIDs) - len(route)
		for _, a := range route {
			if !a.IsOriented() {
				unoriented++
			}
		}
	}
	if unoriented > 0 {
		p.log.Warn("roads missing from endpoint lookup, kept as unoriented arcs", zap.Int("arcs", unoriented))
	}
	p.log.Info("Routes prepared.", zap.Int("arcs", arcs), zap.Int("duplicateArcsRemoved", dropped))
	return routes, nil
}

func countRuns(roadIDs []int64) int {
	return len(splitRuns(roadIDs))
}
