package engine

import (
	"github.com/lintang-b-s/routepredict/pkg"
	"github.com/lintang-b-s/routepredict/pkg/corpus"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/engine/predictor"
	"github.com/lintang-b-s/routepredict/pkg/osmparser"
	"github.com/lintang-b-s/routepredict/pkg/preprocessor"
	"github.com/lintang-b-s/routepredict/pkg/spatialindex"
	"go.uber.org/zap"
)

type Config struct {
	Components          int
	Neighbors           int
	ArcWeighting        pkg.ArcWeighting
	MaxPredictionLength int
	Workers             int
}

func DefaultConfig() Config {
	return Config{
		Components: pkg.MAX_COMPONENTS,
		Neighbors:  pkg.NEAREST_NEIGHBORS,
		Workers:    1,
	}
}

// Engine holds both route models trained on one corpus. Models are read-only once
// the engine is built, so an Engine is safe for concurrent predictions.
type Engine struct {
	simmons    *predictor.Simmons
	simmonsPCA *predictor.SimmonsPCA
	endpoints  da.RoadEndpoints
	roadIndex  *spatialindex.Rtree
}

func (e *Engine) GetSimmons() *predictor.Simmons {
	return e.simmons
}

func (e *Engine) GetSimmonsPCA() *predictor.SimmonsPCA {
	return e.simmonsPCA
}

func (e *Engine) GetEndpoints() da.RoadEndpoints {
	return e.endpoints
}

// NewEngine reads the corpus (and optionally an osm extract for endpoints missing from
// the corpus), prepares the routes and trains both models.
func NewEngine(corpusFile, osmFile string, cfg Config, logger *zap.Logger) (*Engine, error) {
	logger.Info("Reading route corpus from ", zap.String("corpusFile", corpusFile))
	c, err := corpus.ReadFile(corpusFile)
	if err != nil {
		return nil, err
	}

	endpoints := make(da.RoadEndpoints)
	if osmFile != "" {
		logger.Info("Reading road endpoints from ", zap.String("osmFile", osmFile))
		osmEndpoints, err := osmparser.NewEndpointParser(logger).ParseFile(osmFile)
		if err != nil {
			return nil, err
		}
		endpoints.Merge(osmEndpoints)
	}
	endpoints.Merge(c.Endpoints)

	routes, err := preprocessor.NewPreprocessor(endpoints, cfg.Workers, logger).PrepareRoutes(c.Routes)
	if err != nil {
		return nil, err
	}
	return NewEngineDirect(routes, endpoints, cfg, logger)
}

// NewEngineDirect trains both models on already prepared routes.
func NewEngineDirect(routes []da.Route, endpoints da.RoadEndpoints, cfg Config, logger *zap.Logger) (*Engine, error) {
	logger.Info("Training route models...", zap.Int("routes", len(routes)))

	simmons := predictor.NewSimmons(predictor.WithMaxPredictionLength(cfg.MaxPredictionLength))
	simmons.LearnRoutes(routes)

	simmonsPCA := predictor.NewSimmonsPCA(
		predictor.WithComponents(cfg.Components),
		predictor.WithNeighbors(cfg.Neighbors),
		predictor.WithArcWeighting(cfg.ArcWeighting),
	)
	if err := simmonsPCA.LearnRoutes(routes, endpoints); err != nil {
		return nil, err
	}

	logger.Info("Route models trained.", zap.Int("knownArcs", simmons.KnownArcs()),
		zap.Int("vocabulary", len(simmonsPCA.Vocabulary())), zap.Int("components", simmonsPCA.Components()))
	roadIndex := spatialindex.NewRtree()
	roadIndex.Build(endpoints, pkg.ROAD_BOUNDING_BOX_RADIUS, logger)

	return &Engine{
		simmons:    simmons,
		simmonsPCA: simmonsPCA,
		endpoints:  endpoints,
		roadIndex:  roadIndex,
	}, nil
}

// Route builds the route of the given arc ids, taking arc coordinates from the
// engine's endpoint lookup.
func (e *Engine) Route(ids []da.ArcID) da.Route {
	route := make(da.Route, len(ids))
	for i, id := range ids {
		route[i] = da.NewArcFromEndpoints(id.RoadID, id.Direction, e.endpoints)
	}
	return route
}

const (
	MODEL_SIMMONS     = "simmons"
	MODEL_SIMMONS_PCA = "simmons_pca"
)

// Predictor returns the model registered under name. An empty name selects simmons.
func (e *Engine) Predictor(name string) (predictor.RoutePredictor, bool) {
	switch name {
	case MODEL_SIMMONS, "":
		return e.simmons, true
	case MODEL_SIMMONS_PCA:
		return e.simmonsPCA, true
	default:
		return nil, false
	}
}

// NearestRoads returns up to limit roads within radius (km) of (lat, lon), closest first.
func (e *Engine) NearestRoads(lat, lon, radius float64, limit int) []spatialindex.RoadCandidate {
	return e.roadIndex.SearchWithinRadius(lat, lon, radius, limit)
}
