package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/routepredict/pkg"
	"github.com/lintang-b-s/routepredict/pkg/engine"
	"github.com/lintang-b-s/routepredict/pkg/http"
	"github.com/lintang-b-s/routepredict/pkg/http/usecases"
	"github.com/lintang-b-s/routepredict/pkg/logger"
	"github.com/lintang-b-s/routepredict/pkg/util"
	"go.uber.org/zap"
)

var (
	corpusFile   = flag.String("corpus_file", "./data/routes.txt", "route corpus filepath (.bz2 is decompressed)")
	osmFile      = flag.String("osm_file", "", "optional openstreetmap .osm.pbf filepath for road endpoints missing from the corpus")
	components   = flag.Int("components", pkg.MAX_COMPONENTS, "maximum number of principal components")
	neighbors    = flag.Int("neighbors", pkg.NEAREST_NEIGHBORS, "nearest training routes merged into a reduced-space prediction")
	arcWeighting = flag.String("arc_weighting", "presence", "route vector encoding: presence or length")
	maxLength    = flag.Int("max_prediction_length", 0, "maximum predicted arcs for the frequency model (0 = number of known arcs)")
	workers      = flag.Int("workers", 4, "route preprocessing workers")
	useRateLimit = flag.Bool("rate_limit", false, "limit api requests per second")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}

	cfg := engine.Config{
		Components:          *components,
		Neighbors:           *neighbors,
		ArcWeighting:        pkg.GetArcWeighting(*arcWeighting),
		MaxPredictionLength: *maxLength,
		Workers:             *workers,
	}
	predictionEngine, err := engine.NewEngine(*corpusFile, *osmFile, cfg, logger)
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)

	predictionService := usecases.NewPredictionService(logger, predictionEngine)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	_, err = api.Use(ctx, logger, *useRateLimit, predictionService)
	if err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	logger.Info("Route Prediction Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("api stopped with error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
