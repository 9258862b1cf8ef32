package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/routepredict/pkg/corpus"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/evaluation"
	"github.com/lintang-b-s/routepredict/pkg/export"
	log "github.com/lintang-b-s/routepredict/pkg/logger"
	"github.com/lintang-b-s/routepredict/pkg/osmparser"
	"github.com/lintang-b-s/routepredict/pkg/preprocessor"
	"github.com/lintang-b-s/routepredict/pkg/util"
	"go.uber.org/zap"
)

var (
	corpusFile  = flag.String("corpus_file", "./data/routes.txt", "route corpus filepath (.bz2 is decompressed)")
	osmFile     = flag.String("osm_file", "", "optional openstreetmap .osm.pbf filepath for road endpoints")
	geojsonFile = flag.String("geojson_file", "", "write partial, expected and predicted routes as geojson")
	csvFile     = flag.String("csv_file", "", "write per route confidence and scores as csv")
)

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	cfg, err := evaluation.NewConfigFromViper()
	if err != nil {
		panic(err)
	}

	c, err := corpus.ReadFile(*corpusFile)
	if err != nil {
		panic(err)
	}
	endpoints := make(da.RoadEndpoints)
	if *osmFile != "" {
		osmEndpoints, err := osmparser.NewEndpointParser(logger).ParseFile(*osmFile)
		if err != nil {
			panic(err)
		}
		endpoints.Merge(osmEndpoints)
	}
	endpoints.Merge(c.Endpoints)

	routes, err := preprocessor.NewPreprocessor(endpoints, cfg.Workers, logger).PrepareRoutes(c.Routes)
	if err != nil {
		panic(err)
	}

	cv, err := evaluation.NewCrossValidation(routes, endpoints, cfg, logger)
	if err != nil {
		panic(err)
	}
	report, err := cv.Run(context.Background())
	if err != nil {
		panic(err)
	}

	logger.Sugar().Infof("simmons: %s", report.Simmons)
	logger.Sugar().Infof("simmons pca: %s", report.SimmonsPCA)
	logger.Sugar().Infof("simmons pca (confidence > %.2f): %s", cfg.ConfidenceThreshold, report.ConfidentSimmonsPCA)
	logger.Info("cross validation done", zap.Int("folds", len(report.Folds)), zap.Int("skipped", report.Skipped),
		zap.Int("cyclicSimmons", report.CyclicSimmons), zap.Int("cyclicSimmonsPCA", report.CyclicSimmonsPCA))

	if *geojsonFile != "" {
		if err := export.WriteGeoJSONFile(*geojsonFile, report); err != nil {
			panic(err)
		}
	}
	if *csvFile != "" {
		if err := export.WriteScoresFile(*csvFile, report); err != nil {
			panic(err)
		}
	}
}
