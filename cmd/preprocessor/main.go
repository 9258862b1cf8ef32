package main

import (
	"flag"
	"os"

	"github.com/lintang-b-s/routepredict/pkg/corpus"
	"github.com/lintang-b-s/routepredict/pkg/logger"
	"github.com/lintang-b-s/routepredict/pkg/osmparser"
	"go.uber.org/zap"
)

var (
	corpusFile = flag.String("corpus_file", "./data/routes.txt", "route corpus filepath (.bz2 is decompressed)")
	osmFile    = flag.String("osm_file", "./data/map.osm.pbf", "openstreetmap .osm.pbf filepath")
	outFile    = flag.String("out_file", "./data/routes_endpoints.txt", "output corpus filepath")
)

// preprocessor adds the endpoints of every corpus road found in the osm extract to
// the corpus, so later runs do not need the extract.
func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	c, err := corpus.ReadFile(*corpusFile)
	if err != nil {
		panic(err)
	}
	osmEndpoints, err := osmparser.NewEndpointParser(logger).ParseFile(*osmFile)
	if err != nil {
		panic(err)
	}

	added := 0
	for _, raw := range c.Routes {
		for _, roadID := range raw.RoadIDs {
			if _, ok := c.Endpoints[roadID]; ok {
				continue
			}
			if ep, ok := osmEndpoints[roadID]; ok {
				c.Endpoints[roadID] = ep
				added++
			}
		}
	}

	f, err := os.Create(*outFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := corpus.Write(f, c); err != nil {
		panic(err)
	}

	logger.Info("Preprocessing completed successfully.", zap.Int("routes", len(c.Routes)),
		zap.Int("addedEndpoints", added), zap.String("outFile", *outFile))
}
