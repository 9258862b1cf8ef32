package export

import (
	"io"
	"os"

	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/evaluation"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func lineString(route da.Route) orb.LineString {
	coords := route.Coordinates()
	ls := make(orb.LineString, len(coords))
	for i, c := range coords {
		ls[i] = orb.Point{c.Lon, c.Lat}
	}
	return ls
}

func routeFeature(route da.Route, kind string, props geojson.Properties) *geojson.Feature {
	f := geojson.NewFeature(lineString(route))
	for k, v := range props {
		f.Properties[k] = v
	}
	f.Properties["kind"] = kind
	f.Properties["arcs"] = len(route)
	return f
}

// FeatureCollection renders every evaluated route as line strings: the partial route,
// the expected continuation, and the continuation predicted by each model. Routes
// without oriented arcs have no geometry and are left out.
func FeatureCollection(report *evaluation.Report) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	add := func(f *geojson.Feature) {
		if len(f.Geometry.(orb.LineString)) > 0 {
			fc.Append(f)
		}
	}

	for _, e := range report.Evaluations() {
		props := geojson.Properties{"fold": e.Fold, "route": e.Index}
		add(routeFeature(e.Partial, "partial", props))
		add(routeFeature(e.Expected, "expected", props))

		simmons := routeFeature(e.Simmons.Prediction.Route, "predicted", props)
		simmons.Properties["model"] = "simmons"
		simmons.Properties["score"] = e.Simmons.Score
		simmons.Properties["outcome"] = e.Simmons.Prediction.Outcome.String()
		add(simmons)

		pca := routeFeature(e.SimmonsPCA.Prediction.Route, "predicted", props)
		pca.Properties["model"] = "simmons_pca"
		pca.Properties["score"] = e.SimmonsPCA.Score
		pca.Properties["confidence"] = e.SimmonsPCA.Prediction.Confidence
		pca.Properties["outcome"] = e.SimmonsPCA.Prediction.Outcome.String()
		add(pca)
	}
	return fc
}

func WriteGeoJSON(w io.Writer, report *evaluation.Report) error {
	b, err := FeatureCollection(report).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func WriteGeoJSONFile(filename string, report *evaluation.Report) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteGeoJSON(f, report)
}
