package predictor

import (
	"github.com/lintang-b-s/routepredict/pkg"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/geo"
)

// arc returns the forward arc of road id, laid out along the equator.
func arc(id int64) da.Arc {
	return da.NewArc(id, pkg.FORWARD, geo.NewCoordinate(0, float64(id)*0.01), geo.NewCoordinate(0, float64(id+1)*0.01))
}

func route(ids ...int64) da.Route {
	r := make(da.Route, len(ids))
	for i, id := range ids {
		r[i] = arc(id)
	}
	return r
}
