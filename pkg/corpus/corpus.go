package corpus

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/geo"
	"github.com/lintang-b-s/routepredict/pkg/util"
	"github.com/twpayne/go-polyline"
)

/*
Corpus of map-matched routes. text format, one record per line, '#' starts a comment:

	R <road-id>,<road-id>,... <polyline of the observed coordinates>
	E <road-id> <lat1> <lon1> <lat2> <lon2>

E records with equal endpoints are ambiguous and ignored; a later E record of the same road wins.
*/
type Corpus struct {
	Routes    []da.RawRoute
	Endpoints da.RoadEndpoints
}

func NewCorpus() *Corpus {
	return &Corpus{
		Routes:    make([]da.RawRoute, 0),
		Endpoints: make(da.RoadEndpoints),
	}
}

// ReadFile reads a corpus file, decompressing it when the name ends in .bz2.
func ReadFile(filename string) (*Corpus, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}
	return Read(r)
}

func Read(r io.Reader) (*Corpus, error) {
	c := NewCorpus()
	br := bufio.NewReader(r)

	lineNo := 0
	for {
		line, err := util.ReadLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lineNo++

		ff := strings.Fields(line)
		if len(ff) == 0 || strings.HasPrefix(ff[0], "#") {
			continue
		}
		switch ff[0] {
		case "R":
			route, err := parseRoute(ff)
			if err != nil {
				return nil, util.WrapErrorf(err, util.ErrBadParamInput, "line %d", lineNo)
			}
			c.Routes = append(c.Routes, route)
		case "E":
			if err := parseEndpoints(ff, c.Endpoints); err != nil {
				return nil, util.WrapErrorf(err, util.ErrBadParamInput, "line %d", lineNo)
			}
		default:
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "line %d: unknown record %q", lineNo, ff[0])
		}
	}
	return c, nil
}

func parseRoute(ff []string) (da.RawRoute, error) {
	if len(ff) != 3 {
		return da.RawRoute{}, fmt.Errorf("route record needs road ids and a polyline, got %d fields", len(ff)-1)
	}
	idTokens := strings.Split(ff[1], ",")
	roadIDs := make([]int64, len(idTokens))
	for i, tok := range idTokens {
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return da.RawRoute{}, err
		}
		roadIDs[i] = id
	}

	points, _, err := polyline.DecodeCoords([]byte(ff[2]))
	if err != nil {
		return da.RawRoute{}, err
	}
	if len(points) != len(roadIDs) {
		return da.RawRoute{}, fmt.Errorf("%d road ids but %d coordinates", len(roadIDs), len(points))
	}
	coords := make([]geo.Coordinate, len(points))
	for i, p := range points {
		coords[i] = geo.NewCoordinate(p[0], p[1])
	}
	return da.NewRawRoute(roadIDs, coords), nil
}

func parseEndpoints(ff []string, endpoints da.RoadEndpoints) error {
	if len(ff) != 6 {
		return fmt.Errorf("endpoint record needs a road id and 4 coordinates, got %d fields", len(ff)-1)
	}
	id, err := strconv.ParseInt(ff[1], 10, 64)
	if err != nil {
		return err
	}
	vals := make([]float64, 4)
	for i := range vals {
		vals[i], err = strconv.ParseFloat(ff[i+2], 64)
		if err != nil {
			return err
		}
	}
	endpoints.Set(id, geo.NewCoordinate(vals[0], vals[1]), geo.NewCoordinate(vals[2], vals[3]))
	return nil
}

// Write writes c in the corpus text format, endpoints first in road id order.
func Write(w io.Writer, c *Corpus) error {
	bw := bufio.NewWriter(w)
	for _, id := range slices.Sorted(maps.Keys(c.Endpoints)) {
		ep := c.Endpoints[id]
		if _, err := fmt.Fprintf(bw, "E %d %v %v %v %v\n", id, ep[0].Lat, ep[0].Lon, ep[1].Lat, ep[1].Lon); err != nil {
			return err
		}
	}
	for _, route := range c.Routes {
		ids := make([]string, len(route.RoadIDs))
		for i, id := range route.RoadIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		points := make([][]float64, len(route.Coordinates))
		for i, p := range route.Coordinates {
			points[i] = []float64{p.Lat, p.Lon}
		}
		if _, err := fmt.Fprintf(bw, "R %s %s\n", strings.Join(ids, ","), polyline.EncodeCoords(points)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
