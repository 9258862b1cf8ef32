package osmparser

import (
	"context"
	"io"
	"os"

	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

var (
	acceptedHighway = map[string]struct{}{
		"motorway":         struct{}{},
		"motorway_link":    struct{}{},
		"trunk":            struct{}{},
		"trunk_link":       struct{}{},
		"primary":          struct{}{},
		"primary_link":     struct{}{},
		"secondary":        struct{}{},
		"secondary_link":   struct{}{},
		"residential":      struct{}{},
		"residential_link": struct{}{},
		"service":          struct{}{},
		"tertiary":         struct{}{},
		"tertiary_link":    struct{}{},
		"road":             struct{}{},
		"track":            struct{}{},
		"unclassified":     struct{}{},
		"living_street":    struct{}{},
		"motorroad":        struct{}{},
	}
)

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	junction := way.Tags.Find("junction")
	if highway != "" {
		if _, ok := acceptedHighway[highway]; ok {
			return true
		}
	} else if junction != "" {
		return true
	}
	return false
}

/*
EndpointParser. builds the road id -> endpoints lookup from an osm extract.

a road is an accepted osm way, its id is the way id and its endpoints are the coordinates of the first and last
node of the way, in way order (so FORWARD follows the digitization direction of the way).
*/
type EndpointParser struct {
	nodeCoords map[osm.NodeID]geo.Coordinate
	wayEnds    map[osm.WayID][2]osm.NodeID
	log        *zap.Logger
}

func NewEndpointParser(log *zap.Logger) *EndpointParser {
	return &EndpointParser{
		nodeCoords: make(map[osm.NodeID]geo.Coordinate),
		wayEnds:    make(map[osm.WayID][2]osm.NodeID),
		log:        log,
	}
}

func (p *EndpointParser) ParseFile(mapFile string) (da.RoadEndpoints, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return p.Parse(context.Background(), f)
}

// Parse reads an osm pbf stream.
func (p *EndpointParser) Parse(ctx context.Context, r io.Reader) (da.RoadEndpoints, error) {
	p.log.Info("Parsing road endpoints from osm pbf...")

	scanner := osmpbf.New(ctx, r, 1)
	defer scanner.Close()
	scanner.SkipRelations = true

	for scanner.Scan() {
		p.AddObject(scanner.Object())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p.Endpoints(), nil
}

// AddObject records the nodes and accepted ways of the extract, in any order.
func (p *EndpointParser) AddObject(o osm.Object) {
	switch obj := o.(type) {
	case *osm.Node:
		p.nodeCoords[obj.ID] = geo.NewCoordinate(obj.Lat, obj.Lon)
	case *osm.Way:
		if len(obj.Nodes) < 2 || !acceptOsmWay(obj) {
			return
		}
		first, last := obj.Nodes[0], obj.Nodes[len(obj.Nodes)-1]
		p.wayEnds[obj.ID] = [2]osm.NodeID{first.ID, last.ID}
		// ways with embedded locations do not need their nodes
		if first.Lat != 0 || first.Lon != 0 {
			p.nodeCoords[first.ID] = geo.NewCoordinate(first.Lat, first.Lon)
		}
		if last.Lat != 0 || last.Lon != 0 {
			p.nodeCoords[last.ID] = geo.NewCoordinate(last.Lat, last.Lon)
		}
	}
}

// Endpoints resolves every recorded way to its endpoint coordinates. Closed ways and
// ways with unknown end nodes are skipped.
func (p *EndpointParser) Endpoints() da.RoadEndpoints {
	endpoints := make(da.RoadEndpoints, len(p.wayEnds))
	skipped := 0
	for wayID, ends := range p.wayEnds {
		a, okA := p.nodeCoords[ends[0]]
		b, okB := p.nodeCoords[ends[1]]
		if !okA || !okB || !endpoints.Set(int64(wayID), a, b) {
			skipped++
		}
	}
	p.log.Info("Road endpoints parsed.", zap.Int("roads", len(endpoints)), zap.Int("skipped", skipped))
	return endpoints
}
