package predictor

import (
	"math"

	"github.com/lintang-b-s/routepredict/pkg"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/geo"
	"github.com/lintang-b-s/routepredict/pkg/util"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// principal components with a variance at or below this carry no information
const varianceEpsilon = 1e-12

/*
SimmonsPCA. nearest neighbour route model in a reduced route space.

every training route is a vector over the vocabulary (all arcs of the training corpus, first-seen order).
principal component analysis of the route matrix gives a low dimensional space in which the encoded partial
route is compared against every training route. the continuation is read from the nearest training route(s),
the confidence is 1/(1+d) of the distance d to the nearest one.

arcs of a partial route outside the vocabulary are dropped during encoding and counted in
Prediction.DroppedArcs.
*/
type SimmonsPCA struct {
	components int
	neighbors  int
	weighting  pkg.ArcWeighting

	vocab     *util.IDMap[da.ArcID]
	weights   []float64 // weight of every vocabulary arc
	routes    []da.Route
	raw       *mat.Dense
	mean      []float64
	basis     *mat.Dense // vocabulary x k, nil when k == 0
	projected [][]float64
}

type PCAOption func(*SimmonsPCA)

func WithComponents(k int) PCAOption {
	return func(m *SimmonsPCA) {
		m.components = k
	}
}

func WithNeighbors(n int) PCAOption {
	return func(m *SimmonsPCA) {
		m.neighbors = n
	}
}

func WithArcWeighting(w pkg.ArcWeighting) PCAOption {
	return func(m *SimmonsPCA) {
		m.weighting = w
	}
}

func NewSimmonsPCA(opts ...PCAOption) *SimmonsPCA {
	m := &SimmonsPCA{
		components: pkg.MAX_COMPONENTS,
		neighbors:  pkg.NEAREST_NEIGHBORS,
		weighting:  pkg.PRESENCE,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.components < 1 {
		m.components = pkg.MAX_COMPONENTS
	}
	if m.neighbors < 1 {
		m.neighbors = pkg.NEAREST_NEIGHBORS
	}
	return m
}

// LearnRoutes fits the route space on routes, replacing any previous fit.
func (m *SimmonsPCA) LearnRoutes(routes []da.Route, endpoints da.RoadEndpoints) error {
	m.reset()

	vocab := util.NewIdMap[da.ArcID]()
	vocabArcs := make([]da.Arc, 0)
	for _, route := range routes {
		for _, a := range route {
			if _, ok := vocab.Lookup(a.ID()); !ok {
				vocab.GetID(a.ID())
				vocabArcs = append(vocabArcs, a)
			}
		}
	}
	if len(routes) == 0 || vocab.Len() == 0 {
		return ErrEmptyCorpus
	}

	n, d := len(routes), vocab.Len()
	weights := make([]float64, d)
	for i, a := range vocabArcs {
		weights[i] = m.arcWeight(a, endpoints)
	}

	raw := mat.NewDense(n, d, nil)
	for i, route := range routes {
		for _, a := range route {
			j, _ := vocab.Lookup(a.ID())
			raw.Set(i, j, weights[j])
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(raw, nil); !ok {
		return util.WrapErrorf(nil, util.ErrInternalServerError,
			"principal component analysis failed for %d routes over %d arcs", n, d)
	}

	k := 0
	for _, v := range pc.VarsTo(nil) {
		if k < m.components && v > varianceEpsilon {
			k++
		}
	}

	mean := make([]float64, d)
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, raw)
		mean[j] = stat.Mean(col, nil)
	}

	m.vocab = vocab
	m.weights = weights
	m.routes = routes
	m.raw = raw
	m.mean = mean

	if k > 0 {
		var vecs mat.Dense
		pc.VectorsTo(&vecs)
		m.basis = mat.DenseCopyOf(vecs.Slice(0, d, 0, k))
	}

	m.projected = make([][]float64, n)
	row := make([]float64, d)
	for i := 0; i < n; i++ {
		mat.Row(row, i, raw)
		m.projected[i] = m.project(row)
	}
	return nil
}

func (m *SimmonsPCA) reset() {
	m.vocab = nil
	m.weights = nil
	m.routes = nil
	m.raw = nil
	m.mean = nil
	m.basis = nil
	m.projected = nil
}

func (m *SimmonsPCA) arcWeight(a da.Arc, endpoints da.RoadEndpoints) float64 {
	if m.weighting != pkg.LENGTH {
		return pkg.DEFAULT_ARC_WEIGHT
	}
	if ep, ok := endpoints[a.GetRoadID()]; ok {
		if l := geo.Distance(ep[0], ep[1]); l > 0 {
			return l
		}
	}
	if l := a.Length(); l > 0 {
		return l
	}
	return pkg.DEFAULT_ARC_WEIGHT
}

func (m *SimmonsPCA) IsTrained() bool {
	return m.vocab != nil
}

// Vocabulary returns the arcs spanning the route space, in dimension order.
func (m *SimmonsPCA) Vocabulary() []da.ArcID {
	if m.vocab == nil {
		return nil
	}
	return m.vocab.Keys()
}

// Components. dimensionality of the fitted projection
func (m *SimmonsPCA) Components() int {
	if m.basis == nil {
		return 0
	}
	_, k := m.basis.Dims()
	return k
}

// encode returns the route vector of route and the number of arcs outside the vocabulary.
func (m *SimmonsPCA) encode(route da.Route) ([]float64, int) {
	v := make([]float64, m.vocab.Len())
	dropped := 0
	for _, a := range route {
		j, ok := m.vocab.Lookup(a.ID())
		if !ok {
			dropped++
			continue
		}
		v[j] = m.weights[j]
	}
	return v, dropped
}

func (m *SimmonsPCA) project(v []float64) []float64 {
	if m.basis == nil {
		return []float64{}
	}
	centered := make([]float64, len(v))
	floats.SubTo(centered, v, m.mean)

	var z mat.VecDense
	z.MulVec(m.basis.T(), mat.NewVecDense(len(centered), centered))

	out := make([]float64, z.Len())
	for i := range out {
		out[i] = z.AtVec(i)
	}
	return out
}

// Project returns the point of route in the reduced space and the number of arcs
// dropped while encoding it.
func (m *SimmonsPCA) Project(route da.Route) ([]float64, int, error) {
	if !m.IsTrained() {
		return nil, 0, ErrModelNotTrained
	}
	v, dropped := m.encode(route)
	return m.project(v), dropped, nil
}

type neighbor struct {
	idx  int
	dist float64
}

// nearest returns the m.neighbors training routes closest to z, closest first. Equal
// distances keep corpus order.
func (m *SimmonsPCA) nearest(z []float64) []neighbor {
	pq := da.NewFourAryHeap[int]()
	pq.Preallocate(len(m.projected))
	for i, p := range m.projected {
		pq.Insert(floats.Distance(z, p, 2), i)
	}

	k := util.Min(m.neighbors, pq.Size())
	ns := make([]neighbor, 0, k)
	for len(ns) < k {
		node, _ := pq.ExtractMin()
		ns = append(ns, neighbor{idx: node.GetItem(), dist: node.GetRank()})
	}
	return ns
}

// continuationOf returns the arcs of route after the latest partial arc that route
// visits, or the whole route when it visits none of them.
func continuationOf(route da.Route, partial da.Route) da.Route {
	for i := len(partial) - 1; i >= 0; i-- {
		id := partial[i].ID()
		for j, a := range route {
			if a.ID() == id {
				return route[j+1:]
			}
		}
	}
	return route
}

/*
PredictRoute. encodes partial, projects it, and reconstructs the continuation from the nearest training routes:
the nearest route's arcs after the latest partial arc it visits, followed by the not yet predicted continuation
arcs of the next nearest routes.

a continuation arc that is part of partial, or that its own neighbor route already contributed, stops the
prediction with OUTCOME_CYCLIC. arcs contributed by a nearer neighbor are skipped.
*/
func (m *SimmonsPCA) PredictRoute(partial da.Route) (Prediction, error) {
	if len(partial) == 0 {
		return Prediction{}, ErrEmptyPartialRoute
	}
	if !m.IsTrained() {
		return Prediction{}, ErrModelNotTrained
	}

	v, dropped := m.encode(partial)
	z := m.project(v)
	neighbors := m.nearest(z)
	confidence := Confidence(neighbors[0].dist)

	partialSet := partial.IDSet()
	predictedSet := make(map[da.ArcID]struct{})
	predicted := make(da.Route, 0)
	for _, nb := range neighbors {
		own := make(map[da.ArcID]struct{})
		for _, a := range continuationOf(m.routes[nb.idx], partial) {
			_, inPartial := partialSet[a.ID()]
			_, repeated := own[a.ID()]
			if inPartial || repeated {
				p := cyclic(predicted, confidence, a)
				p.DroppedArcs = dropped
				return p, nil
			}
			own[a.ID()] = struct{}{}
			if _, ok := predictedSet[a.ID()]; ok {
				continue
			}
			predictedSet[a.ID()] = struct{}{}
			predicted = append(predicted, a)
		}
	}

	p := completed(predicted, confidence)
	p.DroppedArcs = dropped
	return p, nil
}

// Confidence maps a distance in the reduced space to (0, 1], 1 at distance 0.
func Confidence(dist float64) float64 {
	if math.IsNaN(dist) || dist < 0 {
		return 0
	}
	return 1.0 / (1.0 + dist)
}

// TrainingVector returns the route vector of the i-th training route.
func (m *SimmonsPCA) TrainingVector(i int) []float64 {
	if m.raw == nil {
		return nil
	}
	return mat.Row(nil, i, m.raw)
}
