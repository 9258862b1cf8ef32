package predictor

import (
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
)

// transitionRow counts observed successors of one arc. next keeps first-seen order
// so that ties resolve to the successor observed first.
type transitionRow struct {
	next   []da.Arc
	counts map[da.ArcID]int
}

func newTransitionRow() *transitionRow {
	return &transitionRow{
		next:   make([]da.Arc, 0, 2),
		counts: make(map[da.ArcID]int, 2),
	}
}

func (r *transitionRow) increment(a da.Arc) {
	if _, ok := r.counts[a.ID()]; !ok {
		r.next = append(r.next, a)
	}
	r.counts[a.ID()]++
}

// best returns the most frequent successor, the earliest observed one on ties.
func (r *transitionRow) best() (da.Arc, bool) {
	var (
		best      da.Arc
		bestCount int
	)
	for _, a := range r.next {
		if c := r.counts[a.ID()]; c > bestCount {
			best, bestCount = a, c
		}
	}
	return best, bestCount > 0
}

// Transition is one learned successor of an arc.
type Transition struct {
	Next  da.Arc
	Count int
}

/*
Simmons. frequency based arc transition model.

Simmons, R., Browning, B., Zhang, Y., & Sadekar, V. (2006). Learning to predict driver route and destination intent.
learns how often arc b directly follows arc a, and predicts a continuation by greedily following the most frequent
transition from the last arc.
*/
type Simmons struct {
	transitions map[da.ArcID]*transitionRow
	known       map[da.ArcID]struct{}
	maxLength   int
}

type SimmonsOption func(*Simmons)

// WithMaxPredictionLength bounds the number of predicted arcs. n <= 0 means the
// number of arcs the model knows.
func WithMaxPredictionLength(n int) SimmonsOption {
	return func(s *Simmons) {
		s.maxLength = n
	}
}

func NewSimmons(opts ...SimmonsOption) *Simmons {
	s := &Simmons{
		transitions: make(map[da.ArcID]*transitionRow),
		known:       make(map[da.ArcID]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LearnRoute counts every consecutive arc pair of route. Counts accumulate over calls.
func (s *Simmons) LearnRoute(route da.Route) {
	for i, a := range route {
		s.known[a.ID()] = struct{}{}
		if i+1 >= len(route) {
			break
		}
		row, ok := s.transitions[a.ID()]
		if !ok {
			row = newTransitionRow()
			s.transitions[a.ID()] = row
		}
		row.increment(route[i+1])
	}
}

func (s *Simmons) LearnRoutes(routes []da.Route) {
	for _, route := range routes {
		s.LearnRoute(route)
	}
}

// KnownArcs. number of distinct arcs seen during learning
func (s *Simmons) KnownArcs() int {
	return len(s.known)
}

// Transitions returns the learned successors of from in first-seen order.
func (s *Simmons) Transitions(from da.ArcID) []Transition {
	row, ok := s.transitions[from]
	if !ok {
		return nil
	}
	ts := make([]Transition, len(row.next))
	for i, a := range row.next {
		ts[i] = Transition{Next: a, Count: row.counts[a.ID()]}
	}
	return ts
}

/*
PredictRoute. greedily extends partial with the most frequent successor of the last arc, until

 1. the last arc has no known successor (OUTCOME_COMPLETE),
 2. the successor is already part of partial or of the prediction (OUTCOME_CYCLIC),
 3. the prediction reaches the maximum length (OUTCOME_TRUNCATED).

since no arc can be predicted twice the prediction never exceeds the number of known arcs.
the frequency model has no proximity measure: Confidence is always 0.
*/
func (s *Simmons) PredictRoute(partial da.Route) (Prediction, error) {
	if len(partial) == 0 {
		return Prediction{}, ErrEmptyPartialRoute
	}

	maxLength := s.maxLength
	if maxLength <= 0 {
		maxLength = len(s.known)
	}

	visited := partial.IDSet()
	predicted := make(da.Route, 0)
	current := partial[len(partial)-1]
	for {
		row, ok := s.transitions[current.ID()]
		if !ok {
			return completed(predicted, 0), nil
		}
		next, ok := row.best()
		if !ok {
			return completed(predicted, 0), nil
		}
		if _, seen := visited[next.ID()]; seen {
			return cyclic(predicted, 0, next), nil
		}
		if len(predicted) >= maxLength {
			return truncated(predicted, 0), nil
		}

		predicted = append(predicted, next)
		visited[next.ID()] = struct{}{}
		current = next
	}
}
