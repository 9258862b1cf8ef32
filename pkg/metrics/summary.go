package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary of a list of scores. The zero Summary describes an empty list.
type Summary struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Avg   float64 `json:"avg"`
	Max   float64 `json:"max"`
}

func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	return Summary{
		Count: len(values),
		Min:   floats.Min(values),
		Avg:   stat.Mean(values, nil),
		Max:   floats.Max(values),
	}
}

func (s Summary) String() string {
	if s.Count == 0 {
		return "count 0"
	}
	return fmt.Sprintf("count %d min %5.4f avg %5.4f max %5.4f", s.Count, s.Min, s.Avg, s.Max)
}
