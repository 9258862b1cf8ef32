package pkg

// enum of arc direction, relative to the (first, second) endpoint order of the road
type Direction uint8

const (
	FORWARD Direction = iota
	BACKWARD
	UNORIENTED
)

func (d Direction) String() string {
	switch d {
	case FORWARD:
		return "forward"
	case BACKWARD:
		return "backward"
	default:
		return "unoriented"
	}
}

func GetDirection(direction string) Direction {
	switch direction {
	case "forward":
		return FORWARD
	case "backward":
		return BACKWARD
	default:
		return UNORIENTED
	}
}

// enum of how a route continuation ended
type Outcome uint8

const (
	OUTCOME_COMPLETE  Outcome = iota // no further transition known
	OUTCOME_CYCLIC                   // next arc was already part of the route
	OUTCOME_TRUNCATED                // hit the maximum prediction length
)

func (o Outcome) String() string {
	switch o {
	case OUTCOME_COMPLETE:
		return "complete"
	case OUTCOME_CYCLIC:
		return "cyclic"
	default:
		return "truncated"
	}
}

// enum of route vector encodings for the reduced-space model
type ArcWeighting uint8

const (
	PRESENCE ArcWeighting = iota
	LENGTH
)

func GetArcWeighting(weighting string) ArcWeighting {
	switch weighting {
	case "length":
		return LENGTH
	default:
		return PRESENCE
	}
}

const (
	MAX_COMPONENTS        = 10
	NEAREST_NEIGHBORS     = 1
	CV_FACTOR             = 10
	PARTIAL_LENGTH        = 0.25
	CONFIDENCE_THRESHOLD  = 0.95
	DEFAULT_ARC_WEIGHT    = 1.0
	RATE_LIMIT_PER_SECOND = 50
	RATE_LIMIT_BURST      = 100

	ROAD_BOUNDING_BOX_RADIUS = 0.05 // km
	NEAREST_ROADS_RADIUS     = 0.1  // km
	NEAREST_ROADS_LIMIT      = 10
)
