package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/lintang-b-s/routepredict/pkg/evaluation"
)

var scoreHeader = []string{"fold", "route", "confidence", "score_simmons_pca", "score_simmons", "outcome_simmons_pca", "outcome_simmons"}

// WriteScores writes one row per evaluated route with the reduced-space confidence and
// the scores of both models.
func WriteScores(w io.Writer, report *evaluation.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scoreHeader); err != nil {
		return err
	}
	for _, e := range report.Evaluations() {
		row := []string{
			strconv.Itoa(e.Fold),
			strconv.Itoa(e.Index),
			strconv.FormatFloat(e.SimmonsPCA.Prediction.Confidence, 'f', -1, 64),
			strconv.FormatFloat(e.SimmonsPCA.Score, 'f', -1, 64),
			strconv.FormatFloat(e.Simmons.Score, 'f', -1, 64),
			e.SimmonsPCA.Prediction.Outcome.String(),
			e.Simmons.Prediction.Outcome.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteScoresFile(filename string, report *evaluation.Report) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteScores(f, report)
}
