package evaluation

import (
	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/routepredict/pkg"
	"github.com/lintang-b-s/routepredict/pkg/util"
	"github.com/spf13/viper"
)

type Config struct {
	Folds               int     `validate:"gte=2"`
	PartialFraction     float64 `validate:"gt=0,lt=1"`
	ConfidenceThreshold float64 `validate:"gte=0,lte=1"`
	Components          int     `validate:"gte=1"`
	Neighbors           int     `validate:"gte=1"`
	ArcWeighting        string  `validate:"oneof=presence length"`
	// MaxPredictionLength bounds frequency model predictions, 0 means the number of known arcs.
	MaxPredictionLength int `validate:"gte=0"`
	// Workers is the number of folds evaluated concurrently.
	Workers int `validate:"gte=1"`
	Shuffle bool
	Seed    uint64
}

func DefaultConfig() Config {
	return Config{
		Folds:               pkg.CV_FACTOR,
		PartialFraction:     pkg.PARTIAL_LENGTH,
		ConfidenceThreshold: pkg.CONFIDENCE_THRESHOLD,
		Components:          pkg.MAX_COMPONENTS,
		Neighbors:           pkg.NEAREST_NEIGHBORS,
		ArcWeighting:        "presence",
		Workers:             1,
	}
}

// NewConfigFromViper reads the CV_* keys, falling back to DefaultConfig values.
func NewConfigFromViper() (Config, error) {
	def := DefaultConfig()
	viper.SetDefault("CV_FOLDS", def.Folds)
	viper.SetDefault("CV_PARTIAL_FRACTION", def.PartialFraction)
	viper.SetDefault("CV_CONFIDENCE_THRESHOLD", def.ConfidenceThreshold)
	viper.SetDefault("CV_COMPONENTS", def.Components)
	viper.SetDefault("CV_NEIGHBORS", def.Neighbors)
	viper.SetDefault("CV_ARC_WEIGHTING", def.ArcWeighting)
	viper.SetDefault("CV_MAX_PREDICTION_LENGTH", def.MaxPredictionLength)
	viper.SetDefault("CV_WORKERS", def.Workers)
	viper.SetDefault("CV_SHUFFLE", def.Shuffle)
	viper.SetDefault("CV_SEED", def.Seed)

	cfg := Config{
		Folds:               viper.GetInt("CV_FOLDS"),
		PartialFraction:     viper.GetFloat64("CV_PARTIAL_FRACTION"),
		ConfidenceThreshold: viper.GetFloat64("CV_CONFIDENCE_THRESHOLD"),
		Components:          viper.GetInt("CV_COMPONENTS"),
		Neighbors:           viper.GetInt("CV_NEIGHBORS"),
		ArcWeighting:        viper.GetString("CV_ARC_WEIGHTING"),
		MaxPredictionLength: viper.GetInt("CV_MAX_PREDICTION_LENGTH"),
		Workers:             viper.GetInt("CV_WORKERS"),
		Shuffle:             viper.GetBool("CV_SHUFFLE"),
		Seed:                viper.GetUint64("CV_SEED"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "invalid cross-validation config")
	}
	return nil
}
