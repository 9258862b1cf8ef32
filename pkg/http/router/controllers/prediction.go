package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/routepredict/pkg"
	"github.com/lintang-b-s/routepredict/pkg/engine"
	helper "github.com/lintang-b-s/routepredict/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type predictionAPI struct {
	predictionService PredictionService
	log               *zap.Logger
}

func New(predictionService PredictionService, log *zap.Logger) *predictionAPI {
	return &predictionAPI{
		predictionService: predictionService,
		log:               log,
	}
}

func (api *predictionAPI) Routes(group *helper.RouteGroup) {
	group.POST("/predict", api.predictRoute)
	group.GET("/roads/nearest", api.nearestRoads)
}

func (api *predictionAPI) predictRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request predictRouteRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	models := []string{request.Model}
	if request.Model == "" {
		models = []string{engine.MODEL_SIMMONS, engine.MODEL_SIMMONS_PCA}
	}

	resp := predictionsResponse{Predictions: make([]predictRouteResponse, 0, len(models))}
	for _, model := range models {
		partial, pred, err := api.predictionService.PredictRoute(request.arcIDs(), model)
		if err != nil {
			api.getStatusCode(w, r, err)
			return
		}
		resp.Predictions = append(resp.Predictions, NewPredictRouteResponse(model, partial, pred))
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *predictionAPI) nearestRoads(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestRoadsRequest
		err     error
	)

	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}
	request.Radius = pkg.NEAREST_ROADS_RADIUS
	if v := query.Get("radius"); v != "" {
		request.Radius, err = strconv.ParseFloat(v, 64)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("radius must be a valid float"))
			return
		}
	}
	request.Limit = pkg.NEAREST_ROADS_LIMIT
	if v := query.Get("limit"); v != "" {
		request.Limit, err = strconv.Atoi(v)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("limit must be a valid int"))
			return
		}
	}

	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	roads, err := api.predictionService.NearestRoads(request.Lat, request.Lon, request.Radius, request.Limit)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNearestRoadsResponse(roads)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
