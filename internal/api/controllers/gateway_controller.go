package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nearby/internal/models/request_models"
	"nearby/internal/services"
	"nearby/pkg/utils"
)

type GatewayController struct {
	placeService services.PlaceServiceInterface
	logger       *zap.Logger
}

func NewGatewayController(placeService services.PlaceServiceInterface, logger *zap.Logger) *GatewayController {
	return &GatewayController{
		placeService: placeService,
		logger:       logger,
	}
}

// POST /api/gemini
func (g *GatewayController) HandleAction(c *gin.Context) {
	var req request_models.GatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	switch req.Action {
	case request_models.ActionFindNearbyPlaces:
		var payload request_models.FindNearbyPlacesRequest
		if !g.decodePayload(c, req.Payload, &payload) {
			return
		}
		places, err := g.placeService.FindNearbyPlaces(c.Request.Context(), c.GetString("trace_id"), payload)
		if err != nil {
			utils.HandleServiceError(c, g.logger, err)
			return
		}
		utils.RespondSuccess(c, places)

	case request_models.ActionGetPlaceDetails:
		var payload request_models.PlaceDetailsRequest
		if !g.decodePayload(c, req.Payload, &payload) {
			return
		}
		details, err := g.placeService.GetPlaceDetails(c.Request.Context(), payload)
		if err != nil {
			utils.HandleServiceError(c, g.logger, err)
			return
		}
		utils.RespondSuccess(c, details)

	default:
		utils.HandleServiceError(c, g.logger, utils.ErrInvalidAction)
	}
}

// GET /api/searches?limit=20
func (g *GatewayController) RecentSearches(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-100)")
		return
	}

	logs, err := g.placeService.RecentSearches(c.Request.Context(), limit)
	if err != nil {
		utils.HandleServiceError(c, g.logger, err)
		return
	}
	utils.RespondSuccess(c, logs)
}

// MethodNotAllowed answers any non-POST request to the action endpoint.
func (g *GatewayController) MethodNotAllowed(c *gin.Context) {
	utils.RespondError(c, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func (g *GatewayController) decodePayload(c *gin.Context, raw json.RawMessage, out any) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return true
	}
	if err := json.Unmarshal(raw, out); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return false
	}
	return true
}
