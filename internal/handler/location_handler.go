package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/waseem96525/GPStrackingapp/internal/model"
	"github.com/waseem96525/GPStrackingapp/internal/repository"
	"github.com/waseem96525/GPStrackingapp/internal/service"
)

// LocationHandler handles location ingestion and query HTTP endpoints
type LocationHandler struct {
	trackingService *service.TrackingService
}

func NewLocationHandler(trackingService *service.TrackingService) *LocationHandler {
	return &LocationHandler{trackingService: trackingService}
}

// SubmitLocation godoc
// @Summary Submit a GPS location ping
// @Description Accepts one location sample for a registered device, persists it, and broadcasts it to connected observers.
// @Tags Locations
// @Accept json
// @Produce json
// @Param body body model.SubmitLocationRequest true "Location ping"
// @Success 200 {object} model.SubmitLocationResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 503 {object} model.ErrorResponse
// @Router /location [post]
func (h *LocationHandler) SubmitLocation(c *gin.Context) {
	var req model.SubmitLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: "device_id, latitude, and longitude are required",
		})
		return
	}

	loc, err := h.trackingService.SubmitLocation(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.SubmitLocationResponse{
		Success:     true,
		LocationID:  loc.ID,
		Broadcasted: true,
	})
}

// GetLatest godoc
// @Summary Get the latest location for a device
// @Tags Locations
// @Produce json
// @Param device_id path string true "Device ID"
// @Success 200 {object} model.LocationWithDevice
// @Failure 404 {object} model.ErrorResponse
// @Router /location/{device_id}/latest [get]
func (h *LocationHandler) GetLatest(c *gin.Context) {
	deviceID := c.Param("device_id")

	loc, err := h.trackingService.Latest(deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "No location data found"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loc)
}

// GetLatestAll godoc
// @Summary Get the latest location of every device
// @Description One entry per device with at least one sample, ordered by timestamp descending.
// @Tags Locations
// @Produce json
// @Success 200 {array} model.LocationWithDevice
// @Router /locations/latest [get]
func (h *LocationHandler) GetLatestAll(c *gin.Context) {
	locations, err := h.trackingService.LatestAll()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, locations)
}

// GetHistory godoc
// @Summary Get location history for a device
// @Tags Locations
// @Produce json
// @Param device_id path string true "Device ID"
// @Param limit query int false "Max entries to return (default: 100)"
// @Param from query string false "Lower timestamp bound (RFC3339)"
// @Param to query string false "Upper timestamp bound (RFC3339)"
// @Success 200 {array} model.Location
// @Failure 400 {object} model.ErrorResponse
// @Router /location/{device_id}/history [get]
func (h *LocationHandler) GetHistory(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req model.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	from, err := parseTimeBound(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid 'from' timestamp"})
		return
	}
	to, err := parseTimeBound(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid 'to' timestamp"})
		return
	}

	locations, err := h.trackingService.History(deviceID, req.Limit, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, locations)
}

// parseTimeBound parses an optional RFC3339 range bound; empty means
// unbounded on that side.
func parseTimeBound(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
	}
	return parsed.UTC(), nil
}
