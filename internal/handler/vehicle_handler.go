package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/waseem96525/GPStrackingapp/internal/model"
	"github.com/waseem96525/GPStrackingapp/internal/service"
)

// VehicleHandler handles vehicle registration HTTP endpoints
type VehicleHandler struct {
	deviceService *service.DeviceService
}

func NewVehicleHandler(deviceService *service.DeviceService) *VehicleHandler {
	return &VehicleHandler{deviceService: deviceService}
}

// Register godoc
// @Summary Register a new vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param body body model.RegisterVehicleRequest true "Vehicle registration"
// @Success 201 {object} model.RegisterVehicleResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /vehicles/register [post]
func (h *VehicleHandler) Register(c *gin.Context) {
	var req model.RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "device_id and name are required"})
		return
	}

	device, err := h.deviceService.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.RegisterVehicleResponse{
		Success:   true,
		VehicleID: device.ID.String(),
		DeviceID:  device.DeviceID,
	})
}

// List godoc
// @Summary List all registered vehicles
// @Tags Vehicles
// @Produce json
// @Success 200 {array} model.Device
// @Router /vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	devices, err := h.deviceService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, devices)
}

// Delete godoc
// @Summary Delete a vehicle and its location history
// @Tags Vehicles
// @Produce json
// @Param device_id path string true "Device ID"
// @Success 200 {object} model.SuccessResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /vehicles/{device_id} [delete]
func (h *VehicleHandler) Delete(c *gin.Context) {
	deviceID := c.Param("device_id")

	if err := h.deviceService.Delete(deviceID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.SuccessResponse{Success: true, Message: "Vehicle deleted"})
}
