package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nekogravitycat/stay-booking-backend/internal/auth"
	"github.com/nekogravitycat/stay-booking-backend/internal/availability"
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/stay-booking-backend/internal/unit"
	"github.com/nekogravitycat/stay-booking-backend/internal/user"
)

type AvailabilityHandler struct {
	service     availability.Service
	unitService unit.Service
	userService user.Service
}

func NewAvailabilityHandler(service availability.Service, unitService unit.Service, userService user.Service) *AvailabilityHandler {
	return &AvailabilityHandler{
		service:     service,
		unitService: unitService,
		userService: userService,
	}
}

func (h *AvailabilityHandler) checkIsSysAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsSystemAdmin
}

func (h *AvailabilityHandler) canManageUnit(c *gin.Context, unitID string) bool {
	userID := auth.GetUserID(c)
	if h.checkIsSysAdmin(c, userID) {
		return true
	}

	isOwner, err := h.unitService.IsOwner(c.Request.Context(), unitID, userID)
	if err != nil {
		if errors.Is(err, unit.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
			return false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permission"})
		return false
	}
	if !isOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return false
	}
	return true
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	unitID := c.Param("id")
	if _, err := uuid.Parse(unitID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := request.RangeQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Resolve(c.Request.Context(), unitID, r)
	if err != nil {
		if errors.Is(err, availability.ErrUnitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve availability"})
		return
	}

	c.JSON(http.StatusOK, NewRangeAvailabilityResponse(result))
}

func (h *AvailabilityHandler) Write(c *gin.Context) {
	unitID := c.Param("id")
	if _, err := uuid.Parse(unitID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body WriteOverridesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	writes := make([]availability.WriteRequest, len(body.Writes))
	for i, w := range body.Writes {
		d, err := calendar.Parse(w.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		writes[i] = availability.WriteRequest{Date: d, IsAvailable: *w.IsAvailable}
	}

	if !h.canManageUnit(c, unitID) {
		return
	}

	if err := h.service.Write(c.Request.Context(), unitID, writes); err != nil {
		if errors.Is(err, availability.ErrUnitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write availability"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AvailabilityHandler) WriteMonth(c *gin.Context) {
	unitID := c.Param("id")
	if _, err := uuid.Parse(unitID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body WriteMonthRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := calendar.ParseMonth(body.Month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.canManageUnit(c, unitID) {
		return
	}

	if err := h.service.WriteRange(c.Request.Context(), unitID, r, *body.IsAvailable); err != nil {
		if errors.Is(err, availability.ErrUnitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write availability"})
		return
	}

	c.Status(http.StatusNoContent)
}
