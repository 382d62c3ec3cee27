package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nekogravitycat/stay-booking-backend/internal/auth"
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/stay-booking-backend/internal/pricing"
	"github.com/nekogravitycat/stay-booking-backend/internal/unit"
	"github.com/nekogravitycat/stay-booking-backend/internal/user"
)

type PeakRateHandler struct {
	service     pricing.Service
	unitService unit.Service
	userService user.Service
}

func NewPeakRateHandler(service pricing.Service, unitService unit.Service, userService user.Service) *PeakRateHandler {
	return &PeakRateHandler{
		service:     service,
		unitService: unitService,
		userService: userService,
	}
}

func (h *PeakRateHandler) checkIsSysAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsSystemAdmin
}

// canManageUnit writes the error response itself and reports whether the
// caller owns the unit's property.
func (h *PeakRateHandler) canManageUnit(c *gin.Context, unitID string) bool {
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

func (h *PeakRateHandler) List(c *gin.Context) {
	unitID := c.Param("id")
	if _, err := uuid.Parse(unitID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rates, err := h.service.ListRates(c.Request.Context(), unitID)
	if err != nil {
		if errors.Is(err, pricing.ErrUnitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list peak rates"})
		return
	}

	items := make([]PeakRateResponse, len(rates))
	for i := range rates {
		items[i] = NewPeakRateResponse(&rates[i])
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *PeakRateHandler) Create(c *gin.Context) {
	unitID := c.Param("id")
	if _, err := uuid.Parse(unitID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body CreatePeakRateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := calendar.ParseRange(body.StartDate, body.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.canManageUnit(c, unitID) {
		return
	}

	rate, err := h.service.CreateRate(c.Request.Context(), pricing.CreateRateRequest{
		UnitID:      unitID,
		Range:       r,
		Type:        pricing.RateType(body.RateType),
		Value:       body.Value,
		Description: body.Description,
	})
	if err != nil {
		h.writeRateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPeakRateResponse(rate))
}

func (h *PeakRateHandler) Update(c *gin.Context) {
	rateID := c.Param("id")
	if _, err := uuid.Parse(rateID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdatePeakRateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	existing, err := h.service.GetRate(c.Request.Context(), rateID)
	if err != nil {
		if errors.Is(err, pricing.ErrRateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "peak rate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get peak rate"})
		return
	}

	if !h.canManageUnit(c, existing.UnitID) {
		return
	}

	patch := pricing.RatePatch{
		Value:       body.Value,
		Description: body.Description,
	}
	if body.RateType != nil {
		t := pricing.RateType(*body.RateType)
		patch.Type = &t
	}

	// Range patch: either boundary may move, both go through the
	// canonical parser and the half-open invariant.
	if body.StartDate != nil || body.EndDate != nil {
		start, end := existing.Range.Start, existing.Range.End
		if body.StartDate != nil {
			if start, err = calendar.Parse(*body.StartDate); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		if body.EndDate != nil {
			if end, err = calendar.Parse(*body.EndDate); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		r, err := calendar.NewRange(start, end)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		patch.Range = &r
	}

	rate, err := h.service.UpdateRate(c.Request.Context(), rateID, patch)
	if err != nil {
		h.writeRateError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPeakRateResponse(rate))
}

func (h *PeakRateHandler) Delete(c *gin.Context) {
	rateID := c.Param("id")
	if _, err := uuid.Parse(rateID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	existing, err := h.service.GetRate(c.Request.Context(), rateID)
	if err != nil {
		if errors.Is(err, pricing.ErrRateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "peak rate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get peak rate"})
		return
	}

	if !h.canManageUnit(c, existing.UnitID) {
		return
	}

	if err := h.service.DeleteRate(c.Request.Context(), rateID); err != nil {
		if errors.Is(err, pricing.ErrRateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "peak rate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete peak rate"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PeakRateHandler) writeRateError(c *gin.Context, err error) {
	var overlapErr *pricing.OverlapError
	switch {
	case errors.As(err, &overlapErr):
		c.JSON(http.StatusConflict, ConflictResponse{
			Error:    err.Error(),
			Conflict: NewPeakRateResponse(&overlapErr.Conflict),
		})
	case errors.Is(err, pricing.ErrInvalidValue), errors.Is(err, pricing.ErrInvalidType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrRateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "peak rate not found"})
	case errors.Is(err, pricing.ErrUnitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write peak rate"})
	}
}
