package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nekogravitycat/stay-booking-backend/internal/auth"
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/stay-booking-backend/internal/property"
	"github.com/nekogravitycat/stay-booking-backend/internal/unit"
	"github.com/nekogravitycat/stay-booking-backend/internal/user"
)

type UnitHandler struct {
	service     unit.Service
	propService property.Service
	userService user.Service
}

func NewUnitHandler(service unit.Service, propService property.Service, userService user.Service) *UnitHandler {
	return &UnitHandler{
		service:     service,
		propService: propService,
		userService: userService,
	}
}

func (h *UnitHandler) checkIsSysAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsSystemAdmin
}

func (h *UnitHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := unit.Filter{
		PropertyID: c.Query("property_id"),
		Page:       page,
		PageSize:   pageSize,
	}

	units, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list units"})
		return
	}

	items := make([]UnitResponse, len(units))
	for i, u := range units {
		items[i] = NewUnitResponse(u)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *UnitHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == unit.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get unit"})
		return
	}

	c.JSON(http.StatusOK, NewUnitResponse(u))
}

func (h *UnitHandler) Create(c *gin.Context) {
	var body CreateUnitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	// Only the property owner (or a sysadmin) may add units to it.
	if !h.checkIsSysAdmin(c, userID) {
		isOwner, err := h.propService.IsOwner(c.Request.Context(), body.PropertyID, userID)
		if err != nil {
			if err == property.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permission"})
			return
		}
		if !isOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			return
		}
	}

	u, err := h.service.Create(c.Request.Context(), unit.CreateRequest{
		PropertyID: body.PropertyID,
		Name:       body.Name,
		Capacity:   body.Capacity,
		BasePrice:  body.BasePrice,
	})
	if err != nil {
		switch err {
		case unit.ErrEmptyName, unit.ErrInvalidCapacity, unit.ErrInvalidBasePrice:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case unit.ErrInvalidProperty:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create unit"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewUnitResponse(u))
}

func (h *UnitHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateUnitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if !h.canManage(c, id) {
		return
	}

	u, err := h.service.Update(c.Request.Context(), id, unit.UpdateRequest{
		Name:      body.Name,
		Capacity:  body.Capacity,
		BasePrice: body.BasePrice,
	})
	if err != nil {
		switch err {
		case unit.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
		case unit.ErrEmptyName, unit.ErrInvalidCapacity, unit.ErrInvalidBasePrice:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update unit"})
		}
		return
	}

	c.JSON(http.StatusOK, NewUnitResponse(u))
}

func (h *UnitHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if !h.canManage(c, id) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if err == unit.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete unit"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UnitHandler) canManage(c *gin.Context, unitID string) bool {
	userID := auth.GetUserID(c)
	if h.checkIsSysAdmin(c, userID) {
		return true
	}

	isOwner, err := h.service.IsOwner(c.Request.Context(), unitID, userID)
	if err != nil {
		if err == unit.ErrNotFound || err == property.ErrNotFound {
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
