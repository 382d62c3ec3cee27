package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nekogravitycat/stay-booking-backend/internal/auth"
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/stay-booking-backend/internal/property"
	"github.com/nekogravitycat/stay-booking-backend/internal/user"
)

type PropertyHandler struct {
	service     property.Service
	userService user.Service
}

func NewPropertyHandler(service property.Service, userService user.Service) *PropertyHandler {
	return &PropertyHandler{service: service, userService: userService}
}

// checkIsSysAdmin helper checks if the current user is a system admin
func (h *PropertyHandler) checkIsSysAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsSystemAdmin
}

func (h *PropertyHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := property.Filter{
		OwnerID:  c.Query("owner_id"),
		Page:     page,
		PageSize: pageSize,
	}

	properties, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list properties"})
		return
	}

	items := make([]PropertyResponse, len(properties))
	for i, p := range properties {
		items[i] = NewPropertyResponse(p)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *PropertyHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == property.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get property"})
		return
	}

	c.JSON(http.StatusOK, NewPropertyResponse(p))
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var body CreatePropertyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	p, err := h.service.Create(c.Request.Context(), property.CreateRequest{
		OwnerID:     userID,
		Name:        body.Name,
		Address:     body.Address,
		Description: body.Description,
		Timezone:    body.Timezone,
	})
	if err != nil {
		switch err {
		case property.ErrNameRequired, property.ErrInvalidTimezone:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case property.ErrOwnerNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create property"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewPropertyResponse(p))
}

func (h *PropertyHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdatePropertyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := auth.GetUserID(c)
	if !h.canManage(c, id, userID) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, property.UpdateRequest{
		Name:        body.Name,
		Address:     body.Address,
		Description: body.Description,
		Timezone:    body.Timezone,
	})
	if err != nil {
		switch err {
		case property.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		case property.ErrNameRequired, property.ErrInvalidTimezone:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update property"})
		}
		return
	}

	c.JSON(http.StatusOK, NewPropertyResponse(p))
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	userID := auth.GetUserID(c)
	if !h.canManage(c, id, userID) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if err == property.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete property"})
		return
	}

	c.Status(http.StatusNoContent)
}

// canManage writes the error response itself and reports whether the
// caller may mutate the property.
func (h *PropertyHandler) canManage(c *gin.Context, propertyID, userID string) bool {
	if h.checkIsSysAdmin(c, userID) {
		return true
	}

	isOwner, err := h.service.IsOwner(c.Request.Context(), propertyID, userID)
	if err != nil {
		if err == property.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
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
