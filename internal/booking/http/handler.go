package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nekogravitycat/stay-booking-backend/internal/auth"
	"github.com/nekogravitycat/stay-booking-backend/internal/booking"
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/stay-booking-backend/internal/pricing"
	"github.com/nekogravitycat/stay-booking-backend/internal/user"
)

type BookingHandler struct {
	service     booking.Service
	userService user.Service
}

func NewBookingHandler(service booking.Service, userService user.Service) *BookingHandler {
	return &BookingHandler{
		service:     service,
		userService: userService,
	}
}

func (h *BookingHandler) checkIsSysAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsSystemAdmin
}

func (h *BookingHandler) Quote(c *gin.Context) {
	unitID := c.Param("id")
	if _, err := uuid.Parse(unitID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := calendar.ParseRange(c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), unitID, r)
	if err != nil {
		h.writeStayError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewQuoteResponse(quote))
}

func (h *BookingHandler) Calendar(c *gin.Context) {
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

	cells, err := h.service.Calendar(c.Request.Context(), unitID, r)
	if err != nil {
		h.writeStayError(c, err)
		return
	}

	items := make([]CalendarCellResponse, len(cells))
	for i, cell := range cells {
		items[i] = CalendarCellResponse{
			Date:        cell.Date,
			Price:       cell.Price,
			IsPeak:      cell.IsPeak,
			IsAvailable: cell.IsAvailable,
		}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *BookingHandler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	checkIn, err := calendar.Parse(body.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := calendar.Parse(body.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateBookingRequest{
		UnitID:   body.UnitID,
		UserID:   auth.GetUserID(c),
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		h.writeStayError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *BookingHandler) List(c *gin.Context) {
	userID := auth.GetUserID(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := booking.Filter{
		UserID:   userID,
		UnitID:   c.Query("unit_id"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	// Admins may list across all guests.
	if h.checkIsSysAdmin(c, userID) {
		filter.UserID = c.Query("user_id")
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *BookingHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, booking.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get booking"})
		}
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, booking.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		case errors.Is(err, booking.ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, gin.H{"error": "booking is already cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *BookingHandler) writeStayError(c *gin.Context, err error) {
	var unavailErr *booking.DatesUnavailableError
	switch {
	case errors.As(err, &unavailErr):
		c.JSON(http.StatusUnprocessableEntity, UnavailableResponse{
			Error:        "dates unavailable",
			BlockedDates: unavailErr.BlockedDates,
		})
	case errors.Is(err, booking.ErrUnitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
	case errors.Is(err, booking.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrCheckInPast):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrDateConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrAmbiguousRates):
		// Data-integrity condition, not a client mistake.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process stay"})
	}
}
