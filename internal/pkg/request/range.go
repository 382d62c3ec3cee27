package request

import (
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

// RangeQuery reads a date range from query parameters. Callers may pass
// either explicit start_date/end_date bounds or a month shorthand that
// expands to the whole month.
func RangeQuery(c *gin.Context) (calendar.Range, error) {
	if month := c.Query("month"); month != "" {
		return calendar.ParseMonth(month)
	}
	return calendar.ParseRange(c.Query("start_date"), c.Query("end_date"))
}
