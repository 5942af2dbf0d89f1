package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	bookingapp "staybook/internal/app/services/booking"
	domainbooking "staybook/internal/domain/booking"
	domainguest "staybook/internal/domain/guest"
	domainproperty "staybook/internal/domain/property"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	Service *bookingapp.Service
}

type createBookingRequest struct {
	PropertyID     string `json:"property_id" binding:"required"`
	GuestEmail     string `json:"guest_email" binding:"required"`
	GuestFirstName string `json:"guest_first_name"`
	GuestLastName  string `json:"guest_last_name"`
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date" binding:"required"`
}

type updateBookingRequest struct {
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
	GuestEmail     *string `json:"guest_email"`
	GuestFirstName *string `json:"guest_first_name"`
	GuestLastName  *string `json:"guest_last_name"`
}

type bookingResponse struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	GuestID    string `json:"guest_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status"`
}

func toBookingResponse(b *domainbooking.Booking) bookingResponse {
	return bookingResponse{
		ID:         string(b.ID),
		PropertyID: string(b.PropertyID),
		GuestID:    string(b.GuestID),
		StartDate:  b.Range.Start.Format(dateLayout),
		EndDate:    b.Range.End.Format(dateLayout),
		Status:     string(b.Status),
	}
}

func (h BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.Service.Create(c.Request.Context(), bookingapp.CreateParams{
		PropertyID:     domainproperty.PropertyID(req.PropertyID),
		GuestEmail:     req.GuestEmail,
		GuestFirstName: req.GuestFirstName,
		GuestLastName:  req.GuestLastName,
		StartDate:      start,
		EndDate:        end,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h BookingHandler) Get(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), domainbooking.BookingID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h BookingHandler) ListByProperty(c *gin.Context) {
	bs, err := h.Service.ListByProperty(c.Request.Context(), domainproperty.PropertyID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

func (h BookingHandler) ListByGuest(c *gin.Context) {
	bs, err := h.Service.ListByGuest(c.Request.Context(), domainguest.GuestID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

func (h BookingHandler) Update(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params := bookingapp.UpdateParams{
		GuestEmail:     req.GuestEmail,
		GuestFirstName: req.GuestFirstName,
		GuestLastName:  req.GuestLastName,
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		params.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		params.EndDate = &end
	}

	b, err := h.Service.Update(c.Request.Context(), domainbooking.BookingID(c.Param("id")), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h BookingHandler) Cancel(c *gin.Context) {
	b, err := h.Service.Cancel(c.Request.Context(), domainbooking.BookingID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h BookingHandler) Rebook(c *gin.Context) {
	b, err := h.Service.Rebook(c.Request.Context(), domainbooking.BookingID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h BookingHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), domainbooking.BookingID(c.Param("id"))); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, raw)
}

var _ BookingHTTP = BookingHandler{}
