package ginserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainblock "staybook/internal/domain/block"
	domainbooking "staybook/internal/domain/booking"
	domainguest "staybook/internal/domain/guest"
	domainproperty "staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"

	"staybook/internal/app/availability"
	guestsvc "staybook/internal/app/services/guest"
)

// writeError maps domain and application errors onto HTTP statuses in one
// place so the handlers stay thin.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainproperty.ErrPropertyNotFound),
		errors.Is(err, domainproperty.ErrOwnerNotFound),
		errors.Is(err, domainbooking.ErrBookingNotFound),
		errors.Is(err, domainblock.ErrBlockNotFound),
		errors.Is(err, domainguest.ErrGuestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, daterange.ErrStartAfterEnd),
		errors.Is(err, daterange.ErrStartInPast),
		errors.Is(err, guestsvc.ErrEmailRequired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, availability.ErrBooked),
		errors.Is(err, availability.ErrBlocked),
		errors.Is(err, domainbooking.ErrBookingCanceled),
		errors.Is(err, domainbooking.ErrAlreadyCanceled),
		errors.Is(err, domainbooking.ErrNotCanceled),
		errors.Is(err, domainguest.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domainblock.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
