package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	blockapp "staybook/internal/app/services/block"
	domainblock "staybook/internal/domain/block"
	domainproperty "staybook/internal/domain/property"
)

// BlockHandler exposes owner-facing block management. The owner identity
// arrives in the request body (create) or the X-Owner-ID header (update,
// delete), mirroring the transport-agnostic contract; a host layer with real
// authentication would fill it from the session instead.
type BlockHandler struct {
	Service *blockapp.Service
}

type createBlockRequest struct {
	PropertyID string `json:"property_id" binding:"required"`
	OwnerID    string `json:"owner_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type updateBlockRequest struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Reason    *string `json:"reason"`
}

type blockResponse struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason,omitempty"`
}

func toBlockResponse(b *domainblock.Block) blockResponse {
	return blockResponse{
		ID:         string(b.ID),
		PropertyID: string(b.PropertyID),
		StartDate:  b.Range.Start.Format(dateLayout),
		EndDate:    b.Range.End.Format(dateLayout),
		Reason:     b.Reason,
	}
}

func (h BlockHandler) Create(c *gin.Context) {
	var req createBlockRequest
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

	b, err := h.Service.Create(c.Request.Context(), blockapp.CreateParams{
		PropertyID: domainproperty.PropertyID(req.PropertyID),
		OwnerID:    domainproperty.OwnerID(req.OwnerID),
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBlockResponse(b))
}

func (h BlockHandler) Get(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), domainblock.BlockID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBlockResponse(b))
}

func (h BlockHandler) ListByProperty(c *gin.Context) {
	bs, err := h.Service.ListByProperty(c.Request.Context(), domainproperty.PropertyID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]blockResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBlockResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

func (h BlockHandler) Update(c *gin.Context) {
	ownerID, ok := ownerFromHeader(c)
	if !ok {
		return
	}
	var req updateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params := blockapp.UpdateParams{Reason: req.Reason}
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

	b, err := h.Service.Update(c.Request.Context(), domainblock.BlockID(c.Param("id")), ownerID, params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBlockResponse(b))
}

func (h BlockHandler) Delete(c *gin.Context) {
	ownerID, ok := ownerFromHeader(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), domainblock.BlockID(c.Param("id")), ownerID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func ownerFromHeader(c *gin.Context) (domainproperty.OwnerID, bool) {
	raw := c.GetHeader("X-Owner-ID")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Owner-ID header required"})
		return "", false
	}
	return domainproperty.OwnerID(raw), true
}

var _ BlockHTTP = BlockHandler{}
