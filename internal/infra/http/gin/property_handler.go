package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	propertyapp "staybook/internal/app/services/property"
	domainproperty "staybook/internal/domain/property"
)

type PropertyHandler struct {
	Service *propertyapp.Service
}

type propertyResponse struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description,omitempty"`
}

type ownerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

func toPropertyResponse(p *domainproperty.Property) propertyResponse {
	return propertyResponse{
		ID:          string(p.ID),
		OwnerID:     string(p.OwnerID),
		Name:        p.Name,
		Address:     p.Address,
		Description: p.Description,
	}
}

func toOwnerResponse(o *domainproperty.Owner) ownerResponse {
	return ownerResponse{
		ID:        string(o.ID),
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Email:     o.Email,
		Phone:     o.Phone,
	}
}

func (h PropertyHandler) List(c *gin.Context) {
	ps, err := h.Service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]propertyResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPropertyResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h PropertyHandler) Get(c *gin.Context) {
	p, err := h.Service.Get(c.Request.Context(), domainproperty.PropertyID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPropertyResponse(p))
}

func (h PropertyHandler) ListOwners(c *gin.Context) {
	os, err := h.Service.ListOwners(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]ownerResponse, 0, len(os))
	for _, o := range os {
		out = append(out, toOwnerResponse(o))
	}
	c.JSON(http.StatusOK, out)
}

func (h PropertyHandler) GetOwner(c *gin.Context) {
	o, err := h.Service.GetOwner(c.Request.Context(), domainproperty.OwnerID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOwnerResponse(o))
}

var _ PropertyHTTP = PropertyHandler{}
