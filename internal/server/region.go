package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	regiondomain "github.com/smallbiznis/quotehub/internal/region/domain"
)

type regionPayload struct {
	Name         *string  `json:"name"`
	CurrencyCode *string  `json:"currency_code"`
	TaxRate      *float64 `json:"tax_rate"`
}

func (s *Server) CreateRegion(c *gin.Context) {
	var payload regionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	req := regiondomain.CreateRegionRequest{}
	if payload.Name != nil {
		req.Name = *payload.Name
	}
	if payload.CurrencyCode != nil {
		req.CurrencyCode = *payload.CurrencyCode
	}
	if payload.TaxRate != nil {
		req.TaxRate = *payload.TaxRate
	}

	region, err := s.regionSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"region": region})
}

func (s *Server) ListRegions(c *gin.Context) {
	offset, limit, err := parsePagination(c.Query("offset"), c.Query("limit"), 50)
	if err != nil {
		AbortWithError(c, newValidationError("pagination", err.Error(), "invalid pagination"))
		return
	}

	resp, err := s.regionSvc.List(c.Request.Context(), regiondomain.ListRegionRequest{
		Name:   c.Query("name"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetRegion(c *gin.Context) {
	region, err := s.regionSvc.GetByID(c.Request.Context(), regiondomain.GetRegionRequest{ID: c.Param("id")})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"region": region})
}

func (s *Server) UpdateRegion(c *gin.Context) {
	var payload regionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	region, err := s.regionSvc.Update(c.Request.Context(), regiondomain.UpdateRegionRequest{
		ID:           c.Param("id"),
		Name:         payload.Name,
		CurrencyCode: payload.CurrencyCode,
		TaxRate:      payload.TaxRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"region": region})
}

func (s *Server) DeleteRegion(c *gin.Context) {
	id := c.Param("id")
	if err := s.regionSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"object":  "region",
		"deleted": true,
	})
}
