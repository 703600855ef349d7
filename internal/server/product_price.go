package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pricedomain "github.com/smallbiznis/quotehub/internal/productprice/domain"
)

func (s *Server) SetProductPrice(c *gin.Context) {
	var payload struct {
		ProductID string `json:"product_id"`
		RegionID  string `json:"region_id"`
		Price     int64  `json:"price"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	price, err := s.priceSvc.Set(c.Request.Context(), pricedomain.SetPriceRequest{
		ProductID: payload.ProductID,
		RegionID:  payload.RegionID,
		Price:     payload.Price,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product_price": price})
}

func (s *Server) ListProductPrices(c *gin.Context) {
	offset, limit, err := parsePagination(c.Query("offset"), c.Query("limit"), 50)
	if err != nil {
		AbortWithError(c, newValidationError("pagination", err.Error(), "invalid pagination"))
		return
	}

	regionID := c.Query("region_id")
	if regionID == "" {
		regionID, _ = c.Cookie("activeRegion")
	}
	if regionID == "" {
		AbortWithError(c, newValidationError("region_id", "required", "region_id is required"))
		return
	}

	resp, err := s.priceSvc.ListByRegion(c.Request.Context(), pricedomain.ListPriceRequest{
		RegionID: regionID,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteProductPrice(c *gin.Context) {
	id := c.Param("id")
	if err := s.priceSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"object":  "product_price",
		"deleted": true,
	})
}
