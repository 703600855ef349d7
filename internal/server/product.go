package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	productdomain "github.com/smallbiznis/quotehub/internal/product/domain"
)

type productPayload struct {
	Title       *string `json:"title"`
	Brand       *string `json:"brand"`
	Description *string `json:"description"`
}

func (s *Server) CreateProduct(c *gin.Context) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	req := productdomain.CreateProductRequest{}
	if payload.Title != nil {
		req.Title = *payload.Title
	}
	if payload.Brand != nil {
		req.Brand = *payload.Brand
	}
	if payload.Description != nil {
		req.Description = *payload.Description
	}

	product, err := s.productSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (s *Server) ListProducts(c *gin.Context) {
	offset, limit, err := parsePagination(c.Query("offset"), c.Query("limit"), 50)
	if err != nil {
		AbortWithError(c, newValidationError("pagination", err.Error(), "invalid pagination"))
		return
	}

	resp, err := s.productSvc.List(c.Request.Context(), productdomain.ListProductRequest{
		Query:  c.Query("q"),
		Brand:  c.Query("brand"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListProductBrands(c *gin.Context) {
	brands, err := s.productSvc.ListBrands(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (s *Server) GetProduct(c *gin.Context) {
	product, err := s.productSvc.GetByID(c.Request.Context(), productdomain.GetProductRequest{ID: c.Param("id")})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	product, err := s.productSvc.Update(c.Request.Context(), productdomain.UpdateProductRequest{
		ID:          c.Param("id"),
		Title:       payload.Title,
		Brand:       payload.Brand,
		Description: payload.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := s.productSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"object":  "product",
		"deleted": true,
	})
}

func (s *Server) CreateProductHardwareLink(c *gin.Context) {
	var payload struct {
		ProductAdditionsID string `json:"product_additions_id"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	link, err := s.productSvc.CreateHardwareLink(c.Request.Context(), productdomain.CreateHardwareLinkRequest{
		ProductParentID:    c.Param("id"),
		ProductAdditionsID: payload.ProductAdditionsID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"additional_hardware": link})
}

func (s *Server) ListProductHardwareLinks(c *gin.Context) {
	links, err := s.productSvc.ListHardwareLinks(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"additional_hardware": links})
}

func (s *Server) DeleteProductHardwareLink(c *gin.Context) {
	id := c.Param("link_id")
	if err := s.productSvc.DeleteHardwareLink(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"object":  "product_additional_hardware",
		"deleted": true,
	})
}
