package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/quotehub/internal/customer/domain"
)

type customerPayload struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var payload customerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	req := customerdomain.CreateCustomerRequest{}
	if payload.Email != nil {
		req.Email = *payload.Email
	}
	if payload.FirstName != nil {
		req.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		req.LastName = *payload.LastName
	}
	if payload.Phone != nil {
		req.Phone = *payload.Phone
	}
	if payload.Company != nil {
		req.Company = *payload.Company
	}

	customer, err := s.customerSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (s *Server) ListCustomers(c *gin.Context) {
	offset, limit, err := parsePagination(c.Query("offset"), c.Query("limit"), 50)
	if err != nil {
		AbortWithError(c, newValidationError("pagination", err.Error(), "invalid pagination"))
		return
	}

	resp, err := s.customerSvc.List(c.Request.Context(), customerdomain.ListCustomerRequest{
		Query:  c.Query("q"),
		Email:  c.Query("email"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetCustomer(c *gin.Context) {
	customer, err := s.customerSvc.GetByID(c.Request.Context(), customerdomain.GetCustomerRequest{ID: c.Param("id")})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var payload customerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	customer, err := s.customerSvc.Update(c.Request.Context(), customerdomain.UpdateCustomerRequest{
		ID:        c.Param("id"),
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
		Company:   payload.Company,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	if err := s.customerSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"object":  "customer",
		"deleted": true,
	})
}
