package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	userdomain "github.com/smallbiznis/quotehub/internal/user/domain"
)

func (s *Server) CreateUser(c *gin.Context) {
	var payload struct {
		Role      string   `json:"role"`
		Email     string   `json:"email"`
		Name      string   `json:"name"`
		Phone     string   `json:"phone"`
		Password  string   `json:"password"`
		RegionIDs []string `json:"region_ids"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	user, err := s.userSvc.Create(c.Request.Context(), userdomain.CreateUserRequest{
		Role:      userdomain.Role(payload.Role),
		Email:     payload.Email,
		Name:      payload.Name,
		Phone:     payload.Phone,
		Password:  payload.Password,
		RegionIDs: payload.RegionIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) ListUsers(c *gin.Context) {
	offset, limit, err := parsePagination(c.Query("offset"), c.Query("limit"), 50)
	if err != nil {
		AbortWithError(c, newValidationError("pagination", err.Error(), "invalid pagination"))
		return
	}

	resp, err := s.userSvc.List(c.Request.Context(), userdomain.ListUserRequest{
		Role:   userdomain.Role(c.Query("role")),
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

func (s *Server) FilterUsers(c *gin.Context) {
	offset, limit, err := parsePagination(c.Query("offset"), c.Query("limit"), 50)
	if err != nil {
		AbortWithError(c, newValidationError("pagination", err.Error(), "invalid pagination"))
		return
	}

	resp, err := s.userSvc.Filter(c.Request.Context(), c.Query("q"), offset, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetUser(c *gin.Context) {
	user, err := s.userSvc.GetByID(c.Request.Context(), userdomain.GetUserRequest{ID: c.Param("id")})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) UpdateUser(c *gin.Context) {
	var payload struct {
		Role      *string  `json:"role"`
		Email     *string  `json:"email"`
		Name      *string  `json:"name"`
		Phone     *string  `json:"phone"`
		RegionIDs []string `json:"region_ids"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	req := userdomain.UpdateUserRequest{
		ID:        c.Param("id"),
		Email:     payload.Email,
		Name:      payload.Name,
		Phone:     payload.Phone,
		RegionIDs: payload.RegionIDs,
	}
	if payload.Role != nil {
		role := userdomain.Role(*payload.Role)
		req.Role = &role
	}

	user, err := s.userSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) SetUserPassword(c *gin.Context) {
	var payload struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	if err := s.userSvc.SetPassword(c.Request.Context(), c.Param("id"), payload.Password); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      c.Param("id"),
		"object":  "user",
		"updated": true,
	})
}

func (s *Server) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := s.userSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"object":  "user",
		"deleted": true,
	})
}
