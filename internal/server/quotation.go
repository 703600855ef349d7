package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/quotehub/internal/pdf"
	quotationdomain "github.com/smallbiznis/quotehub/internal/quotation/domain"
)

func (s *Server) CreateQuotation(c *gin.Context) {
	var req quotationdomain.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	if err := validateQuotationRequest(req); err != nil {
		AbortWithError(c, err)
		return
	}

	created, err := s.quotationSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// The response carries the default relation set like the read routes.
	full, err := s.quotationSvc.Retrieve(c.Request.Context(), created.ID, quotationdomain.FindConfig{
		Relations: quotationdomain.DefaultRelations,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotation": full})
}

func validateQuotationRequest(req quotationdomain.CreateQuotationRequest) error {
	var errs ValidationErrors
	addError := func(field, code, message string) {
		errs.Errors = append(errs.Errors, ValidationError{Field: field, Code: code, Message: message})
	}

	if req.SalePersionID == "" {
		addError("sale_persion_id", "required", "sale_persion_id is required")
	}
	if req.CustomerID == "" {
		addError("customer_id", "required", "customer_id is required")
	}
	if req.RegionID == "" {
		addError("region_id", "required", "region_id is required")
	}
	if req.Code == "" {
		addError("code", "required", "code is required")
	}
	if req.Title == "" {
		addError("title", "required", "title is required")
	}
	if len(req.QuotationLines) == 0 {
		addError("quotation_lines", "min", "quotation_lines must contain at least one element")
	}
	for _, line := range req.QuotationLines {
		if line.ProductID == "" {
			addError("quotation_lines.product_id", "required", "product_id is required")
		}
		if line.Volume < 1 {
			addError("quotation_lines.volume", "min", "volume must be at least 1")
		}
		for _, child := range line.ChildProduct {
			if child.ProductID == "" {
				addError("quotation_lines.child_product.product_id", "required", "product_id is required")
			}
			if child.Volume < 1 {
				addError("quotation_lines.child_product.volume", "min", "volume must be at least 1")
			}
		}
	}

	if len(errs.Errors) > 0 {
		return &errs
	}
	return nil
}

func parseQuotationFilter(c *gin.Context) (quotationdomain.Filter, error) {
	filter := quotationdomain.Filter{
		Q:             c.Query("q"),
		Code:          c.Query("code"),
		Title:         c.Query("title"),
		CustomerID:    c.Query("customer"),
		SalePersionID: c.Query("sale_persion"),
	}

	if id := c.Query("id"); id != "" {
		filter.IDs = parseCSV(id)
	}

	for _, field := range []struct {
		param  string
		target **quotationdomain.TimeComparison
	}{
		{"created_at", &filter.CreatedAt},
		{"updated_at", &filter.UpdatedAt},
	} {
		cmp := quotationdomain.TimeComparison{}
		var set bool
		for _, op := range []struct {
			suffix   string
			dest     **time.Time
			endOfDay bool
		}{
			{"gt", &cmp.Gt, true},
			{"gte", &cmp.Gte, false},
			{"lt", &cmp.Lt, false},
			{"lte", &cmp.Lte, true},
		} {
			raw := c.Query(field.param + "[" + op.suffix + "]")
			parsed, err := parseOptionalTime(raw, op.endOfDay)
			if err != nil {
				return quotationdomain.Filter{}, newValidationError(field.param, "invalid_time", "invalid time value")
			}
			if parsed != nil {
				*op.dest = parsed
				set = true
			}
		}
		if set {
			*field.target = &cmp
		}
	}

	return filter, nil
}

func (s *Server) ListQuotations(c *gin.Context) {
	offset, limit, err := parsePagination(c.Query("offset"), c.Query("limit"), 50)
	if err != nil {
		AbortWithError(c, newValidationError("pagination", err.Error(), "invalid pagination"))
		return
	}

	filter, err := parseQuotationFilter(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	relations := quotationdomain.DefaultRelations
	if expand, ok := c.GetQuery("expand"); ok {
		relations = parseCSV(expand)
	}

	cfg := quotationdomain.FindConfig{
		Relations: relations,
		Fields:    parseCSV(c.Query("fields")),
		Offset:    offset,
		Limit:     limit,
	}

	// Region scoping comes from the activeRegion cookie, not a query
	// parameter.
	activeRegion, _ := c.Cookie("activeRegion")

	quotations, count, err := s.quotationSvc.ListAndCount(c.Request.Context(), filter, cfg, activeRegion)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotations": quotations,
		"count":      count,
		"offset":     offset,
		"limit":      limit,
	})
}

func (s *Server) GetQuotation(c *gin.Context) {
	relations := quotationdomain.DefaultRelations
	if expand, ok := c.GetQuery("expand"); ok {
		relations = parseCSV(expand)
	}

	quotation, err := s.quotationSvc.Retrieve(c.Request.Context(), c.Param("id"), quotationdomain.FindConfig{
		Relations: relations,
		Fields:    parseCSV(c.Query("fields")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotation": quotation})
}

func (s *Server) GetQuotationPDF(c *gin.Context) {
	quotation, err := s.quotationSvc.Retrieve(c.Request.Context(), c.Param("id"), quotationdomain.FindConfig{
		Relations: quotationdomain.DefaultRelations,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdfRenderer.RenderQuotation(c.Request.Context(), &quotation)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+pdf.AttachmentName(&quotation)+`"`)
	c.DataFromReader(http.StatusOK, -1, "application/pdf", doc, nil)
}

func (s *Server) DeleteQuotation(c *gin.Context) {
	id := c.Param("id")
	if err := s.quotationSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"object":  "quotation",
		"deleted": true,
	})
}
