package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/quotehub/internal/config"
	"github.com/smallbiznis/quotehub/internal/customer"
	customerdomain "github.com/smallbiznis/quotehub/internal/customer/domain"
	"github.com/smallbiznis/quotehub/internal/migration"
	"github.com/smallbiznis/quotehub/internal/observability"
	obslogger "github.com/smallbiznis/quotehub/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/quotehub/internal/observability/metrics"
	obstracing "github.com/smallbiznis/quotehub/internal/observability/tracing"
	"github.com/smallbiznis/quotehub/internal/pdf"
	"github.com/smallbiznis/quotehub/internal/product"
	productdomain "github.com/smallbiznis/quotehub/internal/product/domain"
	"github.com/smallbiznis/quotehub/internal/productprice"
	pricedomain "github.com/smallbiznis/quotehub/internal/productprice/domain"
	"github.com/smallbiznis/quotehub/internal/quotation"
	quotationdomain "github.com/smallbiznis/quotehub/internal/quotation/domain"
	"github.com/smallbiznis/quotehub/internal/ratelimit"
	"github.com/smallbiznis/quotehub/internal/region"
	regiondomain "github.com/smallbiznis/quotehub/internal/region/domain"
	"github.com/smallbiznis/quotehub/internal/user"
	userdomain "github.com/smallbiznis/quotehub/internal/user/domain"
	"github.com/smallbiznis/quotehub/pkg/db"
	"github.com/smallbiznis/quotehub/pkg/entityid"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	observability.Module,
	db.Module,
	fx.Provide(entityid.NewGenerator),
	fx.Provide(NewEngine),
	migration.Module,
	ratelimit.Module,
	pdf.Module,
	region.Module,
	customer.Module,
	product.Module,
	productprice.Module,
	user.Module,
	quotation.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *entityid.Generator
	quotationSvc quotationdomain.Service
	customerSvc  customerdomain.Service
	regionSvc    regiondomain.Service
	productSvc   productdomain.Service
	priceSvc     pricedomain.Service
	userSvc      userdomain.Service
	pdfRenderer  pdf.Renderer
	writeLimiter *ratelimit.WriteLimiter
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *entityid.Generator
	QuotationSvc quotationdomain.Service
	CustomerSvc  customerdomain.Service
	RegionSvc    regiondomain.Service
	ProductSvc   productdomain.Service
	PriceSvc     pricedomain.Service
	UserSvc      userdomain.Service
	PDFRenderer  pdf.Renderer
	WriteLimiter *ratelimit.WriteLimiter
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		quotationSvc: p.QuotationSvc,
		customerSvc:  p.CustomerSvc,
		regionSvc:    p.RegionSvc,
		productSvc:   p.ProductSvc,
		priceSvc:     p.PriceSvc,
		userSvc:      p.UserSvc,
		pdfRenderer:  p.PDFRenderer,
		writeLimiter: p.WriteLimiter,
	}

	svc.registerQuotationRoutes()
	svc.registerCustomerRoutes()
	svc.registerRegionRoutes()
	svc.registerProductRoutes()
	svc.registerProductPriceRoutes()
	svc.registerUserRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerQuotationRoutes() {
	quotations := s.engine.Group("/quotations", s.writeLimiter.Middleware())

	quotations.POST("", s.CreateQuotation)
	quotations.GET("", s.ListQuotations)
	quotations.GET("/:id", s.GetQuotation)
	quotations.GET("/:id/pdf", s.GetQuotationPDF)
	quotations.DELETE("/:id", s.DeleteQuotation)
}

func (s *Server) registerCustomerRoutes() {
	customers := s.engine.Group("/customers", s.writeLimiter.Middleware())

	customers.POST("", s.CreateCustomer)
	customers.GET("", s.ListCustomers)
	customers.GET("/:id", s.GetCustomer)
	customers.POST("/:id", s.UpdateCustomer)
	customers.DELETE("/:id", s.DeleteCustomer)
}

func (s *Server) registerRegionRoutes() {
	regions := s.engine.Group("/regions", s.writeLimiter.Middleware())

	regions.POST("", s.CreateRegion)
	regions.GET("", s.ListRegions)
	regions.GET("/:id", s.GetRegion)
	regions.POST("/:id", s.UpdateRegion)
	regions.DELETE("/:id", s.DeleteRegion)
}

func (s *Server) registerProductRoutes() {
	products := s.engine.Group("/products", s.writeLimiter.Middleware())

	products.POST("", s.CreateProduct)
	products.GET("", s.ListProducts)
	products.GET("/brands", s.ListProductBrands)
	products.GET("/:id", s.GetProduct)
	products.POST("/:id", s.UpdateProduct)
	products.DELETE("/:id", s.DeleteProduct)

	products.POST("/:id/additional-hardware", s.CreateProductHardwareLink)
	products.GET("/:id/additional-hardware", s.ListProductHardwareLinks)
	products.DELETE("/:id/additional-hardware/:link_id", s.DeleteProductHardwareLink)
}

func (s *Server) registerProductPriceRoutes() {
	prices := s.engine.Group("/product-prices", s.writeLimiter.Middleware())

	prices.POST("", s.SetProductPrice)
	prices.GET("", s.ListProductPrices)
	prices.DELETE("/:id", s.DeleteProductPrice)
}

func (s *Server) registerUserRoutes() {
	users := s.engine.Group("/users", s.writeLimiter.Middleware())

	users.POST("", s.CreateUser)
	users.GET("", s.ListUsers)
	users.GET("/filter", s.FilterUsers)
	users.GET("/:id", s.GetUser)
	users.POST("/:id", s.UpdateUser)
	users.POST("/:id/password", s.SetUserPassword)
	users.DELETE("/:id", s.DeleteUser)
}
