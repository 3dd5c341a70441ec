package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acueductoapp/acueducto/internal/billing"
	billingdomain "github.com/acueductoapp/acueducto/internal/billing/domain"
	"github.com/acueductoapp/acueducto/internal/config"
	"github.com/acueductoapp/acueducto/internal/customer"
	customerdomain "github.com/acueductoapp/acueducto/internal/customer/domain"
	"github.com/acueductoapp/acueducto/internal/observability"
	obsmiddleware "github.com/acueductoapp/acueducto/internal/observability/logger"
	obsmetrics "github.com/acueductoapp/acueducto/internal/observability/metrics"
	"github.com/acueductoapp/acueducto/internal/providers"
	"github.com/acueductoapp/acueducto/internal/reading"
	readingdomain "github.com/acueductoapp/acueducto/internal/reading/domain"
	"github.com/acueductoapp/acueducto/internal/route"
	routedomain "github.com/acueductoapp/acueducto/internal/route/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	providers.Module,
	customer.Module,
	reading.Module,
	route.Module,
	billing.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug: obsCfg.Debug(),
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
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
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	customerSvc customerdomain.Service
	readingSvc  readingdomain.Service
	routeSvc    routedomain.Service
	billingSvc  billingdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	CustomerSvc customerdomain.Service
	ReadingSvc  readingdomain.Service
	RouteSvc    routedomain.Service
	BillingSvc  billingdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		customerSvc: p.CustomerSvc,
		readingSvc:  p.ReadingSvc,
		routeSvc:    p.RouteSvc,
		billingSvc:  p.BillingSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/:contract", s.GetCustomer)
	api.PUT("/customers/:contract", s.UpdateCustomer)
	api.DELETE("/customers/:contract", s.DeleteCustomer)
	api.GET("/customers/:contract/readings", s.ListReadings)
	api.GET("/customers/:contract/invoices", s.ListCustomerInvoices)

	api.POST("/readings", s.SubmitReading)

	api.POST("/routes", s.CreateRoute)
	api.GET("/routes", s.ListRoutes)
	api.GET("/routes/active", s.GetActiveRoute)
	api.GET("/routes/:id", s.GetRoute)
	api.POST("/routes/:id/finalize", s.FinalizeRoute)
	api.GET("/routes/:id/next", s.NextPendingStop)

	api.POST("/invoices", s.IssueInvoice)
	api.GET("/invoices/:number", s.GetInvoice)
	api.POST("/invoices/pdf", s.RenderInvoicePDF)
	api.POST("/invoices/email", s.EmailInvoice)
	api.POST("/invoices/export", s.ExportInvoices)
}
