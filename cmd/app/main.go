package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"nearby/cmd/fx/config_fx"
	"nearby/cmd/fx/controllers_fx"
	"nearby/cmd/fx/db_fx"
	"nearby/cmd/fx/logger_fx"
	"nearby/cmd/fx/memcache_fx"
	"nearby/cmd/fx/places_fx"
	"nearby/internal/api/controllers"
	"nearby/internal/config"
	"nearby/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		places_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, engine *gin.Engine, cfg config.Server, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(gatewayController *controllers.GatewayController, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.ZapLogger(logger.Named("http")))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, gatewayController)

	return r
}

func RegisterRoutes(r *gin.Engine, gatewayController *controllers.GatewayController) {
	api := r.Group("/api")
	api.POST("/gemini", gatewayController.HandleAction)
	api.Match([]string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete},
		"/gemini", gatewayController.MethodNotAllowed)
	api.GET("/searches", gatewayController.RecentSearches)
}
