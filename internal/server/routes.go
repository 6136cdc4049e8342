package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/storeease/storeease/internal/config"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if s.opts.ServiceName != "" {
		e.Use(otelecho.Middleware(s.opts.ServiceName))
	}
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		TargetHeader: config.HEADER_KEY_REQUEST_ID,
	}))
	e.Use(NewEchoLogger(s.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("10M"))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", config.HEADER_KEY_X_USER_ID},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// mutating routes are authenticated, then limited per principal
	var auth = []echo.MiddlewareFunc{s.AuthMiddleware, s.RateLimitMiddleware()}

	e.GET("/api/health", s.healthHandler)

	e.POST("/api/delete-image", s.DeleteImage, auth...)
	e.POST("/api/upload-image", s.UploadImage, auth...)

	var storeGroup = e.Group("/api/stores", auth...)
	storeGroup.GET("", s.ListStores)
	storeGroup.POST("", s.CreateStore)
	storeGroup.GET("/:storeId", s.GetStoreByID)
	storeGroup.PATCH("/:storeId", s.UpdateStore)
	storeGroup.DELETE("/:storeId", s.DeleteStore)

	e.GET("/api/:storeId/billboards", s.ListBillboards)
	e.GET("/api/billboards/:id", s.GetBillboardByID)
	e.POST("/api/:storeId/billboards", s.CreateBillboard, auth...)
	e.PATCH("/api/:storeId/billboards/:id", s.UpdateBillboard, auth...)
	e.DELETE("/api/:storeId/billboards/:id", s.DeleteBillboard, auth...)

	e.GET("/api/:storeId/categories", s.ListCategories)
	e.GET("/api/categories/:id", s.GetCategoryByID)
	e.POST("/api/:storeId/categories", s.CreateCategory, auth...)
	e.PATCH("/api/:storeId/categories/:id", s.UpdateCategory, auth...)
	e.DELETE("/api/:storeId/categories/:id", s.DeleteCategory, auth...)

	e.GET("/api/:storeId/sizes", s.ListSizes)
	e.GET("/api/sizes/:id", s.GetSizeByID)
	e.POST("/api/:storeId/sizes", s.CreateSize, auth...)
	e.PATCH("/api/:storeId/sizes/:id", s.UpdateSize, auth...)
	e.DELETE("/api/:storeId/sizes/:id", s.DeleteSize, auth...)

	e.GET("/api/:storeId/colors", s.ListColors)
	e.GET("/api/colors/:id", s.GetColorByID)
	e.POST("/api/:storeId/colors", s.CreateColor, auth...)
	e.PATCH("/api/:storeId/colors/:id", s.UpdateColor, auth...)
	e.DELETE("/api/:storeId/colors/:id", s.DeleteColor, auth...)

	e.GET("/api/:storeId/products", s.ListProducts)
	e.GET("/api/products/:id", s.GetProductByID)
	e.POST("/api/:storeId/products", s.CreateProduct, auth...)
	e.PATCH("/api/:storeId/products/:id", s.UpdateProduct, auth...)
	e.DELETE("/api/:storeId/products/:id", s.DeleteProduct, auth...)

	return e
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, s.server.Health())
}
