package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Weather endpoints
	weather := app.router.Group("/api/v1/weather")
	weather.GET("/current", app.handleGetCurrent)
	weather.GET("/current/dms", app.handleGetCurrentDMS)
	weather.GET("/coordinates", app.handleGetCoordinates)
	weather.GET("/city", app.handleGetCity)
	weather.GET("/hourly", app.handleGetHourly)
	weather.GET("/daily", app.handleGetDaily)
	weather.GET("/panel", app.handleGetPanel)

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
