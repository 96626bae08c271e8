package main

import (
	"net/http"

	"quickbite-api/config"
	"quickbite-api/middleware"
	"quickbite-api/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func main() {
	if _, err := config.Load(); err != nil {
		panic(err)
	}

	logger, err := config.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	gin.SetMode(config.C.GinMode)

	if err := config.InitDB(config.C.DBPath); err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery(), corsMiddleware(config.C.CORSOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "QuickBite API is running"})
	})

	routes.SetupRoutes(r)

	logger.Info("server starting", zap.String("port", config.C.Port))
	if err := r.Run(":" + config.C.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
