package middleware

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the web frontend to call the API from another origin. Extra
// origins come from ORIGIN_URL.
func CORS() gin.HandlerFunc {
	allowedOrigins := []string{
		"http://localhost:5173",
	}
	if origin := os.Getenv("ORIGIN_URL"); origin != "" {
		allowedOrigins = append(allowedOrigins, origin)
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	})
}
