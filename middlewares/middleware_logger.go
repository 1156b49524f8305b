package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-tables/utils"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			if q := c.Request.URL.Query(); q.Has("token") {
				q.Set("token", "redacted")
				raw = q.Encode()
			}
			path = path + "?" + raw
		}

		entry := utils.InfoLogger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(CtxRequestID),
		})
		if len(c.Errors) > 0 {
			entry.Warn(path + " " + c.Errors.String())
			return
		}
		entry.Info(path)
	}
}

// FloorActionLogger logs the outcome of a table mutation.
func FloorActionLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		table := c.Param("name")

		c.Next()

		if c.Writer.Status() < 300 {
			utils.InfoLogger.Printf("%s %s succeeded", c.Request.Method, table)
		} else {
			utils.ErrorLogger.Printf("%s %s failed with status %d", c.Request.Method, table, c.Writer.Status())
		}
	}
}
