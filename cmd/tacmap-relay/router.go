package main

import (
	"net/http"
	"time"

	"tacmap/internal/logging"
	"tacmap/linesync"

	"github.com/gin-gonic/gin"
	"github.com/hako/durafmt"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// newRouter exposes the hub's websocket and a small HTTP API for inspecting
// and clearing the shared lines.
func newRouter(hub *linesync.Hub) *gin.Engine {
	started := time.Now()
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	})
	r.GET("/lines", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"lines": hub.Snapshot(),
			"peers": hub.Peers(),
		})
	})
	r.DELETE("/lines", func(c *gin.Context) {
		hub.Clear()
		c.Status(http.StatusNoContent)
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": uptime(time.Since(started)),
			"peers":  hub.Peers(),
		})
	})
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if logging.DebugEnabled() {
			logging.Debug("%s %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
		}
	}
}

func uptime(d time.Duration) string {
	return durafmt.Parse(d.Truncate(time.Second)).LimitFirstN(2).Format(shortUnits)
}
