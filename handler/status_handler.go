package handler

import (
	"context"
	"time"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// HealthCheckHandler reports process health and dependency reachability.
func HealthCheckHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	mongoStatus := "up"
	if utils.MongoClient == nil {
		mongoStatus = "down"
	} else if err := utils.MongoClient.Ping(ctx, nil); err != nil {
		mongoStatus = "down"
	}

	redisStatus := "up"
	if services.GlobalSessionCache == nil || !services.GlobalSessionCache.IsConnected() {
		redisStatus = "down"
	}

	status := "ok"
	if mongoStatus == "down" || redisStatus == "down" {
		status = "degraded"
	}

	utils.Success(c, gin.H{
		"status":    status,
		"uptime":    time.Since(startTime).Round(time.Second).String(),
		"cpu_usage": utils.GetCPUUsage(),
		"mongo":     mongoStatus,
		"redis":     redisStatus,
	})
}
