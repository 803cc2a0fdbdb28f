package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Backend liveness check
// @Tags status
// @Produce json
// @Success 200 {object} object{status=string}
// @Router /status [get]
func Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Backend is running!"})
}
