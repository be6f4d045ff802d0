package controller

import (
	"net/http"

	service "github.com/Itish41/ActionScribe/service"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	service *service.StatsService
}

func NewStatsController(service *service.StatsService) *StatsController {
	return &StatsController{service: service}
}

func (c *StatsController) GetStatistics(ctx *gin.Context) {
	stats, err := c.service.GetStatistics(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func (c *StatsController) GetActionItemStats(ctx *gin.Context) {
	stats, err := c.service.GetActionItemStats(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func (c *StatsController) GetNoteStats(ctx *gin.Context) {
	stats, err := c.service.GetNoteStats(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
