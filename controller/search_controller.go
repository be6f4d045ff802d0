package controller

import (
	"net/http"
	"strconv"

	service "github.com/Itish41/ActionScribe/service"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	service *service.SearchService
}

func NewSearchController(service *service.SearchService) *SearchController {
	return &SearchController{service: service}
}

// SearchAll handles GET /search?q=&limit=
func (c *SearchController) SearchAll(ctx *gin.Context) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		badRequest(ctx, err.Error(), nil)
		return
	}

	res, err := c.service.SearchAll(ctx.Request.Context(), ctx.Query("q"), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// SearchNotes handles GET /search/notes; in_title and in_content default to true.
func (c *SearchController) SearchNotes(ctx *gin.Context) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		badRequest(ctx, err.Error(), nil)
		return
	}
	inTitle, err := strconv.ParseBool(ctx.DefaultQuery("in_title", "true"))
	if err != nil {
		badRequest(ctx, "in_title must be true or false", nil)
		return
	}
	inContent, err := strconv.ParseBool(ctx.DefaultQuery("in_content", "true"))
	if err != nil {
		badRequest(ctx, "in_content must be true or false", nil)
		return
	}

	notes, err := c.service.SearchNotes(ctx.Request.Context(), ctx.Query("q"), limit, inTitle, inContent)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, notes)
}

// SearchActionItems handles GET /search/action-items?q=&completed=
func (c *SearchController) SearchActionItems(ctx *gin.Context) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		badRequest(ctx, err.Error(), nil)
		return
	}
	completed, err := queryBool(ctx, "completed")
	if err != nil {
		badRequest(ctx, err.Error(), nil)
		return
	}

	items, err := c.service.SearchActionItems(ctx.Request.Context(), ctx.Query("q"), limit, completed)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}
