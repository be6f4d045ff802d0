package controller

import (
	"net/http"

	service "github.com/Itish41/ActionScribe/service"

	"github.com/gin-gonic/gin"
)

// ActionItemController serves the /action-items endpoints.
type ActionItemController struct {
	service *service.ActionItemService
}

func NewActionItemController(service *service.ActionItemService) *ActionItemController {
	return &ActionItemController{service: service}
}

// ListActionItems handles GET /action-items with the completed, note_id,
// priority, category and assignee filters.
func (c *ActionItemController) ListActionItems(ctx *gin.Context) {
	lq, err := listQuery(ctx)
	if err != nil {
		badRequest(ctx, err.Error(), nil)
		return
	}
	completed, err := queryBool(ctx, "completed")
	if err != nil {
		badRequest(ctx, err.Error(), nil)
		return
	}

	items, err := c.service.List(ctx.Request.Context(), service.ActionItemQuery{
		ListQuery: lq,
		Completed: completed,
		NoteID:    ctx.Query("note_id"),
		Priority:  ctx.Query("priority"),
		Category:  ctx.Query("category"),
		Assignee:  ctx.Query("assignee"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

func (c *ActionItemController) CreateActionItem(ctx *gin.Context) {
	var req service.ActionItemInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid action item payload", err)
		return
	}

	item, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

func (c *ActionItemController) GetActionItem(ctx *gin.Context) {
	item, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

func (c *ActionItemController) PatchActionItem(ctx *gin.Context) {
	var req service.ActionItemPatch
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid action item payload", err)
		return
	}

	item, err := c.service.Patch(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// UpdateActionItem handles PUT /action-items/:id; the item is reopened.
func (c *ActionItemController) UpdateActionItem(ctx *gin.Context) {
	var req service.ActionItemInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid action item payload", err)
		return
	}

	item, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// CompleteActionItem marks an action item as completed
func (c *ActionItemController) CompleteActionItem(ctx *gin.Context) {
	item, err := c.service.Complete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

func (c *ActionItemController) DeleteActionItem(ctx *gin.Context) {
	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// BulkComplete handles PUT /action-items/bulk/complete with a JSON array of ids.
func (c *ActionItemController) BulkComplete(ctx *gin.Context) {
	var ids []string
	if err := ctx.ShouldBindJSON(&ids); err != nil {
		badRequest(ctx, "Request body must be a JSON array of item IDs", err)
		return
	}

	res, err := c.service.BulkComplete(ctx.Request.Context(), ids)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// BulkDelete handles DELETE /action-items/bulk with a JSON array of ids.
func (c *ActionItemController) BulkDelete(ctx *gin.Context) {
	var ids []string
	if err := ctx.ShouldBindJSON(&ids); err != nil {
		badRequest(ctx, "Request body must be a JSON array of item IDs", err)
		return
	}

	res, err := c.service.BulkDelete(ctx.Request.Context(), ids)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}
