package controller

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/Itish41/ActionScribe/extract"

	"github.com/gin-gonic/gin"
)

const maxPreviewLen = 10000

// ExtractRequest is the body of POST /extract.
type ExtractRequest struct {
	Text     string `json:"text"`
	Assignee string `json:"assignee"`
	HighOnly bool   `json:"high_only"`
}

// ExtractResponse carries the items in note order plus the grouped views.
type ExtractResponse struct {
	Items       []extract.ActionItem `json:"items"`
	Categorized extract.Categorized  `json:"categorized"`
	Summary     extract.Summary      `json:"summary"`
}

// PreviewExtraction runs the extractor over the posted text without
// storing anything.
func PreviewExtraction(ctx *gin.Context) {
	var req ExtractRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid extract payload", err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(ctx, "text must not be blank", nil)
		return
	}
	if utf8.RuneCountInString(req.Text) > maxPreviewLen {
		badRequest(ctx, "text must be at most 10000 characters", nil)
		return
	}

	items := extract.ExtractDetailed(req.Text)
	if req.Assignee != "" {
		items = extract.FilterByAssignee(items, req.Assignee)
	}
	if req.HighOnly {
		items = extract.HighPriorityOnly(items)
	}
	if items == nil {
		items = []extract.ActionItem{}
	}

	ctx.JSON(http.StatusOK, ExtractResponse{
		Items:       items,
		Categorized: extract.Categorize(items),
		Summary:     extract.Summarize(items),
	})
}
