package controller

import (
	"net/http"

	service "github.com/Itish41/ActionScribe/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteController serves the /notes endpoints.
type NoteController struct {
	service *service.NoteService
	logger  *zap.Logger
}

func NewNoteController(service *service.NoteService, logger *zap.Logger) *NoteController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteController{service: service, logger: logger}
}

// ListNotes handles GET /notes?q=&skip=&limit=&sort=
func (c *NoteController) ListNotes(ctx *gin.Context) {
	lq, err := listQuery(ctx)
	if err != nil {
		badRequest(ctx, err.Error(), nil)
		return
	}

	notes, err := c.service.ListNotes(ctx.Request.Context(), service.NoteQuery{ListQuery: lq, Q: ctx.Query("q")})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, notes)
}

// CreateNote handles POST /notes. The response includes the extracted action items.
func (c *NoteController) CreateNote(ctx *gin.Context) {
	var req service.NoteInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid note payload", err)
		return
	}

	note, err := c.service.CreateNote(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, note)
}

func (c *NoteController) GetNote(ctx *gin.Context) {
	note, err := c.service.GetNote(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, note)
}

func (c *NoteController) PatchNote(ctx *gin.Context) {
	var req service.NotePatch
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid note payload", err)
		return
	}

	note, err := c.service.PatchNote(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, note)
}

func (c *NoteController) UpdateNote(ctx *gin.Context) {
	var req service.NoteInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid note payload", err)
		return
	}

	note, err := c.service.UpdateNote(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, note)
}

func (c *NoteController) DeleteNote(ctx *gin.Context) {
	if err := c.service.DeleteNote(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ReextractNote handles POST /notes/:id/reextract
func (c *NoteController) ReextractNote(ctx *gin.Context) {
	note, err := c.service.ReextractNote(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, note)
}

// UploadNote handles the multipart upload of a text file in the "file" field.
func (c *NoteController) UploadNote(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		badRequest(ctx, "Failed to get file from request", nil)
		return
	}
	defer file.Close()

	note, url, err := c.service.UploadNote(ctx.Request.Context(), file, header)
	if err != nil {
		c.logger.Warn("[UploadNote] Upload failed", zap.String("filename", header.Filename), zap.Error(err))
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":     "Note uploaded and processed successfully",
		"note":        note,
		"archive_url": url,
	})
}
