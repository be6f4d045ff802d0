package controller

import (
	"errors"
	"net/http"
	"strconv"

	service "github.com/Itish41/ActionScribe/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto status codes.
func respondError(ctx *gin.Context, err error) {
	var missing *service.MissingIDsError
	switch {
	case errors.As(err, &missing):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "missing_ids": missing.IDs})
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrAlreadyCompleted):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"details": err.Error(),
		})
	}
}

func badRequest(ctx *gin.Context, msg string, err error) {
	body := gin.H{"error": msg}
	if err != nil {
		body["details"] = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, body)
}

// queryInt reads an optional non-negative integer query parameter.
func queryInt(ctx *gin.Context, name string) (int, error) {
	raw, ok := ctx.GetQuery(name)
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	return v, nil
}

// queryBool reads an optional boolean query parameter; nil when absent.
func queryBool(ctx *gin.Context, name string) (*bool, error) {
	raw, ok := ctx.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.New(name + " must be true or false")
	}
	return &v, nil
}

func listQuery(ctx *gin.Context) (service.ListQuery, error) {
	skip, err := queryInt(ctx, "skip")
	if err != nil {
		return service.ListQuery{}, err
	}
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		return service.ListQuery{}, err
	}
	return service.ListQuery{Skip: skip, Limit: limit, Sort: ctx.DefaultQuery("sort", "-created_at")}, nil
}
