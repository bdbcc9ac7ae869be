package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"huddle-api/internal/domain/resource"
	"huddle-api/internal/services"
	"huddle-api/internal/transport/httpdto"
	huddle_errors "huddle-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ResourceHandler serves the five CRUD routes of one resource kind.
// Failures are attached with c.Error and rendered by middleware.ErrorHandler.
type ResourceHandler struct {
	service *services.ResourceService
	kind    resource.Kind
}

func NewResourceHandler(service *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service, kind: service.Kind()}
}

func (h *ResourceHandler) Index(c *gin.Context) {
	items, err := h.service.Index(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.kind.Plural: httpdto.FromResourceSlice(items)})
}

func (h *ResourceHandler) Show(c *gin.Context) {
	item, err := h.service.Show(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.kind.Singular: httpdto.FromResource(item)})
}

func (h *ResourceHandler) Create(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		_ = c.Error(huddle_errors.ErrUnauthorized)
		return
	}

	var req httpdto.CreateResourceRequest
	if err := h.bindEnvelope(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, req.ToResource())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{h.kind.Singular: httpdto.FromResource(created)})
}

// Update answers 201 rather than 200; existing clients depend on it.
func (h *ResourceHandler) Update(c *gin.Context) {
	var req httpdto.UpdateResourceRequest
	if err := h.bindEnvelope(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{h.kind.Singular: httpdto.FromResource(updated)})
}

func (h *ResourceHandler) Destroy(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		_ = c.Error(huddle_errors.ErrUnauthorized)
		return
	}

	if err := h.service.Destroy(c.Request.Context(), userID, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindEnvelope decodes {"<singular>": {...}} into dst. An empty body counts as {}.
func (h *ResourceHandler) bindEnvelope(c *gin.Context, dst any) error {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s", huddle_errors.ErrInvalidInput, err.Error())
	}
	if err := httpdto.UnwrapResource(body, h.kind.Singular, dst); err != nil {
		return fmt.Errorf("%w: %s", huddle_errors.ErrInvalidInput, err.Error())
	}
	return nil
}
