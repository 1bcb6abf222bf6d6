package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"futurenews/internal/cache"
	"futurenews/internal/entitlement"
	"futurenews/internal/metrics"
	"futurenews/internal/model"
	"futurenews/pkg/llm"

	"github.com/gin-gonic/gin"
)

type Authorizer interface {
	AuthorizeAndConsume(ctx context.Context, id entitlement.Identity) (bool, error)
}

type StoryGenerator interface {
	GenerateBatch(ctx context.Context, year int, lang string) ([]model.Story, error)
	GenerateDetail(ctx context.Context, story model.Story) (*model.StoryDetail, error)
}

type StoryHandler struct {
	ledger    Authorizer
	generator StoryGenerator
	cache     cache.Cache
}

func NewStoryHandler(ledger Authorizer, generator StoryGenerator, cache cache.Cache) *StoryHandler {
	return &StoryHandler{ledger: ledger, generator: generator, cache: cache}
}

func (h *StoryHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if req.Lang == "" {
		req.Lang = model.DefaultLang
	}

	identity := entitlement.Identity{DeviceID: req.DeviceID, Token: req.Token}
	ok, err := h.ledger.AuthorizeAndConsume(c.Request.Context(), identity)
	if errors.Is(err, entitlement.ErrMissingIdentity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id or token is required"})
		return
	}

	if err != nil {
		slog.Error("error checking entitlement", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	metrics.ObserveEntitlement(entitlementPath(identity), ok)
	if !ok {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "No generations remaining"})
		return
	}

	stories, err := h.generator.GenerateBatch(c.Request.Context(), req.Year, req.Lang)
	if err != nil {
		slog.Error("error generating stories", "error", err, "year", req.Year, "lang", req.Lang)
		c.JSON(http.StatusInternalServerError, gin.H{"error": generationError(err)})
		return
	}

	h.cache.Put(c.Request.Context(), req.Year, req.Lang, stories)

	c.JSON(http.StatusOK, GenerateResponse{Year: req.Year, Stories: stories})
}

func (h *StoryHandler) GetStoryDetails(c *gin.Context) {
	id := c.Param("id")

	storyID, err := strconv.Atoi(id)
	if err != nil {
		slog.Error("invalid story id", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid story id"})
		return
	}

	var q DetailQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	story := cache.FindStory(c.Request.Context(), h.cache, q.Year, q.Lang, storyID)

	detail, err := h.generator.GenerateDetail(c.Request.Context(), story)
	if err != nil {
		slog.Error("error generating story details", "error", err, "story_id", storyID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": generationError(err)})
		return
	}

	c.JSON(http.StatusOK, StoryDetailResponse{
		StoryID:  storyID,
		Summary:  detail.Summary,
		Comments: detail.Comments,
	})
}

func entitlementPath(id entitlement.Identity) string {
	if id.Token != "" {
		return "token"
	}
	return "free_trial"
}

func generationError(err error) string {
	if errors.Is(err, llm.ErrNoStructuredContent) || errors.Is(err, llm.ErrMalformedContent) {
		return "Model returned unreadable content"
	}
	return "Generation failed"
}
