package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
	"github.com/msanchezgrice/futurenews-sub001/internal/rendercache"
)

type ArticleLoader interface {
	GetArticle(ctx context.Context, storyID, fingerprint string) (*model.RenderedArticle, error)
}

type ArticleHandler struct {
	loader ArticleLoader
}

func NewArticleHandler(loader ArticleLoader) *ArticleHandler {
	return &ArticleHandler{loader: loader}
}

// GetArticle serves one rendered story. The optional fingerprint query
// pins the response to the curation pass the client is reading; a
// missing fingerprint accepts whatever render is current.
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	storyID := c.Param("id")
	if storyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid story id"})
		return
	}
	fingerprint := c.Query("fingerprint")

	article, err := h.loader.GetArticle(c.Request.Context(), storyID, fingerprint)
	if err != nil {
		if errors.Is(err, rendercache.ErrStoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
			return
		}
		slog.Error("error rendering article", "story_id", storyID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Content temporarily unavailable"})
		return
	}

	signals := make([]SignalResponse, 0, len(article.Signals))
	for _, s := range article.Signals {
		signals = append(signals, SignalResponse{Label: s.Label, Value: s.Value, Prob: s.Prob})
	}

	c.JSON(http.StatusOK, RenderedArticleResponse{
		StoryID:             article.StoryID,
		Section:             article.Section,
		Title:               article.Title,
		Dek:                 article.Dek,
		Body:                article.Body,
		EditionDate:         article.EditionDate.Format(model.DayFormat),
		Signals:             signals,
		ModelUsed:           article.ModelUsed,
		CurationGeneratedAt: article.CurationGeneratedAt,
		RenderedAt:          article.RenderedAt.Format(time.RFC3339),
	})
}
