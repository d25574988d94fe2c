package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/msanchezgrice/futurenews-sub001/internal/curation"
	"github.com/msanchezgrice/futurenews-sub001/internal/model"
)

type EditionStore interface {
	GetDaily(ctx context.Context, day string) (*model.DailyCuration, error)
	PlanByEdition(ctx context.Context, day string, yearsForward int) (*model.CurationPlan, error)
}

type EditionHandler struct {
	store EditionStore
}

func NewEditionHandler(store EditionStore) *EditionHandler {
	return &EditionHandler{store: store}
}

func (h *EditionHandler) GetEdition(c *gin.Context) {
	day, years, ok := editionParams(c)
	if !ok {
		return
	}

	daily, err := h.store.GetDaily(c.Request.Context(), day)
	if err != nil {
		slog.Error("error fetching daily curation", "day", day, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Content temporarily unavailable"})
		return
	}
	if daily == nil || years >= len(daily.Editions) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Edition not available"})
		return
	}

	edition := daily.Editions[years]
	c.JSON(http.StatusOK, editionResponse(daily, edition))
}

func (h *EditionHandler) GetPlan(c *gin.Context) {
	day, years, ok := editionParams(c)
	if !ok {
		return
	}

	plan, err := h.store.PlanByEdition(c.Request.Context(), day, years)
	if err != nil {
		slog.Error("error fetching curation plan", "day", day, "years_forward", years, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Content temporarily unavailable"})
		return
	}
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not available"})
		return
	}

	res := PlanResponse{
		Day:          plan.Day,
		YearsForward: plan.YearsForward,
		GeneratedAt:  plan.GeneratedAt,
		Mode:         plan.Mode,
		Stories:      make([]StoryResponse, 0, len(plan.Stories)),
	}
	for _, s := range plan.Stories {
		story := StoryResponse{
			StoryID:         s.StoryID,
			CuratedTitle:    s.CuratedTitle,
			CuratedDek:      s.CuratedDek,
			TopicTitle:      s.TopicTitle,
			SparkDirections: s.SparkDirections,
			Key:             s.Key,
			Hero:            s.Hero,
			FutureEventSeed: s.FutureEventSeed,
		}
		if s.Draft != nil {
			story.Draft = &DraftResponse{Title: s.Draft.Title, Dek: s.Draft.Dek, Body: s.Draft.Body}
		}
		res.Stories = append(res.Stories, story)
	}

	c.JSON(http.StatusOK, res)
}

func (h *EditionHandler) GetHealth(c *gin.Context) {
	_, err := h.store.GetDaily(c.Request.Context(), time.Now().UTC().Format(model.DayFormat))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

// editionParams validates the :day and :years route params. On failure
// it writes the 400 itself and reports ok=false.
func editionParams(c *gin.Context) (string, int, bool) {
	day := c.Param("day")
	if _, err := time.Parse(model.DayFormat, day); err != nil {
		slog.Error("invalid day param", "day", day, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day, want YYYY-MM-DD"})
		return "", 0, false
	}

	years, err := strconv.Atoi(c.Param("years"))
	if err != nil || years < 0 || years > curation.MaxYearsForward {
		slog.Error("invalid years param", "years", c.Param("years"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid years, want 0-10"})
		return "", 0, false
	}

	return day, years, true
}

func editionResponse(daily *model.DailyCuration, edition model.Edition) EditionResponse {
	res := EditionResponse{
		Day:          edition.Day,
		YearsForward: edition.YearsForward,
		EditionDate:  edition.EditionDate.Format(model.DayFormat),
		GeneratedAt:  daily.GeneratedAt,
		Mode:         daily.Mode,
		Brief: BriefResponse{
			Summary:    daily.Brief.Summary,
			Themes:     daily.Brief.Themes,
			MarketMood: daily.Brief.MarketMood,
		},
		Hero:         slotResponse(edition, edition.Hero),
		SectionOrder: model.SectionOrder(),
		Sections:     make(map[string][]SlotResponse, len(edition.Sections)),
	}

	for section, slots := range edition.Sections {
		out := make([]SlotResponse, 0, len(slots))
		for _, slot := range slots {
			out = append(out, slotResponse(edition, slot))
		}
		res.Sections[section] = out
	}
	return res
}

func slotResponse(edition model.Edition, slot model.StorySlot) SlotResponse {
	res := SlotResponse{
		Rank:        slot.Rank,
		Section:     slot.Section,
		TopicSlug:   slot.TopicSlug,
		Angle:       slot.Angle,
		Title:       slot.Title,
		Dek:         slot.Dek,
		FutureEvent: slot.FutureEvent,
		LedeSeed:    slot.LedeSeed,
		NutSeed:     slot.NutSeed,
		Outline:     slot.Outline,
	}
	if slot.Populated() {
		res.StoryID = model.StoryID(edition.Day, edition.YearsForward, slot.Section, slot.TopicSlug)
	}
	return res
}
