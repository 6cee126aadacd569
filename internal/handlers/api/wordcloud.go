package api

import (
	"github.com/gofiber/fiber/v3"

	"verbum/internal/history"
	"verbum/internal/models"
)

// HistoryReader is the read side of the history store.
type HistoryReader interface {
	Snapshot(limit int) []history.Entry
	Totals() (total, unique int)
}

// WordCloudHandler serves the most searched words.
type WordCloudHandler struct {
	history HistoryReader
	limit   int
}

// NewWordCloudHandler creates a new word cloud handler.
func NewWordCloudHandler(store HistoryReader) *WordCloudHandler {
	return &WordCloudHandler{history: store, limit: history.DefaultSnapshotLimit}
}

// WordCloud handles GET /api/wordcloud.
func (h *WordCloudHandler) WordCloud(c fiber.Ctx) error {
	entries := h.history.Snapshot(h.limit)
	total, unique := h.history.Totals()
	return c.JSON(models.NewWordCloudResponse(entries, total, unique))
}
