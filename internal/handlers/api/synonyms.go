package api

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"

	"verbum/internal/lexicon"
	"verbum/internal/metrics"
	"verbum/internal/models"
	"verbum/internal/validation"
)

// Screener sanitizes raw input and applies the content filter.
type Screener interface {
	Check(raw any) (validation.SanitizedWord, error)
}

// Lexicon looks up synonyms and a definition.
type Lexicon interface {
	Lookup(ctx context.Context, w validation.SanitizedWord) (lexicon.Result, error)
}

// HistoryRecorder counts successful lookups.
type HistoryRecorder interface {
	Record(ctx context.Context, w validation.SanitizedWord)
}

// SynonymsHandler serves synonym lookups.
type SynonymsHandler struct {
	screen  Screener
	lexicon Lexicon
	history HistoryRecorder
	log     *log.Logger
}

// NewSynonymsHandler creates a new synonyms handler.
func NewSynonymsHandler(screen Screener, lex Lexicon, history HistoryRecorder, logger *log.Logger) *SynonymsHandler {
	return &SynonymsHandler{screen: screen, lexicon: lex, history: history, log: logger}
}

// Lookup handles POST /api/synonyms with a body of {"word": "..."}.
func (h *SynonymsHandler) Lookup(c fiber.Ctx) error {
	var body map[string]any
	if err := c.Bind().JSON(&body); err != nil || body == nil {
		metrics.RecordLookup(metrics.OutcomeInvalid)
		return jsonError(c, fiber.StatusBadRequest, MsgNoWord)
	}
	raw, ok := body["word"]
	if !ok {
		metrics.RecordLookup(metrics.OutcomeInvalid)
		return jsonError(c, fiber.StatusBadRequest, MsgNoWord)
	}

	word, err := h.screen.Check(raw)
	switch {
	case errors.Is(err, validation.ErrInappropriate):
		metrics.RecordLookup(metrics.OutcomeBlocked)
		h.log.Warn("Blocked inappropriate lookup", "ip", c.IP())
		return jsonError(c, fiber.StatusBadRequest, MsgInappropriate)
	case errors.Is(err, validation.ErrInvalidFormat):
		metrics.RecordLookup(metrics.OutcomeInvalid)
		return jsonError(c, fiber.StatusBadRequest, MsgInvalidFormat)
	case err != nil:
		return err
	}

	ctx := c.Context()
	res, err := h.lexicon.Lookup(ctx, word)
	switch {
	case err != nil:
		metrics.RecordLookup(metrics.OutcomeError)
		h.log.Error("Error getting synonyms", "word", word.String(), "err", err)
	case res.Empty():
		metrics.RecordLookup(metrics.OutcomeEmpty)
	default:
		metrics.RecordLookup(metrics.OutcomeFound)
		h.history.Record(ctx, word)
	}

	return c.JSON(models.NewSynonymsResponse(word.String(), res))
}
