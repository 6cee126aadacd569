// Package models holds the JSON shapes of the public API.
package models

import (
	"verbum/internal/history"
	"verbum/internal/lexicon"
)

// SynonymsResponse is the body of a successful synonym lookup.
type SynonymsResponse struct {
	Word       string   `json:"word"`
	Synonyms   []string `json:"synonyms"`
	Definition string   `json:"definition"`
	Count      int      `json:"count"`
}

// NewSynonymsResponse builds the response for word from a lookup result.
func NewSynonymsResponse(word string, res lexicon.Result) SynonymsResponse {
	synonyms := res.Synonyms
	if synonyms == nil {
		synonyms = []string{}
	}
	return SynonymsResponse{
		Word:       word,
		Synonyms:   synonyms,
		Definition: res.Definition,
		Count:      len(synonyms),
	}
}

// WordCloudWord is one word of the cloud.
type WordCloudWord struct {
	Text   string `json:"text"`
	Weight int    `json:"weight"`
}

// WordCloudResponse is the body of the word cloud endpoint.
type WordCloudResponse struct {
	Words         []WordCloudWord `json:"words"`
	TotalSearches int             `json:"total_searches"`
	UniqueWords   int             `json:"unique_words"`
}

// NewWordCloudResponse builds the word cloud from history entries.
func NewWordCloudResponse(entries []history.Entry, total, unique int) WordCloudResponse {
	words := make([]WordCloudWord, 0, len(entries))
	for _, e := range entries {
		words = append(words, WordCloudWord{Text: e.Word, Weight: e.Count})
	}
	return WordCloudResponse{Words: words, TotalSearches: total, UniqueWords: unique}
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
