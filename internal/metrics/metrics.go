// Package metrics exposes lookup and search-history metrics to Prometheus.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"verbum/internal/history"
)

// Lookup outcomes.
const (
	OutcomeFound   = "found"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeBlocked = "blocked"
	OutcomeError   = "error"
)

var outcomes = []string{OutcomeFound, OutcomeEmpty, OutcomeInvalid, OutcomeBlocked, OutcomeError}

// topWordsLimit bounds the per-word series exported on each scrape.
const topWordsLimit = 10

var (
	totalSearchesDesc = prometheus.NewDesc(
		"verbum_history_searches",
		"Sum of all search counts currently held in the history",
		nil, nil,
	)
	uniqueWordsDesc = prometheus.NewDesc(
		"verbum_history_unique_words",
		"Number of distinct words currently held in the history",
		nil, nil,
	)
	wordSearchesDesc = prometheus.NewDesc(
		"verbum_history_word_searches",
		"Search count of the most searched words",
		[]string{"word"}, nil,
	)
	lastCleanupDesc = prometheus.NewDesc(
		"verbum_history_last_cleanup_timestamp_seconds",
		"When the history was last considered for trimming",
		nil, nil,
	)
)

// HistorySource is the read side of the history store.
type HistorySource interface {
	Totals() (total, unique int)
	Snapshot(limit int) []history.Entry
	LastCleanup() time.Time
}

// HistoryCollector is a custom Prometheus collector that reads the history
// store on each scrape.
type HistoryCollector struct {
	source HistorySource
}

// Describe sends the metric descriptors to the channel.
func (c *HistoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- totalSearchesDesc
	ch <- uniqueWordsDesc
	ch <- wordSearchesDesc
	ch <- lastCleanupDesc
}

// Collect snapshots the store and emits its totals and top words.
func (c *HistoryCollector) Collect(ch chan<- prometheus.Metric) {
	total, unique := c.source.Totals()
	ch <- prometheus.MustNewConstMetric(totalSearchesDesc, prometheus.GaugeValue, float64(total))
	ch <- prometheus.MustNewConstMetric(uniqueWordsDesc, prometheus.GaugeValue, float64(unique))
	for _, e := range c.source.Snapshot(topWordsLimit) {
		ch <- prometheus.MustNewConstMetric(wordSearchesDesc, prometheus.GaugeValue, float64(e.Count), e.Word)
	}
	if last := c.source.LastCleanup(); !last.IsZero() {
		ch <- prometheus.MustNewConstMetric(lastCleanupDesc, prometheus.GaugeValue, float64(last.Unix()))
	}
}

// Recorder counts lookup outcomes.
type Recorder struct {
	lookups *prometheus.CounterVec
}

// Register registers the lookup counter, and the history collector when
// source is non-nil, with reg.
func Register(reg prometheus.Registerer, source HistorySource) (*Recorder, error) {
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "verbum_lookups_total",
		Help: "Total synonym lookups by outcome",
	}, []string{"outcome"})
	for _, o := range outcomes {
		lookups.WithLabelValues(o)
	}
	if err := reg.Register(lookups); err != nil {
		return nil, err
	}
	if source != nil {
		if err := reg.Register(&HistoryCollector{source: source}); err != nil {
			return nil, err
		}
	}
	return &Recorder{lookups: lookups}, nil
}

// RecordLookup counts one lookup with the given outcome.
func (r *Recorder) RecordLookup(outcome string) {
	if r == nil {
		return
	}
	r.lookups.WithLabelValues(outcome).Inc()
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the collectors with the default registry.
// Must be called once at startup.
func Init(source HistorySource) {
	recorderOnce.Do(func() {
		r, err := Register(prometheus.DefaultRegisterer, source)
		if err != nil {
			panic(err)
		}
		recorder = r
	})
}

// RecordLookup counts a lookup outcome on the default recorder. It is a
// no-op before Init.
func RecordLookup(outcome string) {
	recorder.RecordLookup(outcome)
}
