package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verbum/internal/logger"
	"verbum/internal/testutil"
)

func TestLoadLexiconWarnsOnSeedFallback(t *testing.T) {
	tests := []struct {
		name string
		dir  string
	}{
		{"unset", ""},
		{"unloadable dir", t.TempDir()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := testutil.Config()
			cfg.WordNetDir = tt.dir

			db := loadLexicon(cfg, logger.NewWithWriter(&buf, "verbum"))
			require.NotNil(t, db)

			out := buf.String()
			assert.Contains(t, out, "WARN")
			assert.Contains(t, out, "demo seed dictionary")
			assert.Contains(t, out, "WORDNET_DIR")
		})
	}
}
