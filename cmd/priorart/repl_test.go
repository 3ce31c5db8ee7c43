package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/priorart"
	"github.com/poiesic/priorart/search"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedArchive(t *testing.T) (*priorart.Archive, *search.Engine) {
	t.Helper()

	dir := t.TempDir()
	batch := `[
		{"doc_number":"US-2024-0001","title":"Wireless Vehicle Sensor Network",
		 "claims":"A wireless vehicle sensor network where each wireless sensor monitors tire pressure",
		 "classification":"B60C 23/04"},
		{"doc_number":"US-2024-0002","title":"Urban Wireless Protocol",
		 "claims":"A wireless communication protocol for urban networks",
		 "classification":"H04L 12/28"},
		{"doc_number":"US-2024-0003","title":"Sensor Calibration",
		 "claims":"A vehicle sensor calibration method",
		 "classification":"B60R 16/02"},
		{"doc_number":"US-2024-0004","title":"Display Panel",
		 "claims":"A display panel for electronic devices",
		 "classification":"G09G 3/20"}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patents_ipa01.json"), []byte(batch), 0o644))

	archive, err := priorart.Open(dir, priorart.WithLogger(quietLogger()))
	require.NoError(t, err)

	engine, err := archive.NewEngine()
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })

	return archive, engine
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		line string
		cmd  string
		arg  string
	}{
		{"search wireless sensor", "search", "wireless sensor"},
		{"SEARCH wireless", "search", "wireless"},
		{"quit", "quit", ""},
		{"similar   US-1", "similar", "US-1"},
		{"build claims", "build", "claims"},
	}

	for _, tt := range tests {
		cmd, arg := splitCommand(tt.line)
		assert.Equal(t, tt.cmd, cmd)
		assert.Equal(t, tt.arg, arg)
	}
}

func TestRunPrompt(t *testing.T) {
	t.Run("session walks every command", func(t *testing.T) {
		archive, engine := seedArchive(t)
		cfg := defaultConfig()
		cfg.TopK = 3

		in := strings.NewReader(strings.Join([]string{
			"help",
			"build",
			"search wireless sensor",
			"similar US-2024-0001",
			"similar",
			"stats",
			"bogus command",
			"quit",
		}, "\n") + "\n")

		var out bytes.Buffer
		runPrompt(in, &out, archive, engine, cfg)
		got := out.String()

		assert.Contains(t, got, "Prior-art similarity search")
		assert.Contains(t, got, "4 documents")
		assert.Contains(t, got, promptUsage)
		assert.Contains(t, got, `Indexed 4 patents from "claims"`)
		assert.Contains(t, got, "1. US-2024-0001")
		assert.Contains(t, got, "usage: similar <doc-number>")
		assert.Contains(t, got, "Documents: 4")
		assert.Contains(t, got, "Field coverage:")
		assert.Contains(t, got, "Index: field=claims")
		assert.Contains(t, got, `Unrecognized command "bogus"`)
	})

	t.Run("eof ends the session", func(t *testing.T) {
		archive, engine := seedArchive(t)

		var out bytes.Buffer
		runPrompt(strings.NewReader("help\n"), &out, archive, engine, defaultConfig())

		assert.Contains(t, out.String(), promptUsage)
	})

	t.Run("unknown document number reports in band", func(t *testing.T) {
		archive, engine := seedArchive(t)

		var out bytes.Buffer
		runPrompt(strings.NewReader("similar US-9999\nquit\n"), &out, archive, engine, defaultConfig())

		assert.Contains(t, out.String(), "patent not found")
		assert.Contains(t, out.String(), "US-9999")
	})

	t.Run("stale data warns before results", func(t *testing.T) {
		archive, engine := seedArchive(t)
		require.NoError(t, engine.Build("claims"))
		engine.MarkStale()

		var out bytes.Buffer
		runPrompt(strings.NewReader("help\nquit\n"), &out, archive, engine, defaultConfig())

		assert.Contains(t, out.String(), "patent data changed on disk")
	})
}

func TestRunDemo(t *testing.T) {
	t.Run("walks the three parts", func(t *testing.T) {
		archive, engine := seedArchive(t)

		var out bytes.Buffer
		runDemo(&out, archive, engine)
		got := out.String()

		assert.Contains(t, got, "1) Text search")
		assert.Contains(t, got, "vocabulary coverage")
		assert.Contains(t, got, "2) Conflict detection")
		assert.Contains(t, got, "US-2024-0001")
		assert.Contains(t, got, "3) Hybrid search")
		assert.Contains(t, got, "US-2024-0003")
	})

	t.Run("empty corpus", func(t *testing.T) {
		archive, err := priorart.Open(t.TempDir(), priorart.WithLogger(quietLogger()))
		require.NoError(t, err)
		engine, err := archive.NewEngine()
		require.NoError(t, err)
		defer engine.Close()

		var out bytes.Buffer
		runDemo(&out, archive, engine)

		assert.Contains(t, out.String(), "No documents loaded")
	})
}
