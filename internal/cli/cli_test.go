package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sulaimaniyah/undangan/pkg/adapters/memory"
	"github.com/sulaimaniyah/undangan/pkg/domain"
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	snap := domain.NewSnapshot("abc", domain.DefaultRecipient())
	snap.View = domain.ViewConfirmed
	snap.Form = domain.FormState{Name: "Siti", Attending: domain.AttendanceYes}
	snap.Outcome = &domain.SubmissionOutcome{Message: "Terima kasih, Siti!", Succeeded: true}
	snap.Visible = []domain.Section{domain.SectionCover}
	require.NoError(t, store.Save(context.Background(), "abc", snap))
	return store
}

func TestListSessions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ListSessions(context.Background(), memory.NewStore(), &buf))
	assert.Contains(t, buf.String(), "No stored sessions found.")

	buf.Reset()
	require.NoError(t, ListSessions(context.Background(), seededStore(t), &buf))
	assert.Contains(t, buf.String(), "- abc\tconfirmed")
}

func TestInspectSession(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	tests := []struct {
		format string
		want   string
	}{
		{FormatJSON, `"view": "confirmed"`},
		{FormatMarkdown, "## Pesan (generated)"},
		{FormatMermaid, "class page_cover visited;"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, InspectSession(ctx, store, "abc", tt.format, nil, &buf))
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	var buf bytes.Buffer
	err := InspectSession(ctx, store, "missing", FormatJSON, nil, &buf)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	err = InspectSession(ctx, store, "abc", "yaml", nil, &buf)
	assert.Error(t, err)
}

func TestRemoveSessions(t *testing.T) {
	store := seededStore(t)
	var buf bytes.Buffer

	require.NoError(t, RemoveSessions(context.Background(), store, []string{"abc"}, &buf))
	assert.Contains(t, buf.String(), "Removed session 'abc'")

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Link("https://undangan.example/", "Budi Santoso", "", &buf))
	assert.Equal(t, "https://undangan.example/?name=Budi+Santoso", strings.TrimSpace(buf.String()))

	assert.Error(t, Link("://bad", "Budi", "", &buf))
}

func TestPreview_Raw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Preview("", "name=Budi&title=Ketua", true, &buf))
	assert.Contains(t, buf.String(), "> **Budi**")
	assert.Contains(t, buf.String(), "Ketua")
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "undangan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	cfg, err := LoadConfig(Options{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)

	cfg, err = LoadConfig(Options{ConfigPath: path, LogFormat: "json", Debug: true})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	_, err = LoadConfig(Options{ConfigPath: path, LogFormat: "xml"})
	assert.Error(t, err)

	logger, err := CreateLogger(cfg.Log)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
