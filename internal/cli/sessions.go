package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sulaimaniyah/undangan"
	"github.com/sulaimaniyah/undangan/internal/presentation/graph"
	"github.com/sulaimaniyah/undangan/internal/presentation/tui"
	"github.com/sulaimaniyah/undangan/pkg/ports"
)

// Output formats accepted by InspectSession.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatMermaid  = "mermaid"
)

// OpenStore opens the store configured by opts. The returned function
// releases its connection.
func OpenStore(opts Options) (ports.StateStore, func(), error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	store, _, closer, err := undangan.OpenStore(cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if closer != nil {
			_ = closer()
		}
	}, nil
}

// ListSessions writes one stored session id per line.
func ListSessions(ctx context.Context, store ports.StateStore, w io.Writer) error {
	ids, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing sessions: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No stored sessions found.")
		return nil
	}
	for _, id := range ids {
		snap, err := store.Load(ctx, id)
		if err != nil {
			fmt.Fprintf(w, "- %s\t(unreadable: %v)\n", id, err)
			continue
		}
		fmt.Fprintf(w, "- %s\t%s\t%s\n", id, snap.View, snap.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// InspectSession prints a stored session as JSON, rendered markdown or a
// Mermaid graph of its progress. render may be nil for raw markdown.
func InspectSession(ctx context.Context, store ports.StateStore, id, format string, render func(string) (string, error), w io.Writer) error {
	snap, err := store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("error loading session '%s': %w", id, err)
	}

	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling session: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case FormatMarkdown:
		md := tui.Summary(snap)
		if render != nil {
			if md, err = render(md); err != nil {
				return err
			}
		}
		fmt.Fprint(w, md)
	case FormatMermaid:
		fmt.Fprint(w, graph.GenerateMermaid(graph.OverlayFor(snap)))
	default:
		return fmt.Errorf("unknown format %q: must be json, markdown or mermaid", format)
	}
	return nil
}

// RemoveSessions deletes each id and reports per session. It fails if any
// removal failed.
func RemoveSessions(ctx context.Context, store ports.StateStore, ids []string, w io.Writer) error {
	failed := 0
	for _, id := range ids {
		if err := store.Delete(ctx, id); err != nil {
			fmt.Fprintf(w, "Error removing '%s': %v\n", id, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "Removed session '%s'\n", id)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d sessions could not be removed", failed, len(ids))
	}
	return nil
}
