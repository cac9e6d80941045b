package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the program banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text, color string
	}{
		{"  _   _           _                           ", "#d4a017"},
		{" | | | |_ __   __| | __ _ _ __   __ _  __ _ _ __  ", "#c9961a"},
		{" | | | | '_ \\ / _` |/ _` | '_ \\ / _` |/ _` | '_ \\ ", "#b8860b"},
		{" | |_| | | | | (_| | (_| | | | | (_| | (_| | | | |", "#a67c0a"},
		{"  \\___/|_| |_|\\__,_|\\__,_|_| |_|\\__, |\\__,_|_| |_|", "#8f6b08"},
		{"                                |___/              ", "#7a5c07"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
