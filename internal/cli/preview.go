package cli

import (
	"fmt"
	"io"

	"github.com/sulaimaniyah/undangan/internal/content"
	"github.com/sulaimaniyah/undangan/internal/presentation/tui"
	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/recipient"
)

// Link prints the personalised invitation URL for name and title.
func Link(base, name, title string, w io.Writer) error {
	u, err := recipient.Link(base, domain.RecipientInfo{Name: name, Title: title})
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", base, err)
	}
	fmt.Fprintln(w, u)
	return nil
}

// Preview prints the invitation pages for the recipient a link would
// resolve to. Raw output skips terminal styling.
func Preview(contentPath, rawQuery string, raw bool, w io.Writer) error {
	c, err := content.Load(contentPath)
	if err != nil {
		return err
	}
	md := tui.Preview(c, recipient.ResolveQuery(rawQuery))
	if raw {
		fmt.Fprint(w, md)
		return nil
	}

	render, err := tui.NewRenderer(0)
	if err != nil {
		return err
	}
	out, err := render(md)
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)
	return nil
}
