/*
Package undangan serves a personalised digital invitation with an RSVP form.

A guest opens a link carrying their name and title, scrolls through the cover,
event details and agenda, and confirms attendance. The confirmation is turned
into a short thank-you message by a text-generation backend, with a fixed
message as fallback, so every valid submission ends on the thank-you page.

# Architecture

The page flow lives in pkg/flow and knows nothing about HTTP. Host concerns
(scrolling, audio, viewport observation) are ports implemented by adapters,
sessions are persisted through a ports.StateStore, and the HTTP adapter
renders server-side pages driven by htmx.

# Usage

	cfg, err := config.Load("undangan.yaml")
	if err != nil {
		log.Fatal(err)
	}
	app, err := undangan.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	log.Fatal(http.ListenAndServe(cfg.Server.Addr, app.Handler()))
*/
package undangan
