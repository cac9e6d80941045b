/*
Package http serves the invitation as server-rendered pages driven by htmx.

Each browser holds a session cookie naming one flow. Page actions post to
small endpoints; host side effects the flow requests (smooth scrolling,
background audio) travel back as HX-Trigger directives, and the browser's
IntersectionObserver reports section visibility as beacons. Snapshot diffs
are streamed over Server-Sent Events for dashboards and tests.
*/
package http
