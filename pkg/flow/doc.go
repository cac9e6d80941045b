/*
Package flow implements the page flow of a single invitation session.

A Controller owns the explicit flow context: view state, recipient, form,
outcome and reveal tracking. Browsing is the only state that accepts page
advances and form edits. A valid submit moves to Submitting for the duration
of exactly one confirmation call and then always lands in Confirmed, whether
the message was generated or fell back to the template. Restart returns to
Browsing with a fresh form and re-armed reveal animations.

Host capabilities (scrolling, audio, viewport observation) are injected as
ports so the same controller runs behind the HTTP adapter and in tests.
*/
package flow
