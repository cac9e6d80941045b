/*
Package confirm turns a submitted RSVP into a personalised thank-you message.

The Service builds a single prompt, makes exactly one call through a
ports.Generator and never fails: transport errors, empty replies, timeouts
and panics inside the client all collapse into a deterministic fallback
message. Callers can therefore move to the confirmed view unconditionally.
*/
package confirm
