/*
Package domain contains the core domain models of the invitation flow.

It defines the entities the page flow works with: the recipient shown on the
cover, the RSVP form, the outcome of a confirmation, the view states of the
flow and the sections of the invitation. This package is kept pure and free
of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - RecipientInfo: Who the invitation is addressed to (resolved once per session).
  - FormState: The RSVP fields (guest name and attendance choice).
  - SubmissionOutcome: The thank-you message produced for a submission.
  - ViewState: Browsing, Submitting or Confirmed.
  - Snapshot: A serializable view of one flow session.
*/
package domain
