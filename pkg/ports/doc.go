/*
Package ports defines the driven ports (interfaces) of the invitation flow.

These interfaces decouple the page flow from its host and infrastructure,
allowing the same state machine to run behind an HTTP server, in tests with
synchronous fakes, or from the command line.

# Key Interfaces

  - StateStore: Persists flow snapshots (memory, file or Redis).
  - DistributedLocker: Coordinates access to a session across replicas.
  - Generator: One-shot text generation used for the thank-you message.
  - Observer, Scroller, AudioPlayer: Host capabilities (viewport, scrolling, audio).
*/
package ports
