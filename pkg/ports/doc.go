/*
Package ports defines the driven ports (interfaces) for the kompis engine.

These interfaces decouple the core logic from external implementations,
allowing the engine to work with various session stores, chat transports,
classifiers and audit sinks.

# Key Interfaces

  - SessionStore: persists per-chat conversation state, with conditional
    update/delete guarded by the session ID.
  - Messenger: delivers and edits outbound messages.
  - TopicClassifier: maps free text onto the fixed topic label set.
  - MunicipalityIndex: resolves Swedish postal codes to municipalities.
  - VoteStore / FeedbackStore: append-only audit sinks.
*/
package ports
