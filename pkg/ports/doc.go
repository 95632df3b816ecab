/*
Package ports defines the driven ports (interfaces) for the hunt engine.

These interfaces decouple the core logic from external implementations,
allowing the engine to work with various session backends and challenge
sources.

# Key Interfaces

  - SessionStore: Registry of active sessions with idle-based expiry
    (memory or Redis).
  - ChallengeRepository: Read-only challenge lookup used by the engine.
  - Catalog: The wider authoring/selection surface over challenge content.
  - PlayerStore / Leaderboard: Participant records and finish times.
  - Clock: Injectable time source so expiry is testable without waiting.
*/
package ports
