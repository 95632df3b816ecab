/*
Package domain contains the core domain models for the treasure hunt engine.

It defines the fundamental entities of the game: Challenges (with their
type-specific secret answer data), Sessions (one participant's run through
an ordered challenge sequence), safe client-facing projections, and the
sentinel errors shared across the engine and its adapters. This package is
kept pure and free of external dependencies like I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - Challenge: A single puzzle, tagged by type, carrying secret match data.
  - Session: The runtime snapshot of a hunt (slots, cursor, attempt log).
  - SafeView: An answer-stripped projection of a challenge for rendering.
  - VerifyResult: The outcome of an answer verification.
*/
package domain
