/*
Package game implements the hunt core: the progressive-disclosure reveal
gate, the answer verification engine, the per-type correctness
comparators, and the alternate-challenge substitution protocol.

The engine is the sole authority over progress. It trusts nothing a
client claims: correctness is always recomputed from the stored challenge
record, only the current slot is ever revealable or answerable, and every
attempt is appended to the session's audit log before progress changes.
Operations on one session are serialized through refcounted per-session
locks; operations on different sessions never block each other.
*/
package game
