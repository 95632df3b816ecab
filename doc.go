/*
Package hunt is a server-authoritative engine for timed, multi-stage
treasure hunts.

A hunt is an ordered sequence of challenges. The engine holds all
answer data on the server and enforces a strict trust boundary: clients
see exactly one challenge at a time, stripped of everything
answer-bearing, and every correctness decision is made server-side
against data the client never receives.

# Concept

Each participant run is a session keyed by an unguessable ID, which is
the sole capability to act on it. The session tracks an ordered slot
list of challenge references and a cursor. Three rules govern play:

  - Progressive disclosure: only the challenge at the cursor is ever
    revealed, and only as a safe projection.
  - Server-side verification: answers are checked against the server's
    copy of the challenge; a wrong answer holds the cursor, a correct
    one advances it exactly once.
  - Bounded substitution: a stuck choice challenge can be swapped for an
    unused alternate, and no challenge is ever handed out twice within
    one session.

Sessions idle out after a fixed TTL and are then gone for good; a
request against an evicted session tells the client to start over.

# Usage

The zero-dependency default keeps everything in memory:

	h := hunt.New()

	ctx := context.Background()
	session, err := h.Start(ctx, []string{"q1", "q2", "q3"}, "")
	if err != nil {
		log.Fatal(err)
	}

	view, _ := h.Reveal(ctx, session.ID, 0)
	result, _ := h.Verify(ctx, session.ID, view.Ref, 0, "my answer")
	if result.Completed {
		fmt.Println("finished in", result.CompletionElapsed)
	}

Production deployments swap the backing stores with options: a Redis
session store for multi-instance setups and a SQLite catalog for
persistent content. The HTTP adapter in pkg/adapters/httpapi exposes
the whole surface as a JSON API.
*/
package hunt
