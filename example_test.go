package hunt_test

import (
	"context"
	"fmt"
	"log"

	hunt "github.com/Kavithma17/Treasure-Hunt"
	"github.com/Kavithma17/Treasure-Hunt/pkg/adapters/memory"
	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

// ExampleNew demonstrates a complete hunt against the in-memory
// backends: seed a catalog, start a session, reveal and answer.
func ExampleNew() {
	catalog := memory.NewCatalog()
	ctx := context.Background()

	err := catalog.SaveChallenge(ctx, &domain.Challenge{
		Ref: "riddle-1", Code: "r1", StageCode: "intro", Type: domain.TypeFIB,
		Prompt: "I speak without a mouth. What am I?", Active: true,
		FIB:    &domain.FIBData{Answers: []string{"an echo", "echo"}},
	})
	if err != nil {
		log.Fatal(err)
	}

	h := hunt.New(hunt.WithCatalog(catalog))

	session, err := h.Start(ctx, []string{"riddle-1"}, "")
	if err != nil {
		log.Fatal(err)
	}

	view, err := h.Reveal(ctx, session.ID, 0)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(view.Prompt)

	result, err := h.Verify(ctx, session.ID, view.Ref, 0, "Echo")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(result.Correct, result.Completed)

	// Output:
	// I speak without a mouth. What am I?
	// true true
}
