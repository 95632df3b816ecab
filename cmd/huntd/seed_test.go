package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Kavithma17/Treasure-Hunt/pkg/adapters/sqlite"
	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

func TestRunSeedExampleFixture(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "hunt.db")

	err := runSeed(context.Background(), dbPath, filepath.Join("fixtures", "example.yaml"))
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open seeded db: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	stages, err := store.ActiveStages(ctx)
	if err != nil {
		t.Fatalf("list stages: %v", err)
	}
	if len(stages) != 3 {
		t.Errorf("expected 3 active stages, got %d", len(stages))
	}

	c, err := store.LookupByRef(ctx, "lib-mcq-1")
	if err != nil {
		t.Fatalf("lookup challenge: %v", err)
	}
	if c.Type != domain.TypeMCQ || c.MCQ.CorrectOptionID != "C" {
		t.Errorf("unexpected challenge record: %+v", c)
	}

	// Seeding twice upserts instead of failing.
	if err := runSeed(ctx, dbPath, filepath.Join("fixtures", "example.yaml")); err != nil {
		t.Fatalf("re-seed failed: %v", err)
	}
}

func TestFixtureChallengeValidation(t *testing.T) {
	cases := []struct {
		name string
		c    fixtureChallenge
	}{
		{"unknown type", fixtureChallenge{Code: "x", Stage: "s", Type: "riddle", Prompt: "p"}},
		{"mcq without options", fixtureChallenge{Code: "x", Stage: "s", Type: "mcq", Prompt: "p"}},
		{"fib without answers", fixtureChallenge{Code: "x", Stage: "s", Type: "fib", Prompt: "p"}},
		{"qr without code", fixtureChallenge{Code: "x", Stage: "s", Type: "qr", Prompt: "p", QR: &domain.QRData{}}},
		{"photo without key", fixtureChallenge{Code: "x", Stage: "s", Type: "photo", Prompt: "p", Photo: &domain.PhotoData{}}},
		{"missing prompt", fixtureChallenge{Code: "x", Stage: "s", Type: "fib", FIB: &domain.FIBData{Answers: []string{"a"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.c.toDomain(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
