package memory_test

import (
	"context"
	"testing"

	"github.com/Kavithma17/Treasure-Hunt/pkg/adapters/memory"
	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T) *memory.Catalog {
	t.Helper()
	ctx := context.Background()
	catalog := memory.NewCatalog()

	require.NoError(t, catalog.SaveStage(ctx, domain.Stage{Code: "S2", Title: "Harbor", Active: true}))
	require.NoError(t, catalog.SaveStage(ctx, domain.Stage{Code: "S1", Title: "Gate", Active: true}))
	require.NoError(t, catalog.SaveStage(ctx, domain.Stage{Code: "S3", Title: "Vault", Active: false}))

	require.NoError(t, catalog.SaveChallenge(ctx, &domain.Challenge{
		Ref: "fib-1", Code: "S1-F1", StageCode: "S1", Type: domain.TypeFIB, Active: true,
		FIB: &domain.FIBData{Answers: []string{"paris"}, TrimInput: true},
	}))
	require.NoError(t, catalog.SaveChallenge(ctx, &domain.Challenge{
		Ref: "fib-2", Code: "S2-F1", StageCode: "S2", Type: domain.TypeFIB, Active: true,
		FIB: &domain.FIBData{Answers: []string{"nile"}, TrimInput: true},
	}))
	require.NoError(t, catalog.SaveChallenge(ctx, &domain.Challenge{
		Ref: "mcq-1", Code: "S1-M1", StageCode: "S1", Type: domain.TypeMCQ, Active: true,
		MCQ: &domain.MCQData{Options: []domain.Option{{ID: "A", Text: "x"}, {ID: "B", Text: "y"}}, CorrectOptionID: "A"},
	}))
	require.NoError(t, catalog.SaveChallenge(ctx, &domain.Challenge{
		Ref: "fib-retired", Code: "S1-F9", StageCode: "S1", Type: domain.TypeFIB, Active: false,
		FIB: &domain.FIBData{Answers: []string{"x"}},
	}))
	return catalog
}

func TestCatalog_LookupByRef(t *testing.T) {
	catalog := seedCatalog(t)
	ctx := context.Background()

	challenge, err := catalog.LookupByRef(ctx, "mcq-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TypeMCQ, challenge.Type)

	_, err = catalog.LookupByRef(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
}

func TestCatalog_FindUnused(t *testing.T) {
	catalog := seedCatalog(t)
	ctx := context.Background()

	// Skips excluded and inactive challenges.
	challenge, err := catalog.FindUnused(ctx, domain.TypeFIB, []string{"fib-1"})
	require.NoError(t, err)
	assert.Equal(t, "fib-2", challenge.Ref)

	_, err = catalog.FindUnused(ctx, domain.TypeFIB, []string{"fib-1", "fib-2"})
	assert.ErrorIs(t, err, domain.ErrChallengeNotFound, "retired challenges must not be selectable")
}

func TestCatalog_ActiveStagesOrdered(t *testing.T) {
	catalog := seedCatalog(t)

	stages, err := catalog.ActiveStages(context.Background())
	require.NoError(t, err)
	require.Len(t, stages, 2, "inactive stages are excluded")
	assert.Equal(t, "S1", stages[0].Code)
	assert.Equal(t, "S2", stages[1].Code)
}
