package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fpgroups/pkg/errors"
	"github.com/matzehuels/fpgroups/pkg/pipeline"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	opts := pipeline.Options{
		Kind:       pipeline.KindInvariants,
		Generators: []string{"a", "b"},
		Relators:   []string{"a^2", "b^3", "(a*b)^2"},
	}
	res, err := pipeline.NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	require.NoError(t, err)
	return NewReport(opts, res)
}

// runStoreContract exercises the behaviour every Store must share.
func runStoreContract(t *testing.T, s Store) {
	ctx := context.Background()

	r := sampleReport(t)
	require.NoError(t, s.Save(ctx, r))

	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, pipeline.KindInvariants, got.Result.Kind)
	assert.Equal(t, "Z/2", got.Result.Invariants.Text)
	assert.Equal(t, r.Options.Relators, got.Options.Relators)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))

	_, err = s.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "missing report: %v", err)

	older := sampleReport(t)
	older.CreatedAt = r.CreatedAt.Add(-time.Hour)
	require.NoError(t, s.Save(ctx, older))

	list, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(list), 2)
	assert.False(t, list[0].CreatedAt.Before(list[1].CreatedAt), "newest report first")

	list, err = s.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.True(t, errors.Is(s.Save(ctx, &Report{}), errors.ErrCodeInvalidInput))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close(context.Background())
	runStoreContract(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("FPGROUPS_MONGO_URI")
	if uri == "" {
		t.Skip("FPGROUPS_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, uri, "fpgroups_test_"+time.Now().Format("20060102150405"))
	require.NoError(t, err)
	defer func() {
		_ = s.coll.Database().Drop(ctx)
		_ = s.Close(ctx)
	}()
	runStoreContract(t, s)
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID(NewReport(pipeline.Options{}, nil).ID))
	assert.True(t, errors.Is(ValidateID("not-a-uuid"), errors.ErrCodeNotFound))
}
