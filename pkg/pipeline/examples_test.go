package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/fpgroups/pkg/cache"
	fpio "github.com/matzehuels/fpgroups/pkg/io"
)

// The presentations shipped in examples/ must load and enumerate.
func TestExamplePresentations(t *testing.T) {
	tests := []struct {
		file       string
		cosets     int
		invariants string
	}{
		{"s3.toml", 3, "Z/2"},
		{"a5.yaml", 20, "0"},
		{"quaternion.json", 8, "Z/2 x Z/2"},
		{"fibonacci.toml", 11, "Z/11"},
		{"coxeter-b2.yaml", 8, "Z/2 x Z/2"},
	}

	r := NewRunner(cache.NewNullCache(), nil, nil)
	defer r.Close()
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			p, err := fpio.Import(filepath.Join("..", "..", "examples", "presentations", tt.file))
			if err != nil {
				t.Fatal(err)
			}

			res, err := r.Execute(ctx, FromPresentation(KindCosets, p))
			if err != nil {
				t.Fatal(err)
			}
			if got := res.Cosets.Size(); got != tt.cosets {
				t.Errorf("%d cosets, want %d", got, tt.cosets)
			}

			res, err = r.Execute(ctx, FromPresentation(KindInvariants, p))
			if err != nil {
				t.Fatal(err)
			}
			if res.Invariants.Text != tt.invariants {
				t.Errorf("invariants = %q, want %q", res.Invariants.Text, tt.invariants)
			}
		})
	}
}
