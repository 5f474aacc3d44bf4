package pipeline

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/fpgroups/pkg/cache"
	"github.com/matzehuels/fpgroups/pkg/errors"
	"github.com/matzehuels/fpgroups/pkg/observability"
)

func s3(kind string) Options {
	return Options{
		Kind:       kind,
		Generators: []string{"a", "b"},
		Relators:   []string{"a^2", "b^3", "(a*b)^2"},
	}
}

func TestValidateKind(t *testing.T) {
	for _, kind := range []string{"cosets", "subgroups", "invariants", "stabilizer"} {
		if err := ValidateKind(kind); err != nil {
			t.Errorf("ValidateKind(%q) = %v", kind, err)
		}
	}
	for _, kind := range []string{"", "Cosets", "layout"} {
		if err := ValidateKind(kind); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ValidateKind(%q) = %v, want %s", kind, err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := s3(KindSubgroups)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.MaxSize != DefaultMaxSize {
		t.Errorf("MaxSize = %d, want %d", opts.MaxSize, DefaultMaxSize)
	}
	if opts.SizeLimit != DefaultSizeLimit {
		t.Errorf("SizeLimit = %d, want %d", opts.SizeLimit, DefaultSizeLimit)
	}
	if opts.MaxLabelLength != DefaultMaxLabelLength {
		t.Errorf("MaxLabelLength = %d, want %d", opts.MaxLabelLength, DefaultMaxLabelLength)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call: %v", err)
	}
}

func TestValidateAndSetDefaultsRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"bad kind", func(o *Options) { o.Kind = "render" }, errors.ErrCodeInvalidInput},
		{"duplicate generator", func(o *Options) { o.Generators = []string{"a", "a"} }, errors.ErrCodeInvalidAlphabet},
		{"index too large", func(o *Options) { o.MaxSize = 1000 }, errors.ErrCodeInvalidInput},
		{"negative index", func(o *Options) { o.MaxSize = -1 }, errors.ErrCodeInvalidInput},
		{"negative choices", func(o *Options) { o.MaxChoices = -1 }, errors.ErrCodeInvalidInput},
		{"negative size limit", func(o *Options) { o.SizeLimit = -5 }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := s3(KindSubgroups)
			tt.modify(&opts)
			if err := opts.ValidateAndSetDefaults(); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestKeyOptsIgnoresIrrelevantFields(t *testing.T) {
	k := cache.NewDefaultKeyer()
	a := s3(KindInvariants)
	b := s3(KindInvariants)
	b.MaxSize = 7
	b.Subgroup = []string{"a"}
	if k.AnalysisKey(a.Kind, a.KeyOpts()) != k.AnalysisKey(b.Kind, b.KeyOpts()) {
		t.Error("invariants do not depend on the subgroup or index bound")
	}

	c := s3(KindCosets)
	d := s3(KindCosets)
	d.Subgroup = []string{"a"}
	if k.AnalysisKey(c.Kind, c.KeyOpts()) == k.AnalysisKey(d.Kind, d.KeyOpts()) {
		t.Error("coset tables depend on the subgroup")
	}
}

func TestExecuteCosets(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{
		Kind:       KindCosets,
		Generators: []string{"a", "b"},
		Relators:   []string{"a^3", "b^2", "(a*b)^5"},
	}
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cosets.Size() != 60 {
		t.Errorf("Size() = %d, want 60", res.Cosets.Size())
	}
	if !slices.Equal(res.Cosets.Columns, []string{"a", "a^-1", "b", "b^-1"}) {
		t.Errorf("Columns = %v", res.Cosets.Columns)
	}
	if res.Cosets.Representatives[0] != "*" {
		t.Errorf("first representative = %s, want *", res.Cosets.Representatives[0])
	}
	if res.Stats.Size != 60 {
		t.Errorf("Stats.Size = %d, want 60", res.Stats.Size)
	}
	if res.String() != "60 cosets" {
		t.Errorf("String() = %s", res.String())
	}
}

func TestExecuteSubgroups(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	opts := s3(KindSubgroups)
	opts.MaxSize = 6
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	var indices []int
	normal := 0
	for _, c := range res.Subgroups {
		indices = append(indices, c.Index)
		if c.Normal {
			normal++
		}
	}
	slices.Sort(indices)
	if !slices.Equal(indices, []int{1, 2, 3, 6}) {
		t.Errorf("indices = %v, want [1 2 3 6]", indices)
	}
	if normal != 3 {
		t.Errorf("%d normal classes, want 3", normal)
	}
	for _, c := range res.Subgroups {
		if c.Index == 6 && c.Invariants.Text != "0" {
			t.Errorf("trivial subgroup has invariants %s", c.Invariants.Text)
		}
		if c.Index == 2 && c.Invariants.Text != "Z/3" {
			t.Errorf("index 2 subgroup has invariants %s, want Z/3", c.Invariants.Text)
		}
	}

	opts.NormalOnly = true
	res, err = r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Subgroups) != 3 {
		t.Errorf("%d normal classes, want 3", len(res.Subgroups))
	}
}

func TestExecuteInvariants(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), s3(KindInvariants))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(res.Invariants.Values, []string{"2"}) || res.Invariants.Text != "Z/2" {
		t.Errorf("Invariants = %+v, want [2] Z/2", res.Invariants)
	}
}

func TestExecuteStabilizer(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{
		Kind:       KindStabilizer,
		Generators: []string{"a", "b"},
		Relators:   []string{"[a,b]"},
		Subgroup:   []string{"a^2", "b^3"},
		Basepoint:  "a",
	}
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	st := res.Stabilizer
	if st.Index != 6 {
		t.Errorf("Index = %d, want 6", st.Index)
	}
	if st.Basepoint != "a" {
		t.Errorf("Basepoint = %s, want a", st.Basepoint)
	}
	if st.Invariants.Text != "Z x Z" {
		t.Errorf("Invariants = %s, want Z x Z", st.Invariants.Text)
	}
}

func TestExecuteUsesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	first, err := r.Execute(ctx, s3(KindCosets))
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.Hit {
		t.Error("first run should miss")
	}

	second, err := r.Execute(ctx, s3(KindCosets))
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.Hit || second.CacheInfo.Key != first.CacheInfo.Key {
		t.Errorf("second run CacheInfo = %+v, want a hit on %s", second.CacheInfo, first.CacheInfo.Key)
	}
	if second.Cosets.Size() != 6 || !slices.Equal(second.Cosets.Representatives, first.Cosets.Representatives) {
		t.Errorf("cached cosets differ: %+v", second.Cosets)
	}

	opts := s3(KindCosets)
	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.Hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	opts := s3(KindCosets)
	opts.Relators = []string{"a^2*c"}
	if _, err := r.Execute(context.Background(), opts); !errors.Is(err, errors.ErrCodeInvalidPresentation) {
		t.Errorf("unknown letter: %v", err)
	}

	opts = Options{Kind: KindCosets, Generators: []string{"a", "b"}, SizeLimit: 50}
	if _, err := r.Execute(context.Background(), opts); !errors.Is(err, errors.ErrCodeSizeLimit) {
		t.Errorf("free group: %v, want %s", err, errors.ErrCodeSizeLimit)
	}

	opts = s3(KindSubgroups)
	opts.MaxChoices = 1
	if _, err := r.Execute(context.Background(), opts); !errors.Is(err, errors.ErrCodeChoiceLimit) {
		t.Errorf("choice limit: %v, want %s", err, errors.ErrCodeChoiceLimit)
	}
}

func TestExecuteCancelled(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, kind := range []string{KindCosets, KindSubgroups} {
		if _, err := r.Execute(ctx, s3(kind)); !errors.Is(err, errors.ErrCodeTimeout) {
			t.Errorf("%s: error = %v, want %s", kind, err, errors.ErrCodeTimeout)
		}
	}
}

func TestExecuteSubgroupsDeadline(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{
		Kind:       KindSubgroups,
		Generators: []string{"a", "b"},
		Relators:   []string{"a^2", "b^3", "(a*b)^7"},
		MaxSize:    64,
		NormalOnly: true,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	res, err := r.Execute(ctx, opts)
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Fatalf("error = %v (result %v), want %s", err, res, errors.ErrCodeTimeout)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Execute returned %v after a 100ms deadline", elapsed)
	}
}

func TestExecuteEmitsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetEnumerationHooks(hooks)

	opts := s3(KindSubgroups)
	opts.MaxSize = 3
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.started != 1 || hooks.completed != 1 {
		t.Errorf("started = %d, completed = %d, want 1 and 1", hooks.started, hooks.completed)
	}
	if hooks.actions != len(res.Subgroups) {
		t.Errorf("actions = %d, want %d", hooks.actions, len(res.Subgroups))
	}
}

type recordingHooks struct {
	observability.NoopEnumerationHooks
	mu                          sync.Mutex
	started, completed, actions int
}

func (h *recordingHooks) OnEnumerationStart(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started++
}

func (h *recordingHooks) OnEnumerationComplete(context.Context, string, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed++
}

func (h *recordingHooks) OnActionFound(context.Context, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.actions++
}
