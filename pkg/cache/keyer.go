package cache

// Keyer builds cache keys.
type Keyer interface {
	// AnalysisKey returns the key of an analysis request.
	AnalysisKey(kind string, opts AnalysisKeyOpts) string

	// ArtifactKey returns the key of a rendering derived from an analysis.
	ArtifactKey(analysisKey string, format string) string
}

// AnalysisKeyOpts holds every input that influences an analysis result.
type AnalysisKeyOpts struct {
	Generators     []string `json:"generators"`
	Relators       []string `json:"relators"`
	Subgroup       []string `json:"subgroup,omitempty"`
	MaxSize        int      `json:"max_size,omitempty"`
	NormalOnly     bool     `json:"normal_only,omitempty"`
	SizeLimit      int      `json:"size_limit,omitempty"`
	MaxChoices     int64    `json:"max_choices,omitempty"`
	Basepoint      string   `json:"basepoint,omitempty"`
	MaxLabelLength int      `json:"max_label_length,omitempty"`
}

// DefaultKeyer hashes the request into keys of the form analysis:<sha256>.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) AnalysisKey(kind string, opts AnalysisKeyOpts) string {
	return hashKey("analysis", kind, opts)
}

func (DefaultKeyer) ArtifactKey(analysisKey string, format string) string {
	return hashKey("artifact", analysisKey, format)
}
