package catalog

// Record kinds, used as metric labels.
const (
	KindBook   = "book"
	KindReview = "review"
)

// Recorder receives data-quality counts while records are normalized.
// *metrics.Metrics implements it.
type Recorder interface {
	IncRecord(kind string)
	IncDefaults(kind string, fields []string)
	IncMalformedDate()
}

type noopRecorder struct{}

func (noopRecorder) IncRecord(string) {}
func (noopRecorder) IncDefaults(string, []string) {}
func (noopRecorder) IncMalformedDate() {}

type options struct {
	recorder Recorder
}

// Option configures a normalizer.
type Option func(*options)

// WithRecorder reports per-record counts to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{recorder: noopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
