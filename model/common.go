package model

// Error is the kind of failure reported by the models. Use errors.Is to
// test wrapped errors against the constants below.
type Error string

func (err Error) Error() string { return string(err) }

const (
	// ErrEmptyTrainingSet is returned when training gets no data.
	ErrEmptyTrainingSet = Error("model: empty training set")
	// ErrModelNotTrained is returned by operations on a model without labels.
	ErrModelNotTrained = Error("model: model not trained")
	// ErrDegenerateDistribution is returned when a density has a zero standard deviation.
	ErrDegenerateDistribution = Error("model: degenerate distribution")
	// ErrNoViablePath is returned when no label sequence has positive probability.
	ErrNoViablePath = Error("model: no viable path")
	// ErrInvariantViolation is returned when an internal consistency check fails.
	ErrInvariantViolation = Error("model: invariant violation")
	// ErrUnknownLabel is returned for labels that are not part of the model.
	ErrUnknownLabel = Error("model: unknown label")
)
