package dataset

import "github.com/pkg/errors"

// Sentinel errors for the data-loading stages. Callers match them with
// errors.Is; all of them are fatal to a run.
var (
	// ErrRetrieval means the remote dataset could not be fetched.
	ErrRetrieval = errors.New("dataset: retrieval failed")

	// ErrParse means the fetched content is not the expected CSV.
	ErrParse = errors.New("dataset: parse failed")

	// ErrConfiguration means a preparation parameter is unusable, e.g.
	// a split fraction outside (0, 1) or a training split that lost an
	// entire label class.
	ErrConfiguration = errors.New("dataset: invalid configuration")
)
