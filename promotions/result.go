package promotions

import "admin-console/models"

// Outcome reports what happened to the remote mirror during a mutation.
type Outcome int

const (
	// OutcomeNotAttempted means no remote call was made.
	OutcomeNotAttempted Outcome = iota
	// OutcomeSynced means the remote call succeeded.
	OutcomeSynced
	// OutcomeRemoteFailed means the remote call failed and only the local
	// copy changed.
	OutcomeRemoteFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSynced:
		return "synced"
	case OutcomeRemoteFailed:
		return "remote_failed"
	default:
		return "not_attempted"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is returned by every mutation once the local change is persisted.
type Result struct {
	Record    models.PromotionRecord
	Outcome   Outcome
	RemoteErr error
}

// LocalOnly reports whether the remote mirror is behind the local copy.
func (r Result) LocalOnly() bool {
	return r.Outcome != OutcomeSynced
}
