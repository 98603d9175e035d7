package reports

// MutationState tracks a write from request to outcome
type MutationState string

const (
	MutationPending   MutationState = "pending"
	MutationCommitted MutationState = "committed"
	MutationFailed    MutationState = "failed"
)

// Mutation is the outcome of a lifecycle write. On failure Report holds the
// last committed copy so callers can revert whatever they showed optimistically.
type Mutation struct {
	State  MutationState `json:"state" example:"committed"`
	Report Report        `json:"report"`
	Error  string        `json:"error,omitempty"`

	err error
}

func newMutation(r Report) *Mutation {
	return &Mutation{State: MutationPending, Report: r}
}

func (m *Mutation) commit(r Report) *Mutation {
	m.State = MutationCommitted
	m.Report = r
	return m
}

func (m *Mutation) fail(err error) *Mutation {
	m.State = MutationFailed
	m.Error = err.Error()
	m.err = err
	return m
}

// Err returns the cause of a failed mutation
func (m *Mutation) Err() error {
	return m.err
}
