package journal

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; wrap slow ones with hooks/async.
type Hooks interface {
	// An entry was deleted by the journal on read.
	// reason ∈ {"corrupt", "stale", "value_decode"}
	SelfHeal(storageKey, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string)

	// GenStore errors. count is the number of keys involved.
	GenSnapshotError(count int, err error)
	GenBumpError(storageKey string, err error)

	// Both revision bump and delete failed during Cancel (likely backend outage).
	CancelOutage(token string, bumpErr, delErr error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string)           {}
func (NopHooks) ProviderSetRejected(string)        {}
func (NopHooks) GenSnapshotError(int, error)       {}
func (NopHooks) GenBumpError(string, error)        {}
func (NopHooks) CancelOutage(string, error, error) {}
