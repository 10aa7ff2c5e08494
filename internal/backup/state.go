package backup

// State is the phase an Orchestrator is in.
type State int

const (
	Idle State = iota
	ValidatingInput
	BulkBackup
	SingleBackup
	Sweeping
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ValidatingInput:
		return "validating"
	case BulkBackup:
		return "bulk-backup"
	case SingleBackup:
		return "single-backup"
	case Sweeping:
		return "sweeping"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}
