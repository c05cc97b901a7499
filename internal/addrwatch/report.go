package addrwatch

import "time"

// RunReport summarizes a single watch run.
//
// Checked counts every address the run looked at, including the ones that
// turned out to have no transfers, so Checked == Changed + NoTransfers +
// unchanged addresses.
type RunReport struct {
	RunID       string    // identifier shared by all events of this run
	StartedAt   time.Time // when the run began (UTC)
	FinishedAt  time.Time // when the run stopped, successfully or not (UTC)
	Checked     int       // addresses queried
	Changed     int       // addresses with a new transfer hash
	NoTransfers int       // addresses with no transfer activity at all
}
