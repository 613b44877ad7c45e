package logging

import "github.com/oklog/ulid/v2"

// NewRunID returns a new identifier for one invocation. ULIDs sort by
// creation time, so per-run log files list in run order.
func NewRunID() string {
	return ulid.Make().String()
}
