package process

import "testing"

// Real termination is only observable with a live browser; these cases
// check the guards.

func TestKillTree_IgnoresNonPositivePID(t *testing.T) {
	t.Parallel()

	// Reaching the end proves pid 0 did not signal the test's own group.
	KillTree(0)
	KillTree(-1)
}

func TestKillTree_UnknownPID(t *testing.T) {
	t.Parallel()

	KillTree(999999999)
}
