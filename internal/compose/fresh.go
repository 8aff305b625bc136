package compose

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/mixlang/mixgen/internal/config"
)

var testCounter atomic.Uint64

// FreshName returns a hygienic identifier with the given prefix that
// cannot collide with user-written names. In test mode a counter replaces
// the random suffix so generated output is stable across runs.
func FreshName(prefix string) string {
	if config.IsTestMode {
		return fmt.Sprintf("%s$%d", prefix, testCounter.Add(1))
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "$" + id[:8]
}

// ResetFreshNames restarts the test-mode counter. Tests call this so each
// case sees names numbered from one.
func ResetFreshNames() {
	testCounter.Store(0)
}
