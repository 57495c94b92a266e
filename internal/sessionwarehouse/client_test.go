package sessionwarehouse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The end-time fallback chain is last activity, then logout, then the closed
// timestamp. The order matters: a logout stamped by a cleanup job can
// postdate the user's real activity and would inflate work time.
func TestSessionEndFallbackOrder(t *testing.T) {
	activity := strings.Index(sessionEndExpr, "last_activity_at")
	logout := strings.Index(sessionEndExpr, "logout_at")
	closed := strings.Index(sessionEndExpr, "closed_at")

	assert.GreaterOrEqual(t, activity, 0)
	assert.Less(t, activity, logout)
	assert.Less(t, logout, closed)
}
