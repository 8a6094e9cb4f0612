package guild

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"warden/pkg/platform/sentinel"
)

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeOK, OutcomeOf(nil))
	assert.Equal(t, OutcomePermissionDenied, OutcomeOf(fmt.Errorf("add role: %w", sentinel.ErrForbidden)))
	assert.Equal(t, OutcomeOther, OutcomeOf(errors.New("connection reset")))
	assert.Equal(t, OutcomeOther, OutcomeOf(sentinel.ErrNotFound))
}

func TestMember(t *testing.T) {
	m := Member{ID: "42", Username: "alice", DisplayName: "Alice A", Roles: []string{"1", "2"}}

	assert.True(t, m.HasRole("2"))
	assert.False(t, m.HasRole("3"))
	assert.Equal(t, "<@42>", m.Mention())
	assert.Equal(t, "Alice A (alice)", m.Label())
	assert.Equal(t, "bob", Member{Username: "bob", DisplayName: "bob"}.Label())
	assert.Equal(t, "<@&7>", Role{ID: "7"}.Mention())
}
