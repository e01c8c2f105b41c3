package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTicketStatus(t *testing.T) {
	status, err := ParseTicketStatus("in_progress")
	require.NoError(t, err)
	require.Equal(t, TicketStatusInProgress, status)

	status, err = ParseTicketStatus("  Closed ")
	require.NoError(t, err)
	require.Equal(t, TicketStatusClosed, status)

	_, err = ParseTicketStatus("ARCHIVED")
	require.Error(t, err)
}

func TestParseTicketPriority(t *testing.T) {
	priority, err := ParseTicketPriority("high")
	require.NoError(t, err)
	require.Equal(t, TicketPriorityHigh, priority)

	_, err = ParseTicketPriority("urgent")
	require.Error(t, err)

	_, err = ParseTicketPriority("")
	require.Error(t, err)
}

func TestTicketStatusIsTerminal(t *testing.T) {
	require.True(t, TicketStatusClosed.IsTerminal())
	require.True(t, TicketStatusResolved.IsTerminal())
	require.False(t, TicketStatusOpen.IsTerminal())
	require.False(t, TicketStatusInProgress.IsTerminal())
}

func TestParseRoleName(t *testing.T) {
	role, err := ParseRoleName("admin")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, role)

	_, err = ParseRoleName("supervisor")
	require.Error(t, err)
}

func TestUserHasRole(t *testing.T) {
	user := User{Roles: []Role{{ID: 1, Name: RoleAdmin}, {ID: 3, Name: RoleUser}}}
	require.True(t, user.HasRole(RoleAdmin))
	require.False(t, user.HasRole(RoleAgent))
	require.Equal(t, []string{"ADMIN", "USER"}, user.RoleNames())
}
