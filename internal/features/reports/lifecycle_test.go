package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var actionInstant = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func TestTransition_AcceptPending(t *testing.T) {
	r := Report{ID: "r1", Status: StatusPending}

	fields, next, err := Transition(r, ActionAccept, "", actionInstant)
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, next.Status)
	assert.Empty(t, next.Assignee)
	assert.Nil(t, next.AssignedAt)
	assert.Equal(t, "Accepted", fields["status"])
	assert.NotContains(t, fields, "assignee")
	assert.Equal(t, StatusPending, r.Status, "input must not be modified")
}

func TestTransition_AssignAccepted(t *testing.T) {
	r := Report{ID: "r1", Status: StatusAccepted}

	fields, next, err := Transition(r, ActionAssign, "Unit A", actionInstant)
	require.NoError(t, err)

	assert.Equal(t, StatusInProgress, next.Status)
	assert.Equal(t, "Unit A", next.Assignee)
	require.NotNil(t, next.AssignedAt)
	assert.True(t, next.AssignedAt.Equal(actionInstant))
	assert.Equal(t, "In Progress", fields["status"])
	assert.Equal(t, "Unit A", fields["assignee"])
	assert.Equal(t, actionInstant, fields["assignedAt"])
}

func TestTransition_LegacyStatusLabels(t *testing.T) {
	_, next, err := Transition(Report{Status: "Open"}, ActionAccept, "", actionInstant)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, next.Status)

	_, next, err = Transition(Report{Status: "Verified"}, ActionAssign, "Clean City - Team 1", actionInstant)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, next.Status)
}

func TestTransition_ResolveSetsResolvedAt(t *testing.T) {
	fields, next, err := Transition(Report{Status: StatusInProgress, Assignee: "Unit A"}, ActionResolve, "", actionInstant)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, next.Status)
	require.NotNil(t, next.ResolvedAt)
	assert.Contains(t, fields, "resolvedAt")
	assert.Equal(t, "Unit A", next.Assignee)
}

func TestTransition_AssignRequiresTeam(t *testing.T) {
	_, _, err := Transition(Report{Status: StatusAccepted}, ActionAssign, "  ", actionInstant)
	assert.ErrorIs(t, err, ErrTeamRequired)
}

func TestTransition_TerminalStatesAcceptNothing(t *testing.T) {
	actions := []Action{ActionAccept, ActionReject, ActionAssign, ActionResolve}
	for _, status := range []Status{StatusResolved, StatusRejected} {
		for _, action := range actions {
			r := Report{Status: status}
			fields, next, err := Transition(r, action, "Unit A", actionInstant)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s from %s", action, status)
			assert.Nil(t, fields)
			assert.Equal(t, status, next.Status)
		}
		assert.Empty(t, AllowedActions(status))
	}
}

func TestTransition_OnlyForwardPairsAllowed(t *testing.T) {
	allowed := map[Status][]Action{
		StatusPending:    {ActionAccept, ActionReject},
		StatusAccepted:   {ActionAssign},
		StatusInProgress: {ActionResolve},
	}
	for status, actions := range allowed {
		assert.ElementsMatch(t, actions, AllowedActions(status), string(status))
	}

	_, _, err := Transition(Report{Status: StatusAccepted}, ActionReject, "", actionInstant)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, _, err = Transition(Report{Status: StatusPending}, ActionResolve, "", actionInstant)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestParseAction(t *testing.T) {
	assert.Equal(t, ActionAccept, ParseAction(" Accept "))
	assert.Equal(t, ActionAssign, ParseAction("ASSIGN"))
}
