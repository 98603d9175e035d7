package reports

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Action is an administrator decision on a report
type Action string

const (
	ActionAccept  Action = "accept"
	ActionReject  Action = "reject"
	ActionAssign  Action = "assign"
	ActionResolve Action = "resolve"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTeamRequired      = errors.New("team is required for assign")
)

// ParseAction accepts any casing ("Accept", "ASSIGN")
func ParseAction(s string) Action {
	return Action(strings.ToLower(strings.TrimSpace(s)))
}

// transitions lists the only legal (state, action) pairs
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionAccept: StatusAccepted,
		ActionReject: StatusRejected,
	},
	StatusAccepted: {
		ActionAssign: StatusInProgress,
	},
	StatusInProgress: {
		ActionResolve: StatusResolved,
	},
}

// Transition applies action to r at instant now. It returns the field-level
// update to persist and the report as it will look once committed; r itself
// is never modified.
func Transition(r Report, action Action, team string, now time.Time) (map[string]interface{}, Report, error) {
	from := NormalizeStatus(string(r.Status))
	to, ok := transitions[from][action]
	if !ok {
		return nil, r, fmt.Errorf("%w: cannot %s a report that is %s", ErrInvalidTransition, action, from)
	}

	team = strings.TrimSpace(team)
	if action == ActionAssign && team == "" {
		return nil, r, ErrTeamRequired
	}

	next := r
	next.Status = to
	next.UpdatedAt = now
	fields := map[string]interface{}{
		"status":    string(to),
		"updatedAt": now,
	}

	switch action {
	case ActionAssign:
		at := now
		next.Assignee = team
		next.AssignedAt = &at
		fields["assignee"] = team
		fields["assignedAt"] = now
	case ActionResolve:
		at := now
		next.ResolvedAt = &at
		fields["resolvedAt"] = now
	}

	return fields, next, nil
}

// AllowedActions lists the actions available from a status
func AllowedActions(s Status) []Action {
	var actions []Action
	for _, a := range []Action{ActionAccept, ActionReject, ActionAssign, ActionResolve} {
		if _, ok := transitions[NormalizeStatus(string(s))][a]; ok {
			actions = append(actions, a)
		}
	}
	return actions
}
