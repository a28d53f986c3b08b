package valueobjects

import "fmt"

// FollowUpAction records which lifecycle transition, if any, a follow-up
// represents.
type FollowUpAction string

const (
	ActionNone     FollowUpAction = "no_action"
	ActionClosed   FollowUpAction = "closed"
	ActionReopened FollowUpAction = "re-opened"
	ActionSplit    FollowUpAction = "split"
)

func (a FollowUpAction) String() string {
	return string(a)
}

func (a FollowUpAction) IsValid() bool {
	switch a {
	case ActionNone, ActionClosed, ActionReopened, ActionSplit:
		return true
	}
	return false
}

func NewFollowUpAction(s string) (FollowUpAction, error) {
	a := FollowUpAction(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid follow-up action: %s", s)
	}
	return a, nil
}

type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

func (d VoteDirection) IsValid() bool {
	return d == VoteUp || d == VoteDown
}

func NewVoteDirection(s string) (VoteDirection, error) {
	d := VoteDirection(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid vote direction: %s", s)
	}
	return d, nil
}
