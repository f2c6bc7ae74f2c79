// AngelaMos | 2026
// transition.go

package request

import (
	"github.com/carterperez-dev/asset-management/internal/core"
)

type Actor int

const (
	ActorHR Actor = iota + 1
	ActorRequester
)

func (a Actor) String() string {
	switch a {
	case ActorHR:
		return "hr"
	case ActorRequester:
		return "requester"
	default:
		return "unknown"
	}
}

var ErrInvalidTransition = core.ConflictError(
	"invalid_transition",
	"this status change is not allowed",
)

// transitions lists, per actor, the statuses reachable from each status.
var transitions = map[Actor]map[string][]string{
	ActorHR: {
		StatusPending: {StatusApprove, StatusReject},
	},
	ActorRequester: {
		StatusPending: {StatusCancel},
		StatusApprove: {StatusReturn},
	},
}

// CanTransition reports whether actor may move a request from one status
// to another. Only returnable assets can be returned.
func CanTransition(actor Actor, from, to string, returnable bool) bool {
	if to == StatusReturn && !returnable {
		return false
	}
	for _, next := range transitions[actor][from] {
		if next == to {
			return true
		}
	}
	return false
}
