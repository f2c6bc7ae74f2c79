// AngelaMos | 2026
// transition_test.go

package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	all := []string{StatusPending, StatusApprove, StatusReject, StatusReturn, StatusCancel}

	allowed := map[Actor]map[string]string{
		ActorHR:        {StatusPending + ">" + StatusApprove: "", StatusPending + ">" + StatusReject: ""},
		ActorRequester: {StatusPending + ">" + StatusCancel: "", StatusApprove + ">" + StatusReturn: ""},
	}

	for actor, edges := range allowed {
		for _, from := range all {
			for _, to := range all {
				_, want := edges[from+">"+to]
				assert.Equal(t, want, CanTransition(actor, from, to, true),
					"%s %s -> %s", actor, from, to)
			}
		}
	}
}

func TestReturnRequiresReturnableAsset(t *testing.T) {
	assert.True(t, CanTransition(ActorRequester, StatusApprove, StatusReturn, true))
	assert.False(t, CanTransition(ActorRequester, StatusApprove, StatusReturn, false))
	assert.False(t, CanTransition(ActorHR, StatusApprove, StatusReturn, true))
}

func TestUnknownActorHasNoTransitions(t *testing.T) {
	assert.False(t, CanTransition(Actor(0), StatusPending, StatusApprove, true))
	assert.Equal(t, "unknown", Actor(0).String())
}
