package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRequestTransition(t *testing.T) {
	cases := []struct {
		from, to RequestStatus
		ok       bool
	}{
		{RequestStatusOpen, RequestStatusInProgress, true},
		{RequestStatusInProgress, RequestStatusCompleted, true},
		{RequestStatusOpen, RequestStatusCompleted, false},
		{RequestStatusInProgress, RequestStatusOpen, false},
		{RequestStatusCompleted, RequestStatusInProgress, false},
		{RequestStatusCompleted, RequestStatusOpen, false},
		{RequestStatusOpen, RequestStatusOpen, false},
		{RequestStatusCompleted, RequestStatusCompleted, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, ValidRequestTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
