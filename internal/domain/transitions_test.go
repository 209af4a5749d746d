package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransit(t *testing.T) {
	tests := []struct {
		name string
		from CommissionStatusType
		to   CommissionStatusType
		want bool
	}{
		{name: "pending to approved", from: CommissionStatusPending, to: CommissionStatusApproved, want: true},
		{name: "pending to cancelled", from: CommissionStatusPending, to: CommissionStatusCancelled, want: true},
		{name: "pending to paid", from: CommissionStatusPending, to: CommissionStatusPaid, want: false},
		{name: "approved to paid", from: CommissionStatusApproved, to: CommissionStatusPaid, want: true},
		{name: "approved to cancelled", from: CommissionStatusApproved, to: CommissionStatusCancelled, want: true},
		{name: "approved to pending", from: CommissionStatusApproved, to: CommissionStatusPending, want: false},
		// обратное ребро реверса трансфера
		{name: "paid to approved", from: CommissionStatusPaid, to: CommissionStatusApproved, want: true},
		{name: "paid to cancelled", from: CommissionStatusPaid, to: CommissionStatusCancelled, want: false},
		{name: "paid to pending", from: CommissionStatusPaid, to: CommissionStatusPending, want: false},
		// cancelled терминальный
		{name: "cancelled to pending", from: CommissionStatusCancelled, to: CommissionStatusPending, want: false},
		{name: "cancelled to approved", from: CommissionStatusCancelled, to: CommissionStatusApproved, want: false},
		{name: "cancelled to paid", from: CommissionStatusCancelled, to: CommissionStatusPaid, want: false},
		{name: "same status", from: CommissionStatusPending, to: CommissionStatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransit(tt.from, tt.to))
		})
	}
}

func TestEnsureTransit(t *testing.T) {
	require.NoError(t, EnsureTransit(CommissionStatusPending, CommissionStatusApproved))

	err := EnsureTransit(CommissionStatusCancelled, CommissionStatusApproved)
	require.Error(t, err)

	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, CommissionStatusCancelled, transitionErr.From)
	assert.Equal(t, CommissionStatusApproved, transitionErr.To)
}
