package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchpay/switchpay-go/internal/domain"
	"github.com/switchpay/switchpay-go/pkg/logger"
)

type fixedOutcome struct {
	status domain.TransactionStatus
}

func (f fixedOutcome) Pick() domain.TransactionStatus { return f.status }

func TestSimulate_PostsChosenStatus(t *testing.T) {
	gateway := &fakeGateway{}
	simulator := NewWebhookSimulatorWithOutcomes(gateway, fixedOutcome{domain.StatusSuccess}, logger.NewNop())

	ack, err := simulator.Simulate(context.Background(), "tx-1")
	require.NoError(t, err)

	assert.Equal(t, "tx-1", ack.TxID)
	assert.Equal(t, domain.StatusSuccess, ack.Status)

	require.Len(t, gateway.webhookUpdates, 1)
	assert.Equal(t, domain.StatusUpdate{TxID: "tx-1", Status: domain.StatusSuccess}, gateway.webhookUpdates[0])
}

func TestSimulate_FailureLeavesNoTrace(t *testing.T) {
	gateway := &fakeGateway{webhookErr: errors.New("webhook endpoint down")}
	simulator := NewWebhookSimulatorWithOutcomes(gateway, fixedOutcome{domain.StatusFailed}, logger.NewNop())

	ack, err := simulator.Simulate(context.Background(), "tx-1")
	require.Error(t, err)
	assert.Nil(t, ack)
}

func TestRandomOutcome_RoughlyEvenSplit(t *testing.T) {
	outcomes := NewRandomOutcome(1)

	successes := 0
	const draws = 1000
	for i := 0; i < draws; i++ {
		if outcomes.Pick() == domain.StatusSuccess {
			successes++
		}
	}

	// A fair coin lands in this band with overwhelming probability.
	assert.Greater(t, successes, 420)
	assert.Less(t, successes, 580)
}

func TestRandomOutcome_OnlyTerminalStatuses(t *testing.T) {
	outcomes := NewRandomOutcome(7)

	for i := 0; i < 100; i++ {
		status := outcomes.Pick()
		assert.True(t, status.Terminal())
	}
}
