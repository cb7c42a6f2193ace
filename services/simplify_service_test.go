package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/repository"
)

func threeMembers() []models.GroupMember {
	return []models.GroupMember{
		{ID: 1, Name: "Asha"},
		{ID: 2, Name: "Bharat"},
		{ID: 3, Name: "Chitra"},
	}
}

func TestComputeNetBalances_PayerGainsParticipantsLose(t *testing.T) {
	members := threeMembers()

	// Asha paid 300 split equally three ways; her own share is a no-op
	splits := []repository.GroupSplit{
		{PayerID: 1, UserID: 1, Amount: 100},
		{PayerID: 1, UserID: 2, Amount: 100},
		{PayerID: 1, UserID: 3, Amount: 100},
	}

	net := computeNetBalances(members, splits, nil)

	assert.Equal(t, 200.0, net[1])
	assert.Equal(t, -100.0, net[2])
	assert.Equal(t, -100.0, net[3])
}

func TestComputeNetBalances_SettledSettlementClearsDebt(t *testing.T) {
	members := threeMembers()
	splits := []repository.GroupSplit{
		{PayerID: 1, UserID: 2, Amount: 100},
		{PayerID: 1, UserID: 3, Amount: 100},
	}
	settlements := []repository.GroupSettlement{
		{PayerID: 2, PayeeID: 1, Amount: 100},
	}

	net := computeNetBalances(members, splits, settlements)

	assert.Equal(t, 100.0, net[1])
	assert.Equal(t, 0.0, net[2])
	assert.Equal(t, -100.0, net[3])
}

func TestMatchTransfers_SingleCreditorManyDebtors(t *testing.T) {
	members := threeMembers()
	net := map[int64]float64{1: 200, 2: -100, 3: -100}

	transfers := matchTransfers(members, net)

	require.Len(t, transfers, 2)
	assert.Equal(t, int64(2), transfers[0].From.ID)
	assert.Equal(t, int64(1), transfers[0].To.ID)
	assert.Equal(t, 100.0, transfers[0].Amount)
	assert.Equal(t, int64(3), transfers[1].From.ID)
	assert.Equal(t, 100.0, transfers[1].Amount)
}

func TestMatchTransfers_ChainCollapsesToDirectTransfer(t *testing.T) {
	members := threeMembers()

	// Asha is owed 50 by Bharat, Bharat is owed 50 by Chitra.
	// The middle hop drops out and Chitra pays Asha directly.
	net := map[int64]float64{1: 50, 2: 0, 3: -50}

	transfers := matchTransfers(members, net)

	require.Len(t, transfers, 1)
	assert.Equal(t, int64(3), transfers[0].From.ID)
	assert.Equal(t, int64(1), transfers[0].To.ID)
	assert.Equal(t, 50.0, transfers[0].Amount)
}

func TestMatchTransfers_NearZeroBalancesIgnored(t *testing.T) {
	members := threeMembers()
	net := map[int64]float64{1: 0.005, 2: -0.005, 3: 0}

	transfers := matchTransfers(members, net)

	assert.NotNil(t, transfers)
	assert.Empty(t, transfers)
}

func TestMatchTransfers_AtMostMembersMinusOneEdges(t *testing.T) {
	members := []models.GroupMember{
		{ID: 1, Name: "Asha"},
		{ID: 2, Name: "Bharat"},
		{ID: 3, Name: "Chitra"},
		{ID: 4, Name: "Dev"},
		{ID: 5, Name: "Esha"},
	}
	net := map[int64]float64{1: 120, 2: 30, 3: -50, 4: -60, 5: -40}

	transfers := matchTransfers(members, net)

	assert.LessOrEqual(t, len(transfers), len(members)-1)

	// every transfer must fully drain back to zero
	residual := map[int64]float64{1: 120, 2: 30, 3: -50, 4: -60, 5: -40}
	for _, transfer := range transfers {
		residual[transfer.From.ID] += transfer.Amount
		residual[transfer.To.ID] -= transfer.Amount
	}
	for id, balance := range residual {
		assert.InDelta(t, 0, balance, 0.011, "member %d should end balanced", id)
	}
}

func TestMatchTransfers_LargestPairsMatchFirst(t *testing.T) {
	members := []models.GroupMember{
		{ID: 1, Name: "Asha"},
		{ID: 2, Name: "Bharat"},
		{ID: 3, Name: "Chitra"},
		{ID: 4, Name: "Dev"},
	}
	net := map[int64]float64{1: 90, 2: 10, 3: -70, 4: -30}

	transfers := matchTransfers(members, net)

	// biggest debtor (Chitra, 70) pays the biggest creditor (Asha, 90) first
	require.NotEmpty(t, transfers)
	assert.Equal(t, int64(3), transfers[0].From.ID)
	assert.Equal(t, int64(1), transfers[0].To.ID)
	assert.Equal(t, 70.0, transfers[0].Amount)
}

func TestMatchTransfers_Deterministic(t *testing.T) {
	members := threeMembers()
	net := map[int64]float64{1: 100, 2: -50, 3: -50}

	first := matchTransfers(members, net)
	second := matchTransfers(members, net)

	assert.Equal(t, first, second)
}
