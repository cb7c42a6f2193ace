package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyudhari/udhari-backend/utils"
)

func TestSettlementState_HappyPath(t *testing.T) {
	state := NewSettlementState()
	assert.Equal(t, utils.SettlementPending, state.Status)

	key, err := state.GenerateKey()
	require.NoError(t, err)
	assert.Len(t, key, utils.SettlementKeyLength)
	assert.Equal(t, utils.SettlementKeyGenerated, state.Status)

	err = state.Confirm(key)
	require.NoError(t, err)
	assert.Equal(t, utils.SettlementSettled, state.Status)
}

func TestSettlementState_GenerateKeyTwiceRejected(t *testing.T) {
	state := NewSettlementState()

	_, err := state.GenerateKey()
	require.NoError(t, err)

	_, err = state.GenerateKey()
	assert.Error(t, err)
	assert.Equal(t, utils.SettlementKeyGenerated, state.Status)
}

func TestSettlementState_ConfirmBeforeKeyRejected(t *testing.T) {
	state := NewSettlementState()

	err := state.Confirm("ABCD1234")
	assert.Error(t, err)
	assert.Equal(t, utils.SettlementPending, state.Status)
}

func TestSettlementState_WrongKeyLeavesStateRetryable(t *testing.T) {
	state := NewSettlementState()
	key, err := state.GenerateKey()
	require.NoError(t, err)

	err = state.Confirm("WRONGKEY")
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Code)
	assert.Equal(t, utils.SettlementKeyGenerated, state.Status)

	// retry with the right key still works
	err = state.Confirm(key)
	assert.NoError(t, err)
	assert.Equal(t, utils.SettlementSettled, state.Status)
}

func TestSettlementState_SettledIsTerminal(t *testing.T) {
	state := RestoreSettlementState(utils.SettlementSettled, "ABCD1234")

	err := state.Confirm("ABCD1234")
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Code)

	_, err = state.GenerateKey()
	assert.Error(t, err)
	assert.Equal(t, utils.SettlementSettled, state.Status)
}

func TestSettlementState_RestoreFromPersistedFields(t *testing.T) {
	state := RestoreSettlementState(utils.SettlementKeyGenerated, "A1B2C3D4")

	err := state.Confirm("A1B2C3D4")
	assert.NoError(t, err)
	assert.Equal(t, utils.SettlementSettled, state.Status)
}
