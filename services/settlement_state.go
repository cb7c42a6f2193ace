package services

import (
	"github.com/dailyudhari/udhari-backend/utils"
)

// SettlementState tracks the lifecycle of one settlement:
// PENDING -> KEY_GENERATED -> SETTLED, unidirectional. SETTLED is terminal.
type SettlementState struct {
	Status string
	Key    string
}

// NewSettlementState returns a state machine in the initial PENDING status
func NewSettlementState() *SettlementState {
	return &SettlementState{Status: utils.SettlementPending}
}

// RestoreSettlementState rebuilds a state machine from persisted fields
func RestoreSettlementState(status, key string) *SettlementState {
	return &SettlementState{Status: status, Key: key}
}

// GenerateKey mints the settlement key and advances PENDING to KEY_GENERATED.
func (s *SettlementState) GenerateKey() (string, error) {
	switch s.Status {
	case utils.SettlementPending:
		s.Key = utils.GenerateSettlementKey()
		s.Status = utils.SettlementKeyGenerated
		return s.Key, nil
	case utils.SettlementKeyGenerated:
		return "", utils.NewValidationError("key already generated")
	default:
		return "", utils.NewAlreadyCompletedError()
	}
}

// Confirm transitions KEY_GENERATED to SETTLED when the supplied key matches.
// A mismatched key leaves the state unchanged so the caller can retry.
func (s *SettlementState) Confirm(key string) error {
	switch s.Status {
	case utils.SettlementPending:
		return utils.NewValidationError("key must be generated before confirmation")
	case utils.SettlementKeyGenerated:
		if s.Key != key {
			return utils.NewInvalidKeyError()
		}
		s.Status = utils.SettlementSettled
		return nil
	default:
		return utils.NewAlreadyCompletedError()
	}
}
