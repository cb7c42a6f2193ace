package services

import (
	"database/sql"
	"log/slog"

	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/repository"
	"github.com/dailyudhari/udhari-backend/utils"
)

// settlementStore is the slice of the settlement repository this service uses
type settlementStore interface {
	Create(q repository.Querier, payerID, payeeID int64, amount float64) (int64, error)
	SetKey(q repository.Querier, id int64, key, status string) error
	GetForUpdate(q repository.Querier, id int64) (*models.Settlement, error)
	UpdateStatus(q repository.Querier, id int64, status string) error
}

// memberKeyStore resolves and rotates per-member group settlement keys
type memberKeyStore interface {
	FindPayeeKeyGroup(q repository.Querier, payeeID int64, key string, payerID int64) (int64, error)
	RotateMemberKey(q repository.Querier, groupID, userID int64) (string, error)
}

type userFinder interface {
	FindByID(id int64) (*models.User, error)
}

// SettlementService runs the settlement lifecycle: initiation with key
// generation, and key-authorized confirmation with single-use rotation.
type SettlementService struct {
	begin       func() (repository.Tx, error)
	settlements settlementStore
	memberKeys  memberKeyStore
	users       userFinder
}

// NewSettlementService creates a new settlement service
func NewSettlementService(settlementRepo *repository.SettlementRepository, groupRepo *repository.GroupRepository, userRepo *repository.UserRepository) *SettlementService {
	return &SettlementService{
		begin: func() (repository.Tx, error) {
			return settlementRepo.DB.Begin()
		},
		settlements: settlementRepo,
		memberKeys:  groupRepo,
		users:       userRepo,
	}
}

// InitiateSettlement records a settlement from payer to payee and advances it
// straight to KEY_GENERATED, in one transaction so a failed key write never
// strands a keyless PENDING row. The returned key is a handshake token for the
// payer; confirmation authority rests with the payee's group key.
func (s *SettlementService) InitiateSettlement(payerID, payeeID int64, amount float64) (*models.InitiateSettlementResponse, error) {
	if err := utils.ValidatePositive(amount, "amount"); err != nil {
		return nil, err
	}
	if payerID == payeeID {
		return nil, utils.NewValidationError("cannot settle with yourself")
	}

	payee, err := s.users.FindByID(payeeID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if payee == nil {
		return nil, utils.NewNotFoundError("Payee")
	}

	tx, err := s.begin()
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	defer tx.Rollback()

	id, err := s.settlements.Create(tx, payerID, payeeID, amount)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	state := NewSettlementState()
	key, err := state.GenerateKey()
	if err != nil {
		return nil, err
	}

	if err := s.settlements.SetKey(tx, id, key, state.Status); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	if err := tx.Commit(); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	slog.Info("settlement initiated", "settlement_id", id, "payer_id", payerID, "payee_id", payeeID)

	return &models.InitiateSettlementResponse{
		SettlementID: id,
		Key:          key,
		Message:      "Settlement initiated. Ask the payee for their settlement key to confirm.",
	}, nil
}

// ConfirmSettlement settles a settlement. The supplied key must match the
// payee's current settlement key in a group shared with the payer; the stored
// handshake key alone does not authorize. Status read, key check, transition
// and key rotation run in one transaction so concurrent confirmations cannot
// both succeed and a failed rotation never leaves the settlement SETTLED.
func (s *SettlementService) ConfirmSettlement(settlementID int64, key string) error {
	tx, err := s.begin()
	if err != nil {
		return utils.NewInternalError(utils.ErrFailedToStore)
	}
	defer tx.Rollback()

	settlement, err := s.settlements.GetForUpdate(tx, settlementID)
	if err != nil {
		return utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if settlement == nil {
		return utils.NewNotFoundError("Settlement")
	}
	if settlement.Status == utils.SettlementSettled {
		return utils.NewAlreadyCompletedError()
	}

	// Authorization: the key must be the payee's current group settlement key
	// for some group both parties share, not merely the token minted at
	// initiation.
	groupID, err := s.memberKeys.FindPayeeKeyGroup(tx, settlement.PayeeID, key, settlement.PayerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return utils.NewInvalidKeyError()
		}
		return utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	state := RestoreSettlementState(settlement.Status, settlement.SettlementKey)
	if err := state.Confirm(settlement.SettlementKey); err != nil {
		return err
	}

	if err := s.settlements.UpdateStatus(tx, settlementID, state.Status); err != nil {
		return utils.NewInternalError(utils.ErrFailedToStore)
	}

	// Single-use enforcement: the key that just confirmed can never confirm
	// again.
	if _, err := s.memberKeys.RotateMemberKey(tx, groupID, settlement.PayeeID); err != nil {
		return utils.NewInternalError(utils.ErrFailedToStore)
	}

	if err := tx.Commit(); err != nil {
		return utils.NewInternalError(utils.ErrFailedToStore)
	}

	slog.Info("settlement confirmed", "settlement_id", settlementID, "group_id", groupID)
	return nil
}
