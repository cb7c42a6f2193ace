package services

import (
	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/repository"
	"github.com/dailyudhari/udhari-backend/utils"
)

// BalanceService derives net balances from persisted splits and settlements.
// Balances are never stored; every read recomputes them.
type BalanceService struct {
	expenseRepo    *repository.ExpenseRepository
	settlementRepo *repository.SettlementRepository
	userRepo       *repository.UserRepository
}

// NewBalanceService creates a new balance service
func NewBalanceService(expenseRepo *repository.ExpenseRepository, settlementRepo *repository.SettlementRepository, userRepo *repository.UserRepository) *BalanceService {
	return &BalanceService{
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
		userRepo:       userRepo,
	}
}

// GetBalanceSummary computes the user's net position. groupID scopes the
// expense sums only; settled-settlement sums stay global, so a settlement
// between two users is netted against their balance regardless of which
// group the underlying expenses were in.
func (s *BalanceService) GetBalanceSummary(userID int64, groupID *int64) (*models.BalanceSummary, error) {
	owed, err := s.expenseRepo.SumOwedToUser(userID, groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	owe, err := s.expenseRepo.SumOwedByUser(userID, groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	received, err := s.settlementRepo.SumSettledReceived(userID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	paid, err := s.settlementRepo.SumSettledPaid(userID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	return summarizeBalance(owed, owe, received, paid), nil
}

// summarizeBalance folds the four sums into the summary shape. The owe/owed
// legs are floored at zero after settlement netting; the total stays signed.
func summarizeBalance(owed, owe, received, paid float64) *models.BalanceSummary {
	youAreOwed := utils.Round(owed - received)
	youOwe := utils.Round(owe - paid)

	summary := &models.BalanceSummary{
		TotalBalance: utils.Round(youAreOwed - youOwe),
	}
	if youAreOwed > 0 {
		summary.YouAreOwed = youAreOwed
	}
	if youOwe > 0 {
		summary.YouOwe = youOwe
	}
	return summary
}

// GetFriends returns one row per distinct co-member across the user's groups
// with the net balance against each.
func (s *BalanceService) GetFriends(userID int64) ([]models.FriendBalance, error) {
	friends, err := s.userRepo.GetFriends(userID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	for i := range friends {
		friends[i].Balance = utils.Round(friends[i].Balance)
	}
	return friends, nil
}
