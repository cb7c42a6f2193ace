package services

import (
	"log/slog"

	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/repository"
	"github.com/dailyudhari/udhari-backend/utils"
)

// ExpenseService binds split calculation to expense persistence
type ExpenseService struct {
	expenseRepo  *repository.ExpenseRepository
	groupRepo    *repository.GroupRepository
	splitService *SplitService
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo *repository.ExpenseRepository, groupRepo *repository.GroupRepository, splitService *SplitService) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		groupRepo:    groupRepo,
		splitService: splitService,
	}
}

// AddExpense creates an expense, computes its splits and persists both
// atomically. When no participant list is supplied the group's membership is
// used; without a group either, the expense is a self-split on the payer.
func (s *ExpenseService) AddExpense(payerID int64, req *models.AddExpenseRequest) (*models.AddExpenseResponse, error) {
	if err := utils.ValidateRequired(req.Description, "description"); err != nil {
		return nil, err
	}
	if err := utils.ValidatePositive(req.Amount, "amount"); err != nil {
		return nil, err
	}

	userIDs := req.UserIDs
	if len(userIDs) == 0 && req.GroupID != nil {
		group, err := s.groupRepo.FindByID(*req.GroupID)
		if err != nil {
			return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
		}
		if group == nil {
			return nil, utils.NewNotFoundError("Group")
		}
		members, err := s.groupRepo.GetMembers(*req.GroupID)
		if err != nil {
			return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
		}
		for _, m := range members {
			userIDs = append(userIDs, m.ID)
		}
	}
	if len(userIDs) == 0 {
		// Self-split: the payer both pays and owes the whole amount.
		userIDs = []int64{payerID}
	}

	expense := &models.Expense{
		Description: req.Description,
		Amount:      utils.Round(req.Amount),
		PayerID:     payerID,
		GroupID:     req.GroupID,
		SplitType:   req.SplitType,
	}

	splits, err := s.splitService.CalculateSplits(req.SplitType, expense.Amount, userIDs, req.Options)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.StoreExpense(expense, splits); err != nil {
		slog.Error("failed to store expense", "payer_id", payerID, "error", err)
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return &models.AddExpenseResponse{Expense: expense, Splits: splits}, nil
}

// GetExpenses returns the user's recent expense entries, optionally scoped
// to one group.
func (s *ExpenseService) GetExpenses(userID int64, groupID *int64) ([]models.ExpenseEntry, error) {
	entries, err := s.expenseRepo.ListByUser(userID, groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if entries == nil {
		entries = []models.ExpenseEntry{}
	}
	return entries, nil
}
