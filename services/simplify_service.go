package services

import (
	"math"
	"sort"

	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/repository"
	"github.com/dailyudhari/udhari-backend/utils"
)

// SimplifyService reduces a group's web of debts to a small set of direct
// transfers using greedy largest-debtor-vs-largest-creditor matching.
type SimplifyService struct {
	groupRepo      *repository.GroupRepository
	expenseRepo    *repository.ExpenseRepository
	settlementRepo *repository.SettlementRepository
}

// NewSimplifyService creates a new simplify service
func NewSimplifyService(groupRepo *repository.GroupRepository, expenseRepo *repository.ExpenseRepository, settlementRepo *repository.SettlementRepository) *SimplifyService {
	return &SimplifyService{
		groupRepo:      groupRepo,
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
	}
}

// memberBalance pairs a member with their remaining unsettled amount
type memberBalance struct {
	ID     int64
	Name   string
	Amount float64
}

// SimplifyDebts computes the minimal transfer set that zeroes every member's
// net balance within the group.
func (s *SimplifyService) SimplifyDebts(groupID int64) ([]models.Transfer, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if group == nil {
		return nil, utils.NewNotFoundError("Group")
	}

	members, err := s.groupRepo.GetMembers(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	splits, err := s.expenseRepo.GroupSplits(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	settlements, err := s.settlementRepo.SettledBetweenMembers(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	net := computeNetBalances(members, splits, settlements)
	return matchTransfers(members, net), nil
}

// computeNetBalances nets each member's position inside the group: a payer
// gains each non-self participant's split, the participant loses it, and a
// settled settlement inverts the effect (the payer of the settlement gains
// the amount back, the payee loses it).
func computeNetBalances(members []models.GroupMember, splits []repository.GroupSplit, settlements []repository.GroupSettlement) map[int64]float64 {
	net := make(map[int64]float64, len(members))
	for _, m := range members {
		net[m.ID] = 0
	}

	for _, split := range splits {
		if split.PayerID == split.UserID {
			continue
		}
		net[split.PayerID] += split.Amount
		net[split.UserID] -= split.Amount
	}

	for _, settlement := range settlements {
		net[settlement.PayerID] += settlement.Amount
		net[settlement.PayeeID] -= settlement.Amount
	}

	return net
}

// matchTransfers partitions members into debtors and creditors, discarding
// near-zero balances, and greedily matches the largest remaining debt against
// the largest remaining credit. The stable sort keeps the member-query order
// as the tie-break, so results are deterministic.
func matchTransfers(members []models.GroupMember, net map[int64]float64) []models.Transfer {
	var debtors, creditors []memberBalance
	for _, m := range members {
		balance := utils.Round(net[m.ID])
		if balance < -utils.BalanceEpsilon {
			debtors = append(debtors, memberBalance{ID: m.ID, Name: m.Name, Amount: math.Abs(balance)})
		} else if balance > utils.BalanceEpsilon {
			creditors = append(creditors, memberBalance{ID: m.ID, Name: m.Name, Amount: balance})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Amount > debtors[j].Amount
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].Amount > creditors[j].Amount
	})

	transfers := []models.Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		transfer := utils.Round(utils.Min(debtors[i].Amount, creditors[j].Amount))

		if transfer > utils.BalanceEpsilon {
			transfers = append(transfers, models.Transfer{
				From:   models.TransferParty{ID: debtors[i].ID, Name: debtors[i].Name},
				To:     models.TransferParty{ID: creditors[j].ID, Name: creditors[j].Name},
				Amount: transfer,
			})
		}

		debtors[i].Amount = utils.Round(debtors[i].Amount - transfer)
		creditors[j].Amount = utils.Round(creditors[j].Amount - transfer)

		if debtors[i].Amount < utils.BalanceEpsilon {
			i++
		}
		if creditors[j].Amount < utils.BalanceEpsilon {
			j++
		}
	}

	return transfers
}
