package services

import (
	"fmt"

	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/utils"
)

// SplitService turns a total amount and a participant list into per-person
// owed amounts. The variant set is closed, so dispatch is a plain switch.
type SplitService struct{}

// NewSplitService creates a new split service
func NewSplitService() *SplitService {
	return &SplitService{}
}

// CalculateSplits computes the per-participant amounts for the given split type.
func (s *SplitService) CalculateSplits(splitType string, amount float64, userIDs []int64, options *models.SplitOptions) ([]models.Split, error) {
	switch splitType {
	case utils.SplitTypeEqual:
		return s.equalSplits(amount, userIDs), nil
	case utils.SplitTypeExact:
		return s.exactSplits(amount, userIDs, options)
	case utils.SplitTypePercent:
		return s.percentSplits(amount, userIDs, options)
	default:
		return nil, utils.NewValidationError(fmt.Sprintf("unknown split type: %s", splitType))
	}
}

// equalSplits divides the amount evenly to 2 decimal places. Any residual
// cents from rounding land on the first participant so the splits always sum
// exactly to the total. An empty participant list yields an empty result;
// callers guard against zero-participant expenses upstream.
func (s *SplitService) equalSplits(amount float64, userIDs []int64) []models.Split {
	if len(userIDs) == 0 {
		return []models.Split{}
	}

	share := utils.Round(amount / float64(len(userIDs)))
	splits := make([]models.Split, len(userIDs))
	var total float64
	for i, userID := range userIDs {
		splits[i] = models.Split{UserID: userID, Amount: share}
		total += share
	}

	if diff := utils.Round(amount - total); diff != 0 {
		splits[0].Amount = utils.Round(splits[0].Amount + diff)
	}

	return splits
}

// exactSplits assigns the caller-supplied amounts, one per participant in
// order. The amounts must sum exactly to the expense total.
func (s *SplitService) exactSplits(amount float64, userIDs []int64, options *models.SplitOptions) ([]models.Split, error) {
	if options == nil || len(options.Amounts) != len(userIDs) {
		return nil, utils.NewValidationError("invalid split amounts provided")
	}

	var sum float64
	for _, a := range options.Amounts {
		sum += a
	}
	if utils.Round(sum) != amount {
		return nil, utils.NewValidationError("split amounts do not sum up to total amount")
	}

	splits := make([]models.Split, len(userIDs))
	for i, userID := range userIDs {
		splits[i] = models.Split{UserID: userID, Amount: options.Amounts[i]}
	}
	return splits, nil
}

// percentSplits assigns each participant their percentage of the total,
// rounded to 2 decimals. Percentages must sum to exactly 100.
func (s *SplitService) percentSplits(amount float64, userIDs []int64, options *models.SplitOptions) ([]models.Split, error) {
	if options == nil || len(options.Percentages) != len(userIDs) {
		return nil, utils.NewValidationError("invalid split percentages provided")
	}

	var sum float64
	for _, p := range options.Percentages {
		sum += p
	}
	if sum != 100 {
		return nil, utils.NewValidationError("split percentages do not sum up to 100")
	}

	splits := make([]models.Split, len(userIDs))
	for i, userID := range userIDs {
		splits[i] = models.Split{
			UserID: userID,
			Amount: utils.Round(amount * options.Percentages[i] / 100),
		}
	}
	return splits, nil
}
