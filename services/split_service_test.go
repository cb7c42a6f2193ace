package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/utils"
)

func TestSplitService_EqualSplit_EvenDivision(t *testing.T) {
	service := NewSplitService()

	splits, err := service.CalculateSplits(utils.SplitTypeEqual, 100, []int64{1, 2, 3, 4}, nil)

	assert.NoError(t, err)
	assert.Len(t, splits, 4)
	for _, split := range splits {
		assert.Equal(t, 25.0, split.Amount)
	}
}

func TestSplitService_EqualSplit_ResidualCentsGoToFirstParticipant(t *testing.T) {
	service := NewSplitService()

	// 100 / 3 = 33.33 each, leaving 0.01 unassigned
	splits, err := service.CalculateSplits(utils.SplitTypeEqual, 100, []int64{1, 2, 3}, nil)

	assert.NoError(t, err)
	assert.Len(t, splits, 3)
	assert.Equal(t, 33.34, splits[0].Amount)
	assert.Equal(t, 33.33, splits[1].Amount)
	assert.Equal(t, 33.33, splits[2].Amount)

	var total float64
	for _, split := range splits {
		total += split.Amount
	}
	assert.Equal(t, 100.0, utils.Round(total))
}

func TestSplitService_EqualSplit_NegativeResidual(t *testing.T) {
	service := NewSplitService()

	// 200 / 3 = 66.67 each, which overshoots by 0.01
	splits, err := service.CalculateSplits(utils.SplitTypeEqual, 200, []int64{1, 2, 3}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 66.66, splits[0].Amount)
	assert.Equal(t, 66.67, splits[1].Amount)
	assert.Equal(t, 66.67, splits[2].Amount)
}

func TestSplitService_EqualSplit_NoParticipants(t *testing.T) {
	service := NewSplitService()

	splits, err := service.CalculateSplits(utils.SplitTypeEqual, 100, []int64{}, nil)

	assert.NoError(t, err)
	assert.Empty(t, splits)
}

func TestSplitService_ExactSplit_Valid(t *testing.T) {
	service := NewSplitService()

	splits, err := service.CalculateSplits(utils.SplitTypeExact, 100, []int64{1, 2},
		&models.SplitOptions{Amounts: []float64{60, 40}})

	assert.NoError(t, err)
	assert.Len(t, splits, 2)
	assert.Equal(t, int64(1), splits[0].UserID)
	assert.Equal(t, 60.0, splits[0].Amount)
	assert.Equal(t, int64(2), splits[1].UserID)
	assert.Equal(t, 40.0, splits[1].Amount)
}

func TestSplitService_ExactSplit_SumMismatchRejected(t *testing.T) {
	service := NewSplitService()

	_, err := service.CalculateSplits(utils.SplitTypeExact, 100, []int64{1, 2},
		&models.SplitOptions{Amounts: []float64{60, 50}})

	assert.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
}

func TestSplitService_ExactSplit_LengthMismatchRejected(t *testing.T) {
	service := NewSplitService()

	_, err := service.CalculateSplits(utils.SplitTypeExact, 100, []int64{1, 2, 3},
		&models.SplitOptions{Amounts: []float64{60, 40}})

	assert.Error(t, err)
}

func TestSplitService_ExactSplit_MissingOptionsRejected(t *testing.T) {
	service := NewSplitService()

	_, err := service.CalculateSplits(utils.SplitTypeExact, 100, []int64{1, 2}, nil)

	assert.Error(t, err)
}

func TestSplitService_PercentSplit_Valid(t *testing.T) {
	service := NewSplitService()

	splits, err := service.CalculateSplits(utils.SplitTypePercent, 200, []int64{1, 2, 3},
		&models.SplitOptions{Percentages: []float64{50, 30, 20}})

	assert.NoError(t, err)
	assert.Equal(t, 100.0, splits[0].Amount)
	assert.Equal(t, 60.0, splits[1].Amount)
	assert.Equal(t, 40.0, splits[2].Amount)
}

func TestSplitService_PercentSplit_MustSumToHundred(t *testing.T) {
	service := NewSplitService()

	_, err := service.CalculateSplits(utils.SplitTypePercent, 100, []int64{1, 2},
		&models.SplitOptions{Percentages: []float64{50, 49}})
	assert.Error(t, err)

	_, err = service.CalculateSplits(utils.SplitTypePercent, 100, []int64{1, 2},
		&models.SplitOptions{Percentages: []float64{50, 51}})
	assert.Error(t, err)
}

func TestSplitService_PercentSplit_LengthMismatchRejected(t *testing.T) {
	service := NewSplitService()

	_, err := service.CalculateSplits(utils.SplitTypePercent, 100, []int64{1, 2, 3},
		&models.SplitOptions{Percentages: []float64{50, 50}})

	assert.Error(t, err)
}

func TestSplitService_UnknownSplitTypeRejected(t *testing.T) {
	service := NewSplitService()

	_, err := service.CalculateSplits("SHARES", 100, []int64{1, 2}, nil)

	assert.Error(t, err)
}
