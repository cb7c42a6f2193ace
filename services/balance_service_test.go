package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeBalance_OwedOnly(t *testing.T) {
	// paid 300 split three ways, so the other two owe 100 each
	summary := summarizeBalance(200, 0, 0, 0)

	assert.Equal(t, 200.0, summary.YouAreOwed)
	assert.Equal(t, 0.0, summary.YouOwe)
	assert.Equal(t, 200.0, summary.TotalBalance)
}

func TestSummarizeBalance_BothLegs(t *testing.T) {
	summary := summarizeBalance(200, 100, 50, 0)

	assert.Equal(t, 150.0, summary.YouAreOwed)
	assert.Equal(t, 100.0, summary.YouOwe)
	assert.Equal(t, 50.0, summary.TotalBalance)
}

func TestSummarizeBalance_SettlementsReduceWhatYouAreOwed(t *testing.T) {
	summary := summarizeBalance(100, 0, 100, 0)

	assert.Equal(t, 0.0, summary.YouAreOwed)
	assert.Equal(t, 0.0, summary.YouOwe)
	assert.Equal(t, 0.0, summary.TotalBalance)
}

func TestSummarizeBalance_OverSettledLegFlooredButTotalStaysSigned(t *testing.T) {
	// received more than owed, perhaps settling debt from another group
	summary := summarizeBalance(100, 0, 150, 0)

	assert.Equal(t, 0.0, summary.YouAreOwed)
	assert.Equal(t, -50.0, summary.TotalBalance)

	summary = summarizeBalance(0, 100, 0, 150)

	assert.Equal(t, 0.0, summary.YouOwe)
	assert.Equal(t, 50.0, summary.TotalBalance)
}

func TestSummarizeBalance_AllZero(t *testing.T) {
	summary := summarizeBalance(0, 0, 0, 0)

	assert.Equal(t, 0.0, summary.TotalBalance)
	assert.Equal(t, 0.0, summary.YouOwe)
	assert.Equal(t, 0.0, summary.YouAreOwed)
}
