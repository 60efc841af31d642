package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountsMarshalAsNumbers(t *testing.T) {
	e := Expense{ID: "1", Amount: decimal.RequireFromString("350.5"), Category: CategoryFood, Date: "2025-03-12"}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amount":350.5`)

	var back Expense
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, e.Amount.Equal(back.Amount))
}
