package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalNumber(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"id":"a","amount":42.5}`), &tx)
	require.NoError(t, err)

	assert.Equal(t, 42.5, tx.Amount.Float64())
}

func TestAmount_UnmarshalNumericString(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"id":"a","amount":"19.99"}`), &tx)
	require.NoError(t, err)

	assert.Equal(t, 19.99, tx.Amount.Float64())
}

func TestAmount_NonNumericCoercesToZero(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"id":"a","amount":"not-a-number"}`), &tx)
	require.NoError(t, err)

	assert.True(t, tx.Amount.Decimal().IsZero())
	assert.Equal(t, float64(0), tx.Amount.Float64())
}

func TestAmount_NullCoercesToZero(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"id":"a","amount":null}`), &tx)
	require.NoError(t, err)

	assert.True(t, tx.Amount.Decimal().IsZero())
}

func TestAmount_MarshalNumeric(t *testing.T) {
	data, err := json.Marshal(Amount("12.30"))
	require.NoError(t, err)
	assert.Equal(t, "12.3", string(data))
}

func TestAmount_MarshalNonNumeric(t *testing.T) {
	data, err := json.Marshal(Amount("oops"))
	require.NoError(t, err)
	assert.Equal(t, `"oops"`, string(data))
}

func TestTransactionStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusSuccess.Terminal())
	assert.True(t, StatusFailed.Terminal())
}

func TestCurrency_Valid(t *testing.T) {
	assert.True(t, CurrencyEUR.Valid())
	assert.True(t, CurrencyTRY.Valid())
	assert.False(t, Currency("XXX").Valid())
	assert.Len(t, Currencies, 14)
}
