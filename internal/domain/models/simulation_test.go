package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Optional `json:"a"`
		B Optional `json:"b"`
	}{A: Some(1.5), B: None()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.5,"b":null}`, string(data))

	var decoded struct {
		A Optional `json:"a"`
		B Optional `json:"b"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Some(1.5), decoded.A)
	assert.False(t, decoded.B.Valid)
}

func TestRawInputsFromValues(t *testing.T) {
	raw := RawInputs{
		StandardFeedCost: "1,00",
		CowCount:         "100",
		MilkPrice:        "2.00",
	}

	values := raw.Values()
	assert.Len(t, values, len(InputFields))
	assert.Equal(t, raw, RawInputsFromValues(values))
	assert.Equal(t, RawInputs{}, RawInputsFromValues(map[string]string{"unknown": "1"}))
}

func TestRawInputs_UnmarshalJSON(t *testing.T) {
	var raw RawInputs
	err := json.Unmarshal([]byte(`{"milk_price": 2.0, "cow_count": "100", "fat_premium": null, "unknown": 1e3}`), &raw)
	require.NoError(t, err)

	assert.Equal(t, "2.0", raw.MilkPrice)
	assert.Equal(t, "100", raw.CowCount)
	assert.Empty(t, raw.FatPremium)
	assert.Empty(t, raw.StandardFeedCost)

	for _, body := range []string{`{"milk_price": true}`, `{"milk_price": {"v": 1}}`, `[1, 2]`} {
		assert.Error(t, json.Unmarshal([]byte(body), &raw), body)
	}
}
