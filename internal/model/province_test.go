package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvinces(t *testing.T) {
	assert.Len(t, Provinces, 77)
	assert.True(t, IsProvince("Chiang Mai"))
	assert.True(t, IsProvince("Bangkok"))
	assert.False(t, IsProvince("chiang mai"))
	assert.False(t, IsProvince("Atlantis"))
}

func TestRegisteredProvinceTax_JSON(t *testing.T) {
	secondary := uint(4)
	reg := RegisteredProvinceTax{
		ID:                   1,
		UserID:               2,
		Name:                 "My Company",
		Email:                "test@company.com",
		MainProvinceID:       3,
		MainProvinceTax:      decimal.RequireFromString("7.5"),
		SecondaryProvinceID:  &secondary,
		SecondaryProvinceTax: decimal.NewNullDecimal(decimal.RequireFromString("5")),
	}

	raw, err := json.Marshal(reg)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 7.5, got["main_province_tax"])
	assert.Equal(t, 5.0, got["secondary_province_tax"])

	reg.SecondaryProvinceID = nil
	reg.SecondaryProvinceTax = decimal.NullDecimal{}
	raw, err = json.Marshal(reg)
	require.NoError(t, err)
	got = map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Nil(t, got["secondary_province_id"])
	assert.Nil(t, got["secondary_province_tax"])
}
