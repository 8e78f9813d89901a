package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Quantity
		wantErr bool
	}{
		{name: "integer", in: "50", want: 50_000},
		{name: "fractional", in: "12.5", want: 12_500},
		{name: "three digits", in: "0.125", want: 125},
		{name: "negative", in: "-30", want: -30_000},
		{name: "explicit plus", in: "+7.25", want: 7_250},
		{name: "truncates extra digits", in: "1.23456", want: 1_234},
		{name: "leading dot", in: ".5", want: 500},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuantity(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuantityString(t *testing.T) {
	assert.Equal(t, "50.000", Quantity(50_000).String())
	assert.Equal(t, "-0.125", Quantity(-125).String())
	assert.Equal(t, "0.000", Quantity(0).String())
}

func TestQuantityJSONRoundTrip(t *testing.T) {
	type payload struct {
		Change Quantity `json:"change"`
	}

	data, err := json.Marshal(payload{Change: Quantity(-30_500)})
	require.NoError(t, err)
	assert.Equal(t, `{"change":-30.500}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"change":"12.5"}`), &decoded))
	assert.Equal(t, Quantity(12_500), decoded.Change)

	require.NoError(t, json.Unmarshal([]byte(`{"change":12.5}`), &decoded))
	assert.Equal(t, Quantity(12_500), decoded.Change)
}

func TestQuantityDecimal(t *testing.T) {
	v := Quantity(20_000).Decimal().Mul(MustMoney("9.99"))
	assert.Equal(t, "199.8", v.String())
}
