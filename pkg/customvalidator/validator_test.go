package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Status string `validate:"asset_status"`
	Date   string `validate:"iso_date"`
	Cost   string `validate:"money"`
	Code   string `validate:"ref_code"`
}

func TestRegisterCustomValidations(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))

	valid := sample{Status: "Under Repair", Date: "2024-03-01", Cost: "Rp 1,500,000", Code: "ABC"}
	assert.NoError(t, v.Struct(valid))

	assert.NoError(t, v.Struct(sample{Status: "Active"}), "empty optional fields pass")

	cases := map[string]sample{
		"status": {Status: "Lost"},
		"date":   {Status: "Active", Date: "01/03/2024"},
		"cost":   {Status: "Active", Cost: "-10"},
		"code":   {Status: "Active", Code: "A-1"},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, v.Struct(s))
		})
	}
}
