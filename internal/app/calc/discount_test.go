package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"compute", CategoryCompute},
		{"Compute", CategoryCompute},
		{"STORAGE", CategoryStorage},
		{"network", CategoryNetwork},
		{"licence", CategoryLicence},
		{"gpu", CategoryDefault},
		{"", CategoryDefault},
		{"default", CategoryDefault},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveCategory(tt.raw), "raw=%q", tt.raw)
	}
}

func TestCommitmentDiscountPercent(t *testing.T) {
	// скидка есть только у compute
	assert.Equal(t, 30.0, CommitmentDiscountPercent("compute", PeriodOneMonth))
	assert.Equal(t, 40.0, CommitmentDiscountPercent("compute", PeriodOneYear))
	assert.Equal(t, 50.0, CommitmentDiscountPercent("compute", PeriodThreeYears))

	// none и неизвестный период всегда 0
	assert.Equal(t, 0.0, CommitmentDiscountPercent("compute", PeriodNone))
	assert.Equal(t, 0.0, CommitmentDiscountPercent("compute", ""))
	assert.Equal(t, 0.0, CommitmentDiscountPercent("compute", "5-years"))

	// остальные категории без скидок при любом периоде
	for _, category := range []string{"storage", "network", "licence", "unknown", ""} {
		for _, period := range []string{PeriodOneMonth, PeriodOneYear, PeriodThreeYears} {
			assert.Equal(t, 0.0, CommitmentDiscountPercent(category, period),
				"category=%q period=%q", category, period)
		}
	}
}
