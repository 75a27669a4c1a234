package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveThreshold_Precedence(t *testing.T) {
	defaults := DefaultThresholds()
	configs := map[string]int{
		"invoice:TD01": 30,
		"invoice":      20,
		"general:DURC": 3,
	}

	cases := []struct {
		name       string
		kind       DocKind
		typeCode   string
		configs    map[string]int
		wantDays   int
		wantSource ThresholdSource
	}{
		{"type specific wins", DocInvoice, "TD01", configs, 30, ThresholdFromType},
		{"type code lowercase still matches", DocInvoice, "td01", configs, 30, ThresholdFromType},
		{"category when type unknown", DocInvoice, "TD04", configs, 20, ThresholdFromCategory},
		{"category when no type code", DocInvoice, "", configs, 20, ThresholdFromCategory},
		{"general type specific", DocGeneral, "DURC", configs, 3, ThresholdFromType},
		{"general literal default", DocGeneral, "VISURA", configs, 7, ThresholdFromDefault},
		{"invoice literal default", DocInvoice, "TD01", map[string]int{}, 15, ThresholdFromDefault},
		{"zero is a valid config", DocGeneral, "", map[string]int{"general": 0}, 0, ThresholdFromCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days, src := ResolveThreshold(tc.configs, tc.kind, tc.typeCode, defaults)
			assert.Equal(t, tc.wantDays, days)
			assert.Equal(t, tc.wantSource, src)
		})
	}
}

func TestResolveThreshold_OverriddenDefaults(t *testing.T) {
	days, src := ResolveThreshold(nil, DocGeneral, "", ThresholdDefaults{General: 10, Invoice: 40})
	assert.Equal(t, 10, days)
	assert.Equal(t, ThresholdFromDefault, src)
}

func TestNormalizeConfigKey(t *testing.T) {
	key, err := NormalizeConfigKey(" Invoice:td01 ")
	require.NoError(t, err)
	assert.Equal(t, "invoice:TD01", key)

	key, err = NormalizeConfigKey("general")
	require.NoError(t, err)
	assert.Equal(t, "general", key)

	_, err = NormalizeConfigKey("receipt")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NormalizeConfigKey("general:")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeadlineConfig_Validate(t *testing.T) {
	c := &DeadlineConfig{Key: "general", DaysBefore: -1}
	assert.ErrorIs(t, c.Validate(), ErrValidation)

	c = &DeadlineConfig{Key: "INVOICE", DaysBefore: 0}
	require.NoError(t, c.Validate())
	assert.Equal(t, "invoice", c.Key)
}

func TestDateOnly(t *testing.T) {
	rome := time.FixedZone("CET", 3600)
	got := DateOnly(time.Date(2026, 1, 31, 23, 59, 0, 0, rome))
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), got)
}
