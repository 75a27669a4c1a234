package domain

import (
	"strings"
	"time"
)

// Literal thresholds used when no config row matches a document.
const (
	DefaultGeneralDays = 7
	DefaultInvoiceDays = 15
)

// DeadlineConfig sets how many days before its deadline a document becomes
// UPCOMING. Key is a category ("general", "invoice") or a type-specific key
// "<category>:<typeCode>".
type DeadlineConfig struct {
	Key        string
	DaysBefore int
	UpdatedAt  time.Time
}

// ThresholdDefaults holds the last-resort thresholds per category.
type ThresholdDefaults struct {
	General int
	Invoice int
}

// DefaultThresholds returns the built-in literal defaults.
func DefaultThresholds() ThresholdDefaults {
	return ThresholdDefaults{General: DefaultGeneralDays, Invoice: DefaultInvoiceDays}
}

func (d ThresholdDefaults) For(kind DocKind) int {
	if kind == DocInvoice {
		return d.Invoice
	}
	return d.General
}

// TypeConfigKey builds the type-specific config key for a document kind.
func TypeConfigKey(kind DocKind, typeCode string) string {
	return string(kind) + ":" + strings.ToUpper(strings.TrimSpace(typeCode))
}

// NormalizeConfigKey validates a config key and returns its canonical form.
func NormalizeConfigKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	category, typeCode, hasType := strings.Cut(key, ":")
	category = strings.ToLower(category)
	if !ValidDocKinds[category] {
		return "", Invalidf("deadline config key %q: category must be general or invoice", key)
	}
	if !hasType {
		return category, nil
	}
	if strings.TrimSpace(typeCode) == "" {
		return "", Invalidf("deadline config key %q: empty type code", key)
	}
	return TypeConfigKey(DocKind(category), typeCode), nil
}

// Validate checks the key format and that DaysBefore is not negative.
func (c *DeadlineConfig) Validate() error {
	key, err := NormalizeConfigKey(c.Key)
	if err != nil {
		return err
	}
	if c.DaysBefore < 0 {
		return Invalidf("deadline config %s: days before must be >= 0, got %d", key, c.DaysBefore)
	}
	c.Key = key
	return nil
}

// ResolveThreshold applies the fallback precedence
// type-specific key -> category key -> literal default.
func ResolveThreshold(configs map[string]int, kind DocKind, typeCode string, defaults ThresholdDefaults) (int, ThresholdSource) {
	if typeCode != "" {
		if days, ok := configs[TypeConfigKey(kind, typeCode)]; ok {
			return days, ThresholdFromType
		}
	}
	if days, ok := configs[string(kind)]; ok {
		return days, ThresholdFromCategory
	}
	return defaults.For(kind), ThresholdFromDefault
}

// DateOnly truncates t to midnight of its calendar day, dropping the zone.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
