// Package localization derives currency, locale and purchasing-power-parity
// figures from a user's declared location. Tables are plain values handed to
// consumers at construction time so tests can substitute their own.
package localization

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finpal/finpal-backend/internal/model"
)

// DefaultCountry is the fallback when the country code is missing or
// unknown.
const DefaultCountry = "IN"

// Locality tiers, ordered from most to least expensive.
const (
	TierMetro    = "metro"
	TierUrban    = "urban"
	TierSuburban = "suburban"
	TierRural    = "rural"
)

// CountryConfig holds per-country localization values. PPPMultiplier is the
// base purchasing-power factor relative to the default country.
type CountryConfig struct {
	Currency      string
	Locale        string
	PPPMultiplier decimal.Decimal
}

// Config bundles the lookup tables the resolver works from.
type Config struct {
	Countries       map[string]CountryConfig
	TierMultipliers map[string]decimal.Decimal
	MetroCities     map[string]bool
}

// DefaultConfig returns the built-in localization tables.
func DefaultConfig() Config {
	return Config{
		Countries: map[string]CountryConfig{
			"IN": {Currency: "INR", Locale: "en-IN", PPPMultiplier: decimal.NewFromFloat(1.00)},
			"US": {Currency: "USD", Locale: "en-US", PPPMultiplier: decimal.NewFromFloat(2.75)},
			"GB": {Currency: "GBP", Locale: "en-GB", PPPMultiplier: decimal.NewFromFloat(2.20)},
			"AE": {Currency: "AED", Locale: "en-AE", PPPMultiplier: decimal.NewFromFloat(2.10)},
			"SG": {Currency: "SGD", Locale: "en-SG", PPPMultiplier: decimal.NewFromFloat(1.95)},
			"CA": {Currency: "CAD", Locale: "en-CA", PPPMultiplier: decimal.NewFromFloat(2.05)},
			"AU": {Currency: "AUD", Locale: "en-AU", PPPMultiplier: decimal.NewFromFloat(2.00)},
			"DE": {Currency: "EUR", Locale: "de-DE", PPPMultiplier: decimal.NewFromFloat(2.15)},
		},
		TierMultipliers: map[string]decimal.Decimal{
			TierMetro:    decimal.NewFromFloat(1.12),
			TierUrban:    decimal.NewFromFloat(1.05),
			TierSuburban: decimal.NewFromFloat(0.98),
			TierRural:    decimal.NewFromFloat(0.90),
		},
		MetroCities: map[string]bool{
			"mumbai":        true,
			"delhi":         true,
			"new delhi":     true,
			"bengaluru":     true,
			"bangalore":     true,
			"chennai":       true,
			"kolkata":       true,
			"hyderabad":     true,
			"pune":          true,
			"gurgaon":       true,
			"gurugram":      true,
			"noida":         true,
			"new york":      true,
			"london":        true,
			"singapore":     true,
			"dubai":         true,
			"san francisco": true,
			"sydney":        true,
			"toronto":       true,
			"berlin":        true,
		},
	}
}

// Country returns the config for a country code, falling back to the
// default country when the code is missing or unknown.
func (c Config) Country(code string) CountryConfig {
	if cfg, ok := c.Countries[strings.ToUpper(code)]; ok {
		return cfg
	}
	return c.Countries[DefaultCountry]
}

// LocalityTier resolves the locality tier for a location: the explicit tier
// when set, metro when the city is on the allowlist, urban otherwise.
func (c Config) LocalityTier(loc model.Location) string {
	if _, ok := c.TierMultipliers[strings.ToLower(loc.LocalityTier)]; ok {
		return strings.ToLower(loc.LocalityTier)
	}
	if c.MetroCities[strings.ToLower(strings.TrimSpace(loc.City))] {
		return TierMetro
	}
	return TierUrban
}

// PPPMultiplier resolves the effective purchasing-power multiplier for a
// location: 1.0 unless the user opted into location-aware budgeting, else
// the country base factor times the locality-tier multiplier. Explicit
// ppp_multiplier / locality_multiplier values stored on the location win
// over table lookups.
func (c Config) PPPMultiplier(loc model.Location, enabled bool) decimal.Decimal {
	if !enabled {
		return decimal.NewFromInt(1)
	}

	base := c.Country(loc.CountryCode).PPPMultiplier
	if loc.PPPMultiplier != nil {
		base = decimal.NewFromFloat(*loc.PPPMultiplier)
	}

	tier := c.TierMultipliers[c.LocalityTier(loc)]
	if loc.LocalityMultiplier != nil {
		tier = decimal.NewFromFloat(*loc.LocalityMultiplier)
	}

	return base.Mul(tier)
}

// ApplyProfileDefaults fills missing currency/locale/ppp fields on a
// profile from the country table. Used when provisioning a user so the
// profile blob is self-describing from day one.
func (c Config) ApplyProfileDefaults(p model.Profile) model.Profile {
	cfg := c.Country(p.Location.CountryCode)

	if p.Identity.Currency == "" {
		p.Identity.Currency = cfg.Currency
	}
	if p.Identity.Locale == "" {
		p.Identity.Locale = cfg.Locale
	}
	if p.Location.PPPMultiplier == nil {
		ppp, _ := cfg.PPPMultiplier.Float64()
		p.Location.PPPMultiplier = &ppp
	}
	return p
}

// currencySymbols maps ISO currency codes to display symbols for tips and
// confirmation messages.
var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"AED": "د.إ",
	"SGD": "S$",
	"CAD": "C$",
	"AUD": "A$",
}

// CurrencySymbol returns the display symbol for a currency code, or the
// code itself when no symbol is known.
func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return sym
	}
	if code == "" {
		return currencySymbols["INR"]
	}
	return code
}
