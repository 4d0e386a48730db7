// Package models defines data structures for Horizon
package models

import (
	"fmt"
	"strings"
	"time"
)

// InvestmentType classifies a tracked holding.
type InvestmentType string

const (
	InvestmentMutualFund   InvestmentType = "mutual_fund"
	InvestmentStock        InvestmentType = "stock"
	InvestmentPPF          InvestmentType = "ppf"
	InvestmentNPS          InvestmentType = "nps"
	InvestmentFixedDeposit InvestmentType = "fixed_deposit"
	InvestmentCrypto       InvestmentType = "crypto"
	InvestmentOther        InvestmentType = "other"
)

// ValidInvestmentType reports whether t is one of the known investment types.
func ValidInvestmentType(t InvestmentType) bool {
	switch t {
	case InvestmentMutualFund, InvestmentStock, InvestmentPPF, InvestmentNPS,
		InvestmentFixedDeposit, InvestmentCrypto, InvestmentOther:
		return true
	}
	return false
}

// IsSecurityLike reports whether the type trades on a market and is expected
// to have published historical returns (used when prompting the research
// provider for YTD/1Y/3Y/5Y figures).
func (t InvestmentType) IsSecurityLike() bool {
	switch t {
	case InvestmentMutualFund, InvestmentStock, InvestmentCrypto:
		return true
	}
	return false
}

// ContributionFrequency describes how the contribution amount recurs.
type ContributionFrequency string

const (
	FrequencyMonthly ContributionFrequency = "monthly"
	FrequencyYearly  ContributionFrequency = "yearly"
	FrequencyOneTime ContributionFrequency = "one_time"
)

// ValidContributionFrequency reports whether f is a known frequency.
func ValidContributionFrequency(f ContributionFrequency) bool {
	switch f {
	case FrequencyMonthly, FrequencyYearly, FrequencyOneTime:
		return true
	}
	return false
}

// Investment is one holding the user tracks. The forecast pipeline receives
// investments by value and never mutates them.
type Investment struct {
	ID                    string                `json:"id"`
	Type                  InvestmentType        `json:"type"`
	Name                  string                `json:"name"`
	ContributionFrequency ContributionFrequency `json:"contribution_frequency"`
	ContributionAmount    float64               `json:"contribution_amount"`
	InitialAmount         float64               `json:"initial_amount"`
	SourceURL             string                `json:"source_url,omitempty"`
	Institution           string                `json:"institution,omitempty"`
	Ticker                string                `json:"ticker,omitempty"`
	Notes                 string                `json:"notes,omitempty"`
}

// Validate checks the structural invariants for a single investment.
func (inv *Investment) Validate() error {
	if strings.TrimSpace(inv.ID) == "" {
		return fmt.Errorf("investment id is required")
	}
	if !ValidInvestmentType(inv.Type) {
		return fmt.Errorf("investment '%s': unknown type '%s'", inv.ID, inv.Type)
	}
	if len(strings.TrimSpace(inv.Name)) < 2 {
		return fmt.Errorf("investment '%s': name must be at least 2 characters", inv.ID)
	}
	if !ValidContributionFrequency(inv.ContributionFrequency) {
		return fmt.Errorf("investment '%s': unknown contribution frequency '%s'", inv.Name, inv.ContributionFrequency)
	}
	if inv.ContributionAmount < 0 {
		return fmt.Errorf("investment '%s': contribution amount must be >= 0", inv.Name)
	}
	if inv.InitialAmount < 0 {
		return fmt.Errorf("investment '%s': initial amount must be >= 0", inv.Name)
	}
	return nil
}

// HasFunds reports whether the investment carries any money at all.
func (inv *Investment) HasFunds() bool {
	return inv.InitialAmount > 0 || inv.ContributionAmount > 0
}

// PortfolioSettings are shared by every investment in a projection.
type PortfolioSettings struct {
	Currency string `json:"currency"`
	Years    int    `json:"years"`
}

// Portfolio is the per-user document holding settings and investments.
type Portfolio struct {
	UserID      string            `json:"user_id"`
	Settings    PortfolioSettings `json:"settings"`
	Investments []Investment      `json:"investments"`
	ModifiedAt  time.Time         `json:"modified_at"`
}
