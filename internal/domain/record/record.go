// Package record defines the canonical transaction record emitted by the
// extraction pipeline, together with the closed enum sets it is built from.
package record

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source identifies where a transaction record was extracted from.
type Source string

const (
	SourceSMS       Source = "SMS"
	SourceEmail     Source = "EMAIL"
	SourceStatement Source = "STATEMENT"
)

// Direction is the money-flow direction of a transaction.
// It is always one of two values; ambiguous text resolves to DEBIT.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// Category is the closed spending-category set. Adding a value here requires
// updating DisplayName so the mapping stays exhaustive.
type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryHomeLoanEMI   Category = "EMI_HOME_LOAN"
	CategoryCarLoanEMI    Category = "EMI_CAR_LOAN"
	CategoryUtilities     Category = "UTILITIES"
	CategoryShopping      Category = "SHOPPING"
	CategoryInvestment    Category = "INVESTMENT"
	CategorySalary        Category = "SALARY"
	CategoryTransfer      Category = "TRANSFER"
	CategoryHealth        Category = "HEALTH"
	CategoryTravel        Category = "TRAVEL"
	CategoryEducation     Category = "EDUCATION"
	CategoryInsurance     Category = "INSURANCE"
	CategorySubscriptions Category = "SUBSCRIPTIONS"
	CategoryGroceries     Category = "GROCERIES"
	CategoryFuel          Category = "FUEL"
	CategoryRent          Category = "RENT"
	CategoryPersonalCare  Category = "PERSONAL_CARE"
	CategoryGifts         Category = "GIFTS"
	CategoryOther         Category = "OTHER"
)

// InvestmentType is the investment sub-type; only meaningful when the
// category is INVESTMENT.
type InvestmentType string

const (
	InvestmentNone       InvestmentType = ""
	InvestmentSIP        InvestmentType = "SIP"
	InvestmentMutualFund InvestmentType = "MUTUAL_FUND"
	InvestmentStocks     InvestmentType = "STOCKS"
	InvestmentPPF        InvestmentType = "PPF"
	InvestmentNPS        InvestmentType = "NPS"
	InvestmentBonds      InvestmentType = "BONDS"
	InvestmentOther      InvestmentType = "OTHER"
)

// PaymentMethod is the detected payment channel.
type PaymentMethod string

const (
	MethodNone   PaymentMethod = ""
	MethodUPI    PaymentMethod = "UPI"
	MethodNEFT   PaymentMethod = "NEFT"
	MethodIMPS   PaymentMethod = "IMPS"
	MethodCard   PaymentMethod = "CARD"
	MethodCash   PaymentMethod = "CASH"
	MethodCheque PaymentMethod = "CHEQUE"
	MethodOther  PaymentMethod = "OTHER"
)

// Field bounds applied at construction time.
const (
	MaxRawTextLen  = 500
	MaxMerchantLen = 30
)

// TransactionRecord is the canonical output unit of the pipeline. It is
// created once by a source adapter and never mutated afterwards; corrections
// are modeled as delete + reinsert by the persistence layer.
type TransactionRecord struct {
	ID             uuid.UUID
	RawText        string // original text, truncated to MaxRawTextLen
	Source         Source
	Timestamp      int64 // epoch millis
	Amount         decimal.Decimal
	Direction      Direction
	Category       Category
	InvestmentType InvestmentType // set only when Category == CategoryInvestment
	Merchant       string         // optional, truncated to MaxMerchantLen
	PaymentMethod  PaymentMethod  // optional
	ReferenceNo    string         // optional
	BalanceAfter   *decimal.Decimal
	Summary        string // derived, regenerated via BuildSummary
}

var (
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrMissingDirection  = errors.New("direction must be DEBIT or CREDIT")
	ErrStrayInvestment   = errors.New("investment type set on non-investment category")
)

// Validate enforces the record invariants. Adapters reject (skip) records
// that fail validation instead of emitting them.
func (r *TransactionRecord) Validate() error {
	if !r.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if r.Direction != Debit && r.Direction != Credit {
		return ErrMissingDirection
	}
	if r.InvestmentType != InvestmentNone && r.Category != CategoryInvestment {
		return ErrStrayInvestment
	}
	if len(r.RawText) > MaxRawTextLen {
		return fmt.Errorf("raw text exceeds %d chars", MaxRawTextLen)
	}
	if len(r.Merchant) > MaxMerchantLen {
		return fmt.Errorf("merchant exceeds %d chars", MaxMerchantLen)
	}
	return nil
}

// Time returns the record timestamp as a time.Time.
func (r *TransactionRecord) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Truncate bounds a string to max bytes without splitting a rune, trimming
// trailing space.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut])
}

// FormatINR renders a decimal amount as an Indian-rupee display string.
func FormatINR(amount decimal.Decimal) string {
	minor := amount.Mul(decimal.New(1, 2)).Round(0).IntPart()
	return money.New(minor, "INR").Display()
}

// BuildSummary derives the human-readable one-liner for a record. It depends
// only on the other fields, so re-running it over a stored record always
// reproduces the same summary.
func BuildSummary(r *TransactionRecord) string {
	var b strings.Builder

	switch {
	case r.Category == CategoryInvestment:
		b.WriteString("Invested ")
		b.WriteString(FormatINR(r.Amount))
		if r.InvestmentType != InvestmentNone && r.InvestmentType != InvestmentOther {
			b.WriteString(" in ")
			b.WriteString(r.InvestmentType.DisplayName())
		}
	case r.Direction == Credit:
		b.WriteString("Received ")
		b.WriteString(FormatINR(r.Amount))
		if r.Merchant != "" {
			b.WriteString(" from ")
			b.WriteString(r.Merchant)
		}
	default:
		b.WriteString("Spent ")
		b.WriteString(FormatINR(r.Amount))
		if r.Merchant != "" {
			b.WriteString(" at ")
			b.WriteString(r.Merchant)
		}
	}

	if r.PaymentMethod != MethodNone {
		b.WriteString(" via ")
		b.WriteString(string(r.PaymentMethod))
	}
	return b.String()
}

// DisplayName maps a category to its presentation label. The switch is
// exhaustive over the closed set so a new category is a single-point change.
func (c Category) DisplayName() string {
	switch c {
	case CategoryFood:
		return "Food & Dining"
	case CategoryEntertainment:
		return "Entertainment"
	case CategoryHomeLoanEMI:
		return "Home Loan EMI"
	case CategoryCarLoanEMI:
		return "Car Loan EMI"
	case CategoryUtilities:
		return "Utilities"
	case CategoryShopping:
		return "Shopping"
	case CategoryInvestment:
		return "Investment"
	case CategorySalary:
		return "Salary"
	case CategoryTransfer:
		return "Transfer"
	case CategoryHealth:
		return "Health"
	case CategoryTravel:
		return "Travel"
	case CategoryEducation:
		return "Education"
	case CategoryInsurance:
		return "Insurance"
	case CategorySubscriptions:
		return "Subscriptions"
	case CategoryGroceries:
		return "Groceries"
	case CategoryFuel:
		return "Fuel"
	case CategoryRent:
		return "Rent"
	case CategoryPersonalCare:
		return "Personal Care"
	case CategoryGifts:
		return "Gifts"
	case CategoryOther:
		return "Other"
	}
	return "Other"
}

// DisplayName maps an investment sub-type to its presentation label.
func (t InvestmentType) DisplayName() string {
	switch t {
	case InvestmentSIP:
		return "SIP"
	case InvestmentMutualFund:
		return "Mutual Funds"
	case InvestmentStocks:
		return "Stocks"
	case InvestmentPPF:
		return "PPF"
	case InvestmentNPS:
		return "NPS"
	case InvestmentBonds:
		return "Bonds"
	case InvestmentOther:
		return "Investment"
	case InvestmentNone:
		return ""
	}
	return "Investment"
}
