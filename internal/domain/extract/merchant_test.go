package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finsift/finsift/internal/domain/patterns"
)

func TestMerchant(t *testing.T) {
	lib := patterns.New()

	tests := []struct {
		name   string
		text   string
		sender string
		want   string
	}{
		{"to-prefix capture canonicalizes", "Rs.500 debited to AMAZON PAY INDIA on 12-01-25", "", "Amazon"},
		{"upi handle", "payment of Rs.120 to swiggy@ybl successful", "", "Swiggy"},
		{"paid-to capture", "paid to Sharma General Stores via UPI", "", "Sharma General Stores"},
		{"neft segment", "NEFT-SALARY-ACME CORP", "", "Acme Corp"},
		{"known merchant fallback", "your ZOMATO order is out for delivery, Rs.320 paid", "", "Zomato"},
		{"sender fallback for emails", "Rs.900 debited via card", "statements@acmebank.in", "Statements"},
		{"noreply sender excluded", "Rs.900 debited via card", "noreply@bank.in", ""},
		{"account phrase is not a merchant", "Rs.100 credited to your account by IMPS", "", ""},
		{"nothing qualifies", "Rs.100 debited", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merchant(lib, tt.text, tt.sender))
		})
	}
}

func TestCleanMerchant(t *testing.T) {
	lib := patterns.New()

	t.Run("strips noise and title-cases", func(t *testing.T) {
		assert.Equal(t, "Sharma General Stores", CleanMerchant(lib, "SHARMA  GENERAL *STORES"))
	})

	t.Run("strips trailing reference digits", func(t *testing.T) {
		assert.Equal(t, "Local Mart", CleanMerchant(lib, "LOCAL MART 998877"))
	})

	t.Run("canonical substring match", func(t *testing.T) {
		assert.Equal(t, "Amazon", CleanMerchant(lib, "AMZN Pay In"))
	})

	t.Run("fuzzy match catches close misspellings", func(t *testing.T) {
		assert.Equal(t, "Flipkart", CleanMerchant(lib, "FLIPKRT"))
	})

	t.Run("too short yields empty", func(t *testing.T) {
		assert.Equal(t, "", CleanMerchant(lib, "*"))
	})
}
