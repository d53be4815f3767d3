package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finsift/finsift/internal/domain/patterns"
	"github.com/finsift/finsift/internal/domain/record"
)

func TestCategory(t *testing.T) {
	lib := patterns.New()

	tests := []struct {
		name     string
		text     string
		merchant string
		want     record.Category
	}{
		{"food keyword", "Rs.450 debited for SWIGGY order", "", record.CategoryFood},
		{"car loan before home loan", "Car loan EMI of Rs.12,000 debited", "", record.CategoryCarLoanEMI},
		{"home loan", "Home loan EMI of Rs.32,000 debited", "", record.CategoryHomeLoanEMI},
		{"bare emi is not a loan category", "EMI of Rs.2,000 debited for purchase", "", record.CategoryOther},
		{"utilities", "Electricity bill of Rs.1,560 paid", "", record.CategoryUtilities},
		{"merchant decides when body is opaque", "Rs.640 debited from a/c", "Zomato", record.CategoryFood},
		{"salary", "Salary credited Rs.85,000", "", record.CategorySalary},
		{"transfer is the last resort", "Rs.5,000 sent via IMPS", "", record.CategoryTransfer},
		{"dmart is groceries", "POS DMART BANGALORE Rs.899 debited", "", record.CategoryGroceries},
		{"supermarket is groceries", "BIG SUPERMARKET PURCHASE Rs.1,200", "", record.CategoryGroceries},
		{"rent paid", "Rent of Rs.18,000 paid to landlord", "", record.CategoryRent},
		{"rent does not fire inside current", "Current a/c maintenance fee Rs.590 debited", "", record.CategoryOther},
		{"mart does not fire inside smart", "SMARTPHONE EMI Rs.1,500 debited", "", record.CategoryOther},
		{"plural merchant matches its stem", "MCDONALDS BURGER ORDER Rs.250 paid", "", record.CategoryFood},
		{"nothing matches", "Rs.200 debited", "", record.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, invType := Category(lib, tt.text, tt.merchant)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, record.InvestmentNone, invType)
		})
	}

	t.Run("investment short-circuits the rule list", func(t *testing.T) {
		got, invType := Category(lib, "NACH mandate debit Rs.5,000 for SIP purchase via UPI", "")
		assert.Equal(t, record.CategoryInvestment, got)
		assert.Equal(t, record.InvestmentSIP, invType)
	})
}
