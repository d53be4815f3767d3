package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsift/finsift/internal/domain/patterns"
)

func TestAmount(t *testing.T) {
	lib := patterns.New()

	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"rupee prefix with commas", "Rs. 1,234.50 debited from your a/c", "1234.5", true},
		{"INR prefix", "INR 2,500.00 credited to your account", "2500", true},
		{"rupee symbol", "You paid ₹99 to JioCinema", "99", true},
		{"suffixed currency", "450.00 INR spent on card", "450", true},
		{"labeled amount", "Amt: 320.00 Txn ID 884422", "320", true},
		{"verb adjacent", "Your a/c has been debited by 500", "500", true},
		{"bare number with dr marker", "1500.00 Dr on 12-01-25", "1500", true},
		{"first pattern wins over later numbers", "Rs.500.00 debited, Avl bal Rs.9,000.00", "500", true},
		{"no numbers", "no numbers here at all", "0", false},
		{"otp digits are not amounts", "Your OTP is 482910", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Amount(lib, tt.text)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestHasAmount(t *testing.T) {
	lib := patterns.New()

	assert.True(t, HasAmount(lib, "Rs.500 debited"))
	assert.False(t, HasAmount(lib, "welcome to our rewards program"))
}

func BenchmarkAmount(b *testing.B) {
	lib := patterns.New()
	text := "Rs.500.00 debited from a/c **1234 to AMAZON PAY on 12-01-25. UPI Ref 123456789. Avl bal: Rs.4500.00"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Amount(lib, text)
	}
}
