package services

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// numberToWords converts a non-negative integer into words using the
// Indian grouping convention (thousand, lakh, crore).
func numberToWords(num int64) string {
	switch {
	case num == 0:
		return ""
	case num < 20:
		return onesWords[num]
	case num < 100:
		return strings.TrimSpace(tensWords[num/10] + " " + onesWords[num%10])
	case num < 1000:
		remainder := num % 100
		if remainder == 0 {
			return onesWords[num/100] + " Hundred"
		}
		return onesWords[num/100] + " Hundred " + numberToWords(remainder)
	case num < 100000:
		remainder := num % 1000
		if remainder == 0 {
			return numberToWords(num/1000) + " Thousand"
		}
		return numberToWords(num/1000) + " Thousand " + numberToWords(remainder)
	case num < 10000000:
		remainder := num % 100000
		if remainder == 0 {
			return numberToWords(num/100000) + " Lakh"
		}
		return numberToWords(num/100000) + " Lakh " + numberToWords(remainder)
	default:
		remainder := num % 10000000
		if remainder == 0 {
			return numberToWords(num/10000000) + " Crore"
		}
		return numberToWords(num/10000000) + " Crore " + numberToWords(remainder)
	}
}

// AmountInWords renders a monetary amount as rupees and paise words.
// The engine never renders a negative amount in words.
func AmountInWords(amount float64) (string, error) {
	if amount < 0 {
		return "", newValidationError("amount", "amount must not be negative")
	}

	rupees := int64(math.Floor(amount))
	paise := int64(math.Round((amount - float64(rupees)) * 100))
	if paise == 100 {
		rupees++
		paise = 0
	}

	var parts []string
	if rupees > 0 {
		parts = append(parts, strings.TrimSpace(numberToWords(rupees))+" Rupees")
	}
	if paise > 0 {
		parts = append(parts, strings.TrimSpace(numberToWords(paise))+" Paise")
	}

	if len(parts) == 0 {
		return "Zero Rupees Only", nil
	}
	return strings.Join(parts, " and ") + " Only", nil
}
