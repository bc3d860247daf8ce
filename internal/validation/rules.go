package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/shopspring/decimal"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// DateLayout is the accepted format for entered dates.
const DateLayout = "2006-01-02"

// Lookup returns the current value of another field in the same form.
type Lookup func(Field) string

// Validator checks one value and returns an error message, or "" when valid.
type Validator func(value string, lookup Lookup) string

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	otpPattern   = regexp.MustCompile(`^[0-9]{6}$`)
)

var rules = map[Field]Validator{
	Email:           validateEmail,
	OTP:             validateOTP,
	Password:        validatePassword,
	NewPassword:     validatePassword,
	ConfirmPassword: validateConfirmPassword,
	Name:            validateName,
	CategoryName:    validateCategoryName,
	CategoryType:    validateCategoryType,
	TransactionType: validateTransactionType,
	Amount:          validateAmount,
	WalletID:        required("Please select a wallet"),
	FromWalletID:    required("Please select a source wallet"),
	ToWalletID:      validateToWallet,
	CategoryID:      required("Please select a category"),
	Date:            validateDate,
}

var dependents = map[Field][]Field{
	Password:     {ConfirmPassword},
	NewPassword:  {ConfirmPassword},
	FromWalletID: {ToWalletID},
}

// Validate runs the rule registered for field. Fields without a rule are
// always valid.
func Validate(field Field, value string, lookup Lookup) string {
	rule, ok := rules[field]
	if !ok {
		return ""
	}
	if lookup == nil {
		lookup = func(Field) string { return "" }
	}
	return rule(value, lookup)
}

// Dependents lists the fields whose validity depends on field.
func Dependents(field Field) []Field {
	return dependents[field]
}

func required(message string) Validator {
	return func(value string, _ Lookup) string {
		if strings.TrimSpace(value) == "" {
			return message
		}
		return ""
	}
}

func validateEmail(value string, _ Lookup) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(value) {
		return "Please enter a valid email address"
	}
	return ""
}

func validateOTP(value string, _ Lookup) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "OTP is required"
	}
	if !otpPattern.MatchString(value) {
		return "OTP must be exactly 6 digits"
	}
	return ""
}

func validatePassword(value string, _ Lookup) string {
	if value == "" {
		return "Password is required"
	}
	if utf8.RuneCountInString(value) < MinPasswordLength {
		return "Password must be at least 8 characters"
	}
	return ""
}

// validateConfirmPassword compares against NewPassword when the form has one,
// otherwise against Password.
func validateConfirmPassword(value string, lookup Lookup) string {
	if value == "" {
		return "Please confirm your password"
	}
	want := lookup(NewPassword)
	if want == "" {
		want = lookup(Password)
	}
	if value != want {
		return "Passwords do not match"
	}
	return ""
}

func validateName(value string, _ Lookup) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Name is required"
	}
	if utf8.RuneCountInString(value) < 2 {
		return "Name must be at least 2 characters"
	}
	return ""
}

func validateCategoryName(value string, _ Lookup) string {
	if strings.TrimSpace(value) == "" {
		return "Category name is required"
	}
	return ""
}

func validateCategoryType(value string, _ Lookup) string {
	if !model.CategoryType(value).Valid() {
		return "Please select a category type"
	}
	return ""
}

func validateTransactionType(value string, _ Lookup) string {
	if !model.TransactionType(value).Valid() {
		return "Please select a transaction type"
	}
	return ""
}

func validateAmount(value string, _ Lookup) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Amount is required"
	}
	amount, err := ParseAmount(value)
	if err != nil || !amount.IsPositive() {
		return "Please enter a valid amount"
	}
	return ""
}

func validateToWallet(value string, lookup Lookup) string {
	if strings.TrimSpace(value) == "" {
		return "Please select a destination wallet"
	}
	if value == lookup(FromWalletID) {
		return "Source and destination wallets must differ"
	}
	return ""
}

// ParseAmount parses a user-entered amount.
func ParseAmount(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(value))
}

// validateDate accepts an empty value, which means "now".
func validateDate(value string, _ Lookup) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return "Please enter a valid date (YYYY-MM-DD)"
	}
	return ""
}
