// Package validation implements the per-field validators and the cross-field
// dependencies between them.
package validation

// Field identifies the kind of value a form input carries.
type Field int

const (
	// Email is an account email address.
	Email Field = iota
	// OTP is the six digit recovery code.
	OTP
	// Password is the login or registration password.
	Password
	// NewPassword is the replacement password during recovery.
	NewPassword
	// ConfirmPassword must repeat Password or NewPassword.
	ConfirmPassword
	// Name is the registration display name.
	Name
	// CategoryName is the name of a category.
	CategoryName
	// CategoryType is income or expense.
	CategoryType
	// Icon is a category icon key.
	Icon
	// Color is a category display color.
	Color
	// TransactionType is income, expense, or transfer.
	TransactionType
	// Amount is a positive decimal amount.
	Amount
	// WalletID is the wallet of an income or expense.
	WalletID
	// FromWalletID is the source wallet of a transfer.
	FromWalletID
	// ToWalletID is the destination wallet of a transfer.
	ToWalletID
	// CategoryID is the category of an income or expense.
	CategoryID
	// Date is the transaction date.
	Date
	// Notes is free text attached to a transaction.
	Notes
	// Attachment is a receipt reference kept by the server.
	Attachment
)

var fieldNames = map[Field]string{
	Email:           "email",
	OTP:             "otp",
	Password:        "password",
	NewPassword:     "newPassword",
	ConfirmPassword: "confirmPassword",
	Name:            "name",
	CategoryName:    "categoryName",
	CategoryType:    "categoryType",
	Icon:            "icon",
	Color:           "color",
	TransactionType: "type",
	Amount:          "amount",
	WalletID:        "walletId",
	FromWalletID:    "fromWalletId",
	ToWalletID:      "toWalletId",
	CategoryID:      "categoryId",
	Date:            "date",
	Notes:           "notes",
	Attachment:      "attachment",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// Label is the human readable name shown next to an input.
func (f Field) Label() string {
	switch f {
	case Email:
		return "Email"
	case OTP:
		return "Verification code"
	case Password:
		return "Password"
	case NewPassword:
		return "New password"
	case ConfirmPassword:
		return "Confirm password"
	case Name, CategoryName:
		return "Name"
	case CategoryType, TransactionType:
		return "Type"
	case Icon:
		return "Icon"
	case Color:
		return "Color"
	case Amount:
		return "Amount"
	case WalletID:
		return "Wallet"
	case FromWalletID:
		return "From wallet"
	case ToWalletID:
		return "To wallet"
	case CategoryID:
		return "Category"
	case Date:
		return "Date"
	case Notes:
		return "Notes"
	case Attachment:
		return "Attachment"
	default:
		return f.String()
	}
}

// Secret reports whether the field should be masked when displayed.
func (f Field) Secret() bool {
	return f == Password || f == NewPassword || f == ConfirmPassword
}
