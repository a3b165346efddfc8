package models

import "fintrack/internal/timeutil"

// TransactionType represents the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// TransactionCategory is a closed set of spending/income categories.
// The "other" category may carry free text in CategoryOther.
type TransactionCategory string

const (
	CategoryFood          TransactionCategory = "food"
	CategoryTransport     TransactionCategory = "transport"
	CategoryEntertainment TransactionCategory = "entertainment"
	CategoryUtilities     TransactionCategory = "utilities"
	CategoryHealth        TransactionCategory = "health"
	CategorySales         TransactionCategory = "sales"
	CategorySalary        TransactionCategory = "salary"
	CategoryInvestment    TransactionCategory = "investment"
	CategoryEducation     TransactionCategory = "education"
	CategoryShopping      TransactionCategory = "shopping"
	CategoryTravel        TransactionCategory = "travel"
	CategoryGifts         TransactionCategory = "gifts"
	CategoryDonations     TransactionCategory = "donations"
	CategoryBills         TransactionCategory = "bills"
	CategorySubscriptions TransactionCategory = "subscriptions"
	CategorySavings       TransactionCategory = "savings"
	CategoryLoans         TransactionCategory = "loans"
	CategoryInsurance     TransactionCategory = "insurance"
	CategoryTaxes         TransactionCategory = "taxes"
	CategoryOther         TransactionCategory = "other"
)

// Categories lists every valid transaction category.
var Categories = []TransactionCategory{
	CategoryFood, CategoryTransport, CategoryEntertainment, CategoryUtilities,
	CategoryHealth, CategorySales, CategorySalary, CategoryInvestment,
	CategoryEducation, CategoryShopping, CategoryTravel, CategoryGifts,
	CategoryDonations, CategoryBills, CategorySubscriptions, CategorySavings,
	CategoryLoans, CategoryInsurance, CategoryTaxes, CategoryOther,
}

// Transaction is a dated income or expense record. Amounts are stored
// in cents and must be strictly positive.
type Transaction struct {
	Base
	Title         string              `gorm:"size:255;not null" json:"title"`
	Amount        int64               `gorm:"not null" json:"amount"`
	Type          TransactionType     `gorm:"size:7;not null" json:"transaction_type"`
	Date          timeutil.Date       `gorm:"type:date;not null" json:"date"`
	Category      TransactionCategory `gorm:"size:20;not null" json:"category"`
	CategoryOther string              `gorm:"size:255" json:"category_other,omitempty"`
	Description   string              `json:"description,omitempty"`
	UserID        *uint               `gorm:"index" json:"user_id,omitempty"`
}
