package domain

// CategoryType drives which voucher a case produces.
type CategoryType string

const (
	CategoryExpense CategoryType = "EXPENSE"
	CategoryRevenue CategoryType = "REVENUE"
	CategoryAsset   CategoryType = "ASSET"
)

// IsValid checks if the category type is one of the defined constants.
func (t CategoryType) IsValid() bool {
	switch t {
	case CategoryExpense, CategoryRevenue, CategoryAsset:
		return true
	}
	return false
}

// RequiresDepositAccount reports whether cases of this type must name the
// account where received money lands.
func (t CategoryType) RequiresDepositAccount() bool {
	return t == CategoryRevenue || t == CategoryAsset
}

// Category is a spending or revenue classification. Categories are
// deactivated, never deleted, since historical cases reference them.
type Category struct {
	CategoryID  string       `json:"categoryId"`
	Name        string       `json:"name"`
	Type        CategoryType `json:"type"`
	AccountCode string       `json:"accountCode"`
	IsActive    bool         `json:"isActive"`
	AuditFields
}

// CategoryFilter narrows category listings.
type CategoryFilter struct {
	Type       *CategoryType
	ActiveOnly bool
}
