package models

// Category is a row of the categories table.
type Category struct {
	CategoryID  string `db:"category_id"`
	Name        string `db:"name"`
	Type        string `db:"type"`
	AccountCode string `db:"account_code"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
