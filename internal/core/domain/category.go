package domain

// SubCategoryKind classifies cash-flow sub-categories for the profit/loss report.
type SubCategoryKind string

const (
	KindIncome  SubCategoryKind = "income"
	KindExpense SubCategoryKind = "expense"
)

func (k SubCategoryKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// MatchesDirection reports whether a cash-flow entry in direction d may use this kind.
func (k SubCategoryKind) MatchesDirection(d Direction) bool {
	return (k == KindIncome && d == DirectionIn) || (k == KindExpense && d == DirectionOut)
}

// SubCategory is cash-flow master data. IDs come from a database sequence, so
// ordering by ID is insertion order.
type SubCategory struct {
	ID        int64           `json:"id"`
	Kind      SubCategoryKind `json:"kind"`
	Name      string          `json:"name"`
	SortOrder int             `json:"sortOrder"`
	AuditFields
}

// Category is a flat petty-cash category label.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	AuditFields
}
