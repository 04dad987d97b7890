package models

// Category is a row of the categories table (petty-cash labels).
type Category struct {
	CategoryID int64  `db:"category_id"`
	Name       string `db:"name"`
	AuditFields
}

// SubCategory is a row of the sub_categories table (cash-flow classification).
type SubCategory struct {
	SubCategoryID int64  `db:"sub_category_id"`
	Kind          string `db:"kind"`
	Name          string `db:"name"`
	SortOrder     int    `db:"sort_order"`
	AuditFields
}
