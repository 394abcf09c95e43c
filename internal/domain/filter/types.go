package filter

// ComparisonType enumerates the supported filter operators.
type ComparisonType string

const (
	Equal          ComparisonType = "eq"
	NotEqual       ComparisonType = "neq"
	LessOrEqual    ComparisonType = "lte"
	GreaterOrEqual ComparisonType = "gte"
	Less           ComparisonType = "lt"
	Greater        ComparisonType = "gt"
	InList         ComparisonType = "in"
	NotInList      ComparisonType = "nin"
	Contains       ComparisonType = "contains"  // ILIKE %val%
	NotContains    ComparisonType = "ncontains" // NOT ILIKE %val%

	IsNull    ComparisonType = "null"
	IsNotNull ComparisonType = "not_null"
)

// Item is one condition of an advanced filter.
type Item struct {
	// Field is the snake_case column name.
	Field    string         `json:"field"`
	Operator ComparisonType `json:"operator"`
	// Value is a scalar or, for list operators, a slice.
	Value any `json:"value"`
}
