package common

const (
	SortTop = "top"
	SortNew = "new"

	// TimeFilterMonth restricts "top" searches to the past month.
	TimeFilterMonth = "month"

	DefaultSearchLimit = 5
	ExcerptMaxLength   = 300
	ExcerptEllipsis    = "..."

	PositiveThreshold = 0.05
	NegativeThreshold = -0.05

	TimestampLayout = "2006-01-02 15:04:05"
)
