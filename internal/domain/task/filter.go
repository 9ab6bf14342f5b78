package task

// Filter holds optional criteria for listing the tasks of a board.
// Nil / zero-value fields mean "no filter" for that dimension.
type Filter struct {
	Status     *Status
	AssignedTo *string
	Priority   *Priority
	// DueDate matches tasks due on that exact calendar day (UTC).
	DueDate *string
	// Search matches title and description, case-insensitive substring.
	Search string
	// SortBy must be one of the allowlisted sort keys; unknown values fall
	// back to "position". SortDesc reverses the direction.
	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}
