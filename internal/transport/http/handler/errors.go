package handler

const (
	errInternalServer  = "Internal server error"
	errEmailTaken      = "Email is already registered"
	errWrongPassword   = "Wrong password"
	errUserNotFound    = "User not found"
	errPastPeriod      = "Record belongs to a month earlier than the current one"
	errExpenseNotFound = "Expense not found"
	errLimitNotFound   = "Limit not found"
	errNoExpenses      = "No expenses found for the given month"
)
