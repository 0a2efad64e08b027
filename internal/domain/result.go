package domain

// Result is the outcome of one ticket-purchase attempt. The persisted
// string literals live in the store adapter, not here.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

func (r Result) Valid() bool {
	return r == ResultSuccess || r == ResultFailure
}
