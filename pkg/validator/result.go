package validator

// Result is the outcome of a single-value check. Message is empty when Valid.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// PasswordResult adds a 0..100 strength score. Strength is reported even for
// invalid passwords so forms can show a meter.
type PasswordResult struct {
	Result
	Strength int `json:"strength"`
}

func valid() Result {
	return Result{Valid: true}
}

func invalid(msg string) Result {
	return Result{Message: msg}
}
