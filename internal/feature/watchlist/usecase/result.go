package usecase

// FailureReason classifies a failed membership operation.
type FailureReason string

const (
	ReasonNone            FailureReason = ""
	ReasonUnauthenticated FailureReason = "unauthenticated"
	ReasonInvalid         FailureReason = "invalid"
	ReasonStorage         FailureReason = "storage"
)

// Result is the structured outcome of add and remove.
// Exactly one of Message (success) or Error (failure) is set.
type Result struct {
	Success bool
	Message string
	Error   string
	Reason  FailureReason
}

func ok(msg string) Result {
	return Result{Success: true, Message: msg}
}

func fail(reason FailureReason, msg string) Result {
	return Result{Error: msg, Reason: reason}
}
