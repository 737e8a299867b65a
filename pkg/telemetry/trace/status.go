package trace

// StatusCode is the outcome recorded on a span. Spans start Unset and only
// an explicit SetStatus call moves them; the model never infers a status.
type StatusCode int

const (
	StatusUnset StatusCode = iota
	StatusError
	StatusOk
)

func (c StatusCode) String() string {
	switch c {
	case StatusError:
		return "Error"
	case StatusOk:
		return "Ok"
	default:
		return "Unset"
	}
}

// StatusCodeFromString parses the textual form, defaulting to Unset.
func StatusCodeFromString(s string) StatusCode {
	switch s {
	case "Error":
		return StatusError
	case "Ok":
		return StatusOk
	default:
		return StatusUnset
	}
}

// Status pairs a code with a description. The description is only
// meaningful for Error and is discarded for the other codes.
type Status struct {
	Code        StatusCode
	Description string
}

// apply folds a requested transition into the current status, enforcing
// monotonicity: Unset -> Error, Unset -> Ok and Error -> Ok are honored,
// anything that would lower the status is ignored. Ok is final.
func (s Status) apply(code StatusCode, description string) Status {
	if code <= s.Code {
		return s
	}
	if code != StatusError {
		description = ""
	}
	return Status{Code: code, Description: description}
}
