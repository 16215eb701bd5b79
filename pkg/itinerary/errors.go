package itinerary

// ErrorType is the closed set of name resolution failures. These are expected
// outcomes, represented as data so the conversation model can branch on them
// and recover; only backend faults surface as Go errors.
type ErrorType string

const (
	ErrorInvalidDateTime    ErrorType = "INVALID_DATE_TIME"
	ErrorBothStopsNotFound  ErrorType = "BOTH_STOPS_NOT_FOUND"
	ErrorStartStopNotFound  ErrorType = "START_STOP_NOT_FOUND"
	ErrorEndStopNotFound    ErrorType = "END_STOP_NOT_FOUND"
	ErrorAmbiguousStartStop ErrorType = "AMBIGUOUS_START_STOP"
	ErrorAmbiguousEndStop   ErrorType = "AMBIGUOUS_END_STOP"
	ErrorSameStartAndEnd    ErrorType = "SAME_START_AND_END"
	ErrorNoItineraryFound   ErrorType = "NO_ITINERARY_FOUND"
)

// Result is the single response shape of the by-name orchestrator. Status is
// either "success" or "error"; on error, ErrorType and Message are set along
// with any type specific context (candidate lists, hints).
type Result struct {
	Status string `json:"status" groups:"basic"`

	ErrorType ErrorType `json:"errorType,omitempty" groups:"basic"`
	Message   string    `json:"message,omitempty" groups:"basic"`

	// Candidates carries disambiguation options for the ambiguous-stop errors
	Candidates []string `json:"candidates,omitempty" groups:"basic"`
	// Hints carries generic remediation advice, e.g. for NO_ITINERARY_FOUND
	Hints []string `json:"hints,omitempty" groups:"basic"`

	StartStop *SelectedStop `json:"startStop,omitempty" groups:"basic"`
	EndStop   *SelectedStop `json:"endStop,omitempty" groups:"basic"`

	Date          string `json:"date,omitempty" groups:"basic"`
	DepartureTime string `json:"departureTime,omitempty" groups:"basic"`

	Journeys []PresentedJourney `json:"journeys,omitempty" groups:"basic"`
}

// SelectedStop is the resolved stop for one side of the request, plus up to a
// few alternative candidate names the caller may offer the user.
type SelectedStop struct {
	Name         string   `json:"stop_name" groups:"basic"`
	MatchScore   int      `json:"matchScore" groups:"detailed"`
	Alternatives []string `json:"alternatives,omitempty" groups:"basic"`
}

func errorResult(errorType ErrorType, message string) *Result {
	return &Result{
		Status:    "error",
		ErrorType: errorType,
		Message:   message,
	}
}
