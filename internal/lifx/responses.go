package lifx

// OperationResult is the per-light outcome reported by the state and
// effect endpoints, including multi-status (207) responses where some
// lights succeeded and some didn't.
type OperationResult struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Status string `json:"status"`
}

type OperationResults struct {
	Results []OperationResult `json:"results"`
}
