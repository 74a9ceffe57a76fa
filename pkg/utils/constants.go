package utils

const (
	TokenIssued      = "token issued successfully"
	AccountSaved     = "account saved successfully"
	AccountRetrieved = "account retrieved successfully"
	CandidateSaved   = "candidate saved successfully"
)
