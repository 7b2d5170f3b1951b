package models

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// LookupRequest is the body of a lookup intent
type LookupRequest struct {
	Query string `json:"query"`
}

// AnchorRequest is the body of a document anchor intent
type AnchorRequest struct {
	URL         string `json:"url"`
	ProviderID  string `json:"provider_id"`
	Description string `json:"description"`
}

// AnchorResponse reports a stored draft together with the unsigned envelope
type AnchorResponse struct {
	Receipt  AnchorReceipt `json:"receipt"`
	Envelope string        `json:"envelope_xdr"`
	TxHash   string        `json:"tx_hash"`
	Source   string        `json:"source_account"`
}

// ConsentRequest sets the analytics consent flag
type ConsentRequest struct {
	Consent Consent `json:"consent"`
}
