package models

// AnchorDraft is the lockb0x draft accepted by the reporting API
type AnchorDraft struct {
	PointerHash string `json:"pointer_hash"`
	URL         string `json:"url"`
	Provider    string `json:"provider"`
	Description string `json:"description"`
}

// AnchorReceipt is returned once the reporting API stored a draft
type AnchorReceipt struct {
	Status    string `json:"status"`
	Hash      string `json:"hash"`
	Timestamp int64  `json:"timestamp"`
}
