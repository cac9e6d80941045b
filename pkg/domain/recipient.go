package domain

// RecipientInfo identifies who the invitation is addressed to.
// It is resolved once when a session starts and never mutated afterwards.
type RecipientInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// DefaultRecipient returns the recipient used when no launch parameters are given.
func DefaultRecipient() RecipientInfo {
	return RecipientInfo{
		Name:  DefaultRecipientName,
		Title: DefaultRecipientTitle,
	}
}
