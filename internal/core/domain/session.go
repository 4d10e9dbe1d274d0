package domain

// Flash is a one-shot outcome notice queued on the session and consumed by
// the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// SessionData is the record held by the session store under an opaque id.
// AccountID is zero for anonymous visitors; the CSRF token is minted with
// the session and stays stable for its whole lifetime.
type SessionData struct {
	AccountID int64   `json:"account_id"`
	CSRFToken string  `json:"csrf_token"`
	Flashes   []Flash `json:"flashes,omitempty"`
}
