package messaging

const (
	ExchangeName = "curfew.epass.events"

	RoutingKeyPassSubmitted = "pass.submitted"
	RoutingKeyPassDecided   = "pass.decided"
)

type PassSubmittedMessage struct {
	PassID      string `json:"pass_id"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	CategoryID  string `json:"category_id"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Timestamp   int64  `json:"timestamp"`
}

type PassDecidedMessage struct {
	PassID     string `json:"pass_id"`
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	NewStatus  string `json:"new_status"`
	AdminNotes string `json:"admin_notes"`
	ApprovedBy string `json:"approved_by"`
	Timestamp  int64  `json:"timestamp"`
}
