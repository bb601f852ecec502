package catalog

import (
	"encoding/json"
	"time"
)

const (
	EventSubmissionSucceeded = "SubmissionSucceeded"
	EventSubmissionFailed    = "SubmissionFailed"
)

// Flow names, used in logs and events.
const (
	FlowLogin         = "login"
	FlowCreateProduct = "create_product"
)

// Error kinds carried in SubmissionPayload.ErrorKind.
const (
	ErrorKindTransport = "TRANSPORT"
	ErrorKindRejected  = "REJECTED"
	ErrorKindMalformed = "MALFORMED_RESPONSE"
	ErrorKindSession   = "SESSION"
	ErrorKindTimeout   = "TIMEOUT"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"` // e.g., "catalogctl"
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// SubmissionPayload is the diagnostic record of one finished submission.
// It carries the raw failure detail that the user-facing status hides, and
// never the credential or the session token.
type SubmissionPayload struct {
	Flow          string `json:"flow"`
	CorrelationID string `json:"correlation_id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
	ErrorKind     string `json:"error_kind,omitempty"`
	ErrorDetail   string `json:"error_detail,omitempty"`
	HTTPStatus    int    `json:"http_status,omitempty"`
	DurationMS    int64  `json:"duration_ms"`
}
