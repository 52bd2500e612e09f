package dto

// SubmitRegistrationRequest is the public submission payload: the raw form
// field values keyed by the names the synthesized form specified.
type SubmitRegistrationRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// RegistrationResult reports a successful submission. MailQueued is false
// when the registration was stored but the confirmation outbox entry could
// not be written.
type RegistrationResult struct {
	RegistrationID string `json:"registrationId"`
	MailQueued     bool   `json:"mailQueued"`
}
