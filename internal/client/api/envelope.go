package api

import "encoding/json"

// Envelope is the uniform wrapper the backend uses for every JSON response:
// {success, data?, message?, error?}.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`

	raw json.RawMessage
}

// Decode unmarshals the envelope's data payload into v.
func (e *Envelope) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}

// DecodeRaw unmarshals the whole response body into v. A few endpoints
// (registration) put their payload next to "success" instead of under "data".
func (e *Envelope) DecodeRaw(v any) error {
	return json.Unmarshal(e.raw, v)
}

// ParseEnvelope decodes a raw response body into an Envelope, keeping the
// body around for DecodeRaw.
func ParseEnvelope(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	env.raw = raw
	return &env, nil
}

// FailureMessage returns the error text carried by the envelope, preferring
// the "error" field the backend uses for failures.
func (e *Envelope) FailureMessage() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// GatewayError describes a failed gateway call: any non-2xx response other
// than 401 and 404 (those map to sentinels), a transport failure, or a
// timeout. Message is human-readable and sourced from the response envelope
// when one was present.
type GatewayError struct {
	Message string
	Status  int
	RawBody []byte
	cause   error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "an unexpected error occurred"
}

func (e *GatewayError) Unwrap() error {
	return e.cause
}
