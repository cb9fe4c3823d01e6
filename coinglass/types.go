package coinglass

import (
	"encoding/json"
)

// ProxyRequest is the normalized inbound query, immutable once parsed
type ProxyRequest struct {
	// Endpoint is the upstream path fragment, e.g. "/futures/liquidation/history"
	Endpoint string
	// Symbol is an optional trading symbol, e.g. "btc"
	Symbol string
	// Interval is an optional candle interval, e.g. "4h"
	Interval string
	// Limit is an optional row count
	Limit string
}

// OutcomeKind tags the result of an upstream call
type OutcomeKind int

const (
	// OutcomeSuccess means the upstream returned a payload to forward verbatim
	OutcomeSuccess OutcomeKind = iota
	// OutcomePlanLimited means the upstream rejected the request due to plan tier
	OutcomePlanLimited
	// OutcomeTransportFailure means the upstream returned a non-success HTTP status
	OutcomeTransportFailure
)

// PlanLimitReason records how a plan limitation was detected
type PlanLimitReason int

const (
	// PlanLimitEndpoint: the whole endpoint family is gated behind a higher tier,
	// detected from a non-success transport status
	PlanLimitEndpoint PlanLimitReason = iota
	// PlanLimitParameter: the transport call succeeded but the body carries an
	// error code for an unsupported parameter
	PlanLimitParameter
)

// Outcome is the classified result of an upstream call.
// Kind selects which of the remaining fields are meaningful.
type Outcome struct {
	Kind OutcomeKind

	// Status and StatusText are set for transport failures
	Status     int
	StatusText string

	// Reason is set for plan-limited outcomes
	Reason PlanLimitReason

	// Payload is the raw upstream body for successful outcomes
	Payload json.RawMessage
}

// statusCode accepts both string and numeric upstream code fields
type statusCode string

func (c *statusCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = statusCode(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = statusCode(n.String())
	return nil
}

// upstreamEnvelope is the top-level status shape of Coinglass responses
type upstreamEnvelope struct {
	Code statusCode `json:"code"`
	Msg  string     `json:"msg"`
}

// ok reports whether the body's own code field signals success.
// An absent code is treated as success so plain payloads pass through.
func (e upstreamEnvelope) ok() bool {
	return e.Code == "" || e.Code == "0"
}

// FallbackData is the inner payload of the plan-limited envelope
type FallbackData struct {
	Message    string `json:"message"`
	Limitation string `json:"limitation"`
	Upgrade    string `json:"upgrade"`
}

// FallbackEnvelope is the stable shape returned for plan-limited requests.
// It is sent with HTTP 200 so browser consumers can branch on fallback:true
// instead of special-casing non-2xx statuses.
type FallbackEnvelope struct {
	Code     string       `json:"code"`
	Msg      string       `json:"msg"`
	Error    string       `json:"error"`
	Fallback bool         `json:"fallback"`
	Data     FallbackData `json:"data"`
}

const upgradeURL = "https://www.coinglass.com/pricing"

// NewFallbackEnvelope builds the plan-limited envelope for the given reason.
// The texts differ between transport-detected and body-detected limitations
// but the shape is identical.
func NewFallbackEnvelope(reason PlanLimitReason) FallbackEnvelope {
	envelope := FallbackEnvelope{
		Code:     "403",
		Msg:      "Hobbyist plan limitations",
		Fallback: true,
		Data: FallbackData{
			Limitation: "Liquidation and funding rate history require a paid Coinglass plan",
			Upgrade:    upgradeURL,
		},
	}

	switch reason {
	case PlanLimitParameter:
		envelope.Error = "Requested parameters are not available on the current Coinglass plan"
		envelope.Data.Message = "The requested instrument filter requires a higher Coinglass plan"
	default:
		envelope.Error = "This endpoint is not available on the current Coinglass plan"
		envelope.Data.Message = "Data for this endpoint requires a higher Coinglass plan"
	}

	return envelope
}
