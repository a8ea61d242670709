package medscape

import (
	"bytes"
	"fmt"
)

// Callback is the JSONP callback name requested from the lookup endpoint
const Callback = "MDICshowResults"

var (
	envelopePrefix = []byte(Callback + "(")
	envelopeSuffix = []byte(");")
)

// UnwrapEnvelope strips the callback wrapper from a lookup body and returns
// the JSON inside it
func UnwrapEnvelope(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)

	if !bytes.HasPrefix(trimmed, envelopePrefix) {
		return nil, fmt.Errorf("%w: body does not start with %q", ErrEnvelopeMismatch, envelopePrefix)
	}
	trimmed = trimmed[len(envelopePrefix):]

	if !bytes.HasSuffix(trimmed, envelopeSuffix) {
		return nil, fmt.Errorf("%w: body does not end with %q", ErrEnvelopeMismatch, envelopeSuffix)
	}
	trimmed = trimmed[:len(trimmed)-len(envelopeSuffix)]

	return bytes.TrimSpace(trimmed), nil
}
