package domain

import (
	"fmt"
)

// Channel identifies the named message channel an inbound bridge message
// arrived on. The embedded surface registers one handler per channel.
type Channel string

const (
	// ChannelLoad signals the surface finished loading and wants content.
	ChannelLoad Channel = "load"
	// ChannelContentChanged carries the full replacement document text.
	ChannelContentChanged Channel = "contentChanged"
	// ChannelScrolled carries a fractional scroll offset (surface to host only).
	ChannelScrolled Channel = "scrolled"
	// ChannelClicked signals a click inside the surface (overlay dismissal).
	ChannelClicked Channel = "clicked"
	// ChannelError carries a surface-side error description.
	ChannelError Channel = "error"
	// ChannelUploadRequested carries a file the user wants uploaded.
	ChannelUploadRequested Channel = "upload"
)

// IsValid returns true for a known channel.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelLoad, ChannelContentChanged, ChannelScrolled,
		ChannelClicked, ChannelError, ChannelUploadRequested:
		return true
	}
	return false
}

// Message is a tagged message received from the embedded surface.
// Payload is untyped at the boundary; the accessor methods coerce it to the
// channel's expected shape and fail without panicking on malformed input.
type Message struct {
	Channel Channel
	Payload any
}

// Text coerces the payload to a string. Used by the ContentChanged and
// Error channels, whose payload is the raw string body.
func (m Message) Text() (string, error) {
	if m.Payload == nil {
		return "", nil
	}
	s, ok := m.Payload.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s payload is %T, want string", ErrMalformedPayload, m.Channel, m.Payload)
	}
	return s, nil
}

// ScrollFactor coerces a Scrolled payload of the form {"y0": <fraction>}.
func (m Message) ScrollFactor() (float64, error) {
	body, ok := m.Payload.(map[string]any)
	if !ok {
		return 0, fmt.Errorf("%w: scrolled payload is %T, want object", ErrMalformedPayload, m.Payload)
	}
	y, ok := toFloat(body["y0"])
	if !ok {
		return 0, fmt.Errorf("%w: scrolled payload missing numeric y0", ErrMalformedPayload)
	}
	return y, nil
}

// UploadRequest coerces an UploadRequested payload of the form
// {"name": string, "type": string, "data": []byte}. The data field also
// accepts a numeric array, which is how byte sequences cross a JSON
// message boundary.
func (m Message) UploadRequest() (*UploadRequest, error) {
	body, ok := m.Payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: upload payload is %T, want object", ErrMalformedPayload, m.Payload)
	}

	name, ok := body["name"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: upload payload missing file name", ErrMalformedPayload)
	}
	mime, ok := body["type"].(string)
	if !ok || mime == "" {
		return nil, fmt.Errorf("%w: upload payload missing mime type", ErrMalformedPayload)
	}
	data, err := toBytes(body["data"])
	if err != nil {
		return nil, err
	}

	return &UploadRequest{
		FileName: name,
		MimeType: mime,
		Data:     data,
	}, nil
}

// toFloat accepts the numeric types a bridge payload may arrive as.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// toBytes coerces the data field of an upload payload.
func toBytes(v any) ([]byte, error) {
	switch d := v.(type) {
	case []byte:
		if len(d) == 0 {
			return nil, fmt.Errorf("%w: upload payload has empty data", ErrMalformedPayload)
		}
		return d, nil
	case []any:
		if len(d) == 0 {
			return nil, fmt.Errorf("%w: upload payload has empty data", ErrMalformedPayload)
		}
		out := make([]byte, len(d))
		for i, item := range d {
			n, ok := toFloat(item)
			if !ok || n < 0 || n > 255 {
				return nil, fmt.Errorf("%w: upload data element %d is not a byte", ErrMalformedPayload, i)
			}
			out[i] = byte(n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: upload payload missing data", ErrMalformedPayload)
	}
}
