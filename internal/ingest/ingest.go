// Package ingest parses streamed multipart/form-data uploads into an
// in-memory audio payload plus accompanying text fields. The stream is
// consumed incrementally and never touches the filesystem.
package ingest

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"ai-voice-chat-service/internal/fault"
	"ai-voice-chat-service/internal/models"
)

// AudioFieldName is the form field carrying the uploaded audio file.
const AudioFieldName = "audio"

const defaultMimeType = "audio/wav"

// Limits defines safety guardrails for form parsing. These prevent
// unbounded buffering of hostile or broken uploads.
type Limits struct {
	MaxAudioBytes int64 // Max buffered audio per request
	MaxFieldBytes int64 // Max size of a single text field
}

// DefaultLimits returns sensible default limits.
func DefaultLimits() Limits {
	return Limits{
		MaxAudioBytes: 10 * 1024 * 1024, // 10MB, matches the client recorder cap
		MaxFieldBytes: 64 * 1024,
	}
}

// Form is the result of parsing a multipart request body.
type Form struct {
	// Audio is the buffered file payload. May be empty if the audio part
	// was absent or zero-length; callers must reject empty payloads
	// before any downstream call.
	Audio models.AudioPayload

	// Fields maps non-file field names to their UTF-8 values.
	Fields map[string]string
}

// Parse consumes a multipart/form-data body. The content type must carry
// a boundary parameter. Bytes of the part named "audio" accumulate into a
// single buffer; if the part appears more than once, the last fully
// received one wins. Parsing is done only once the underlying stream
// signals end-of-input.
func Parse(contentType string, body io.Reader, limits Limits) (*Form, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/form-data") {
		return nil, fault.New(fault.KindClientInput, "expected multipart/form-data content type")
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, fault.New(fault.KindClientInput, "multipart boundary missing")
	}

	form := &Form{Fields: make(map[string]string)}
	mr := multipart.NewReader(body, boundary)

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fault.New(fault.KindTransport, "reading multipart stream: %v", err)
		}

		name := part.FormName()
		if name == AudioFieldName && part.FileName() != "" {
			payload, err := readAudioPart(part, limits.MaxAudioBytes)
			if err != nil {
				return nil, err
			}
			form.Audio = payload
			continue
		}

		value, err := readBounded(part, limits.MaxFieldBytes)
		if err != nil {
			return nil, fault.New(fault.KindTransport, "reading field %q: %v", name, err)
		}
		if int64(len(value)) > limits.MaxFieldBytes {
			return nil, fault.New(fault.KindClientInput, "field %q exceeds %d bytes", name, limits.MaxFieldBytes)
		}
		if name != "" {
			form.Fields[name] = string(value)
		}
	}

	return form, nil
}

func readAudioPart(part *multipart.Part, maxBytes int64) (models.AudioPayload, error) {
	data, err := readBounded(part, maxBytes)
	if err != nil {
		return models.AudioPayload{}, fault.New(fault.KindTransport, "reading audio part: %v", err)
	}
	if int64(len(data)) > maxBytes {
		return models.AudioPayload{}, fault.New(fault.KindClientInput, "audio exceeds %d bytes", maxBytes)
	}

	mimeType := part.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = defaultMimeType
	}

	return models.AudioPayload{
		Bytes:    data,
		MimeType: mimeType,
		Filename: part.FileName(),
	}, nil
}

// readBounded reads at most max+1 bytes so the caller can detect overflow
// without buffering the whole oversized part.
func readBounded(r io.Reader, max int64) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(r, max+1)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
