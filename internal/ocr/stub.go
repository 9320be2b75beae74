package ocr

import "context"

// Stub is a canned-response recognizer for tests and demo mode.
// It never touches an OCR engine.
type Stub struct {
	// NameValue overrides the reported engine name (default "stub").
	NameValue string
	// Page is returned from every Recognize call (after validation).
	Page *Page
	// Err, if set, is returned instead.
	Err error
}

// Name returns the stub's engine name.
func (s *Stub) Name() string {
	if s.NameValue != "" {
		return s.NameValue
	}
	return "stub"
}

// Recognize returns the canned page with malformed detections dropped.
func (s *Stub) Recognize(ctx context.Context, image []byte) (*Page, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Page == nil {
		return &Page{}, nil
	}
	// Copy so callers can't mutate the canned page between calls.
	page := &Page{
		Detections: append([]Detection(nil), s.Page.Detections...),
		Width:      s.Page.Width,
		Height:     s.Page.Height,
	}
	return sanitize(page), nil
}

var _ Recognizer = (*Stub)(nil)
var _ Recognizer = (*Tesseract)(nil)
var _ Recognizer = (*Vision)(nil)
