package match

import "context"

// Box is a pixel-space bounding box of a recognized segment.
type Box struct {
	X, Y, W, H int
}

// Segment is one unit of recognized text, bounded by the OCR engine's
// own segmentation. Confidence is advisory: the Matcher attempts every
// segment regardless of its value.
type Segment struct {
	Text       string
	Confidence float64
	Box        *Box
}

// Document is the full output of one OCR pass.
type Document struct {
	Segments []Segment
}

// Recognizer is the OCR collaborator: it turns an image into recognized
// text segments. Supplying it as a capability keeps the matching core
// testable without an OCR engine present.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (*Document, error)
}
