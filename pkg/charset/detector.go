package charset

import (
	"github.com/saintfish/chardet"
)

// Detector guesses the charset of a byte payload. It is an optional
// capability of the Resolver: absence simply skips the detection step.
type Detector interface {
	// DetectBest returns the most likely IANA charset name for b.
	DetectBest(b []byte) (string, error)
}

// chardetDetector adapts the saintfish/chardet statistical detector.
type chardetDetector struct {
	detector *chardet.Detector
}

// NewChardetDetector returns a Detector backed by chardet's text detector.
func NewChardetDetector() Detector {
	return &chardetDetector{detector: chardet.NewTextDetector()}
}

func (d *chardetDetector) DetectBest(b []byte) (string, error) {
	result, err := d.detector.DetectBest(b)
	if err != nil {
		return "", err
	}
	return result.Charset, nil
}
