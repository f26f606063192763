package fsutil

import (
	"github.com/go-enry/go-enry/v2"
)

// Kind classifies a file for patching purposes.
type Kind int

const (
	// KindSource is an ordinary, hand-written text file.
	KindSource Kind = iota
	// KindBinary is a file whose content is not text.
	KindBinary
	// KindGenerated is produced by a tool and carries a generated marker.
	KindGenerated
)

func (k Kind) String() string {
	switch k {
	case KindBinary:
		return "binary"
	case KindGenerated:
		return "generated"
	default:
		return "source"
	}
}

// Classify inspects a file's name and content.
func Classify(path string, content []byte) Kind {
	if enry.IsBinary(content) {
		return KindBinary
	}
	if enry.IsGenerated(path, content) {
		return KindGenerated
	}
	return KindSource
}
