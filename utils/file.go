package utils

import (
	"github.com/gabriel-vasile/mimetype"
)

// DetectFileContentType sniffs the MIME type of the named file from its content.
func DetectFileContentType(name string) (string, error) {
	mime, err := mimetype.DetectFile(name)
	if err != nil {
		return "", err
	}
	return mime.String(), nil
}

// DetectContentType sniffs the MIME type of data.
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

// IsContentType reports whether the sniffed type of data is one of the
// given MIME types. Parameters such as charset are ignored.
func IsContentType(data []byte, types ...string) bool {
	mime := mimetype.Detect(data)
	for _, t := range types {
		if mime.Is(t) {
			return true
		}
	}
	return false
}
