package chat

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrNotAnImage = errors.New("file is not an image")

// Image is a picture staged for the next message.
type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}

// LoadImage reads a file and stages it if its content is an image.
func LoadImage(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	return NewImage(filepath.Base(path), data)
}

// NewImage sniffs the content type. Anything other than image/* is rejected with ErrNotAnImage.
func NewImage(name string, data []byte) (Image, error) {
	detected := mimetype.Detect(data)
	mediaType, _, _ := strings.Cut(detected.String(), ";")
	if !strings.HasPrefix(mediaType, "image/") {
		return Image{}, fmt.Errorf("%w: %s is %s", ErrNotAnImage, name, mediaType)
	}
	return Image{
		Name:     name,
		MIMEType: mediaType,
		Data:     data,
	}, nil
}

// DataURL encodes the image the way the backend expects it, e.g. "data:image/png;base64,...".
func (image Image) DataURL() string {
	return "data:" + image.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(image.Data)
}
