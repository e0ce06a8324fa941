package snapshot

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/danlynn/compare-with-snapshot/internal/snaperr"
)

// metadataDateLayout is the <date> format snapper writes, always in UTC.
const metadataDateLayout = "2006-01-02 15:04:05"

// readCreated returns the creation instant recorded in a snapshot's metadata file.
func (f *Finder) readCreated(metadataPath string) (time.Time, error) {
	data, err := f.fs.ReadFile(metadataPath)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w: %v", metadataPath, snaperr.ErrMetadataMalformed, err)
	}

	raw, err := findDate(data)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w: %v", metadataPath, snaperr.ErrMetadataMalformed, err)
	}

	t, err := time.ParseInLocation(metadataDateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w: %v", metadataPath, snaperr.ErrMetadataMalformed, err)
	}
	return t, nil
}

var errNoDate = errors.New("no <date> element")

// findDate returns the text of the first <date> element at any depth.
func findDate(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return "", errNoDate
		}
		if err != nil {
			return "", err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "date" {
			continue
		}

		var text string
		if err := dec.DecodeElement(&text, &start); err != nil {
			return "", err
		}
		return strings.TrimSpace(text), nil
	}
}
