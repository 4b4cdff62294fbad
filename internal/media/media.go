// Package media validates uploaded audio and extracts duration metadata.
package media

import (
	"bytes"
	"time"

	"github.com/go-audio/wav"
	"github.com/tcolgate/mp3"
)

// AllowedMimeTypes is the upload allow-list. Anything else is rejected at
// the boundary, before any network call.
var AllowedMimeTypes = map[string]bool{
	"audio/mpeg": true,
	"audio/mp3":  true,
	"audio/wav":  true,
}

func MimeAllowed(mimeType string) bool {
	return AllowedMimeTypes[mimeType]
}

// Duration returns the audio duration in whole seconds, best effort.
// Extraction failure is not an error: duration is cosmetic, so any
// unparseable buffer yields 0 and ingestion continues.
func Duration(buf []byte, mimeType string) int {
	switch mimeType {
	case "audio/wav":
		return wavDuration(buf)
	case "audio/mpeg", "audio/mp3":
		return mp3Duration(buf)
	default:
		return 0
	}
}

func mp3Duration(buf []byte) int {
	dec := mp3.NewDecoder(bytes.NewReader(buf))

	var (
		frame   mp3.Frame
		skipped int
		total   time.Duration
	)
	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			break
		}
		total += frame.Duration()
	}
	return int(total.Round(time.Second).Seconds())
}

func wavDuration(buf []byte) int {
	dec := wav.NewDecoder(bytes.NewReader(buf))
	d, err := dec.Duration()
	if err != nil {
		return 0
	}
	return int(d.Round(time.Second).Seconds())
}
