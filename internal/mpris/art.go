package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

// artURL turns a track cover into an MPRIS art URL. Remote covers are passed
// through; local files must exist.
func artURL(cover string) string {
	switch {
	case cover == "":
		return ""
	case strings.HasPrefix(cover, "http://"), strings.HasPrefix(cover, "https://"), strings.HasPrefix(cover, "file://"):
		return cover
	}
	abs, err := filepath.Abs(cover)
	if err != nil {
		return ""
	}
	if _, err := os.Stat(abs); err != nil {
		return ""
	}
	return "file://" + abs
}
