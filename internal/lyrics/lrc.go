// Package lyrics parses LRC text carried by tracks and finds the line to
// show at a playback position.
package lyrics

import (
	"bufio"
	"cmp"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Line represents a single timestamped lyric line.
type Line struct {
	Time time.Duration
	Text string
}

// Lyrics contains parsed lyrics with optional metadata.
type Lyrics struct {
	Lines  []Line
	Title  string
	Artist string
	Album  string
}

// LineAt returns the index of the lyric line at the given playback position.
// Returns -1 if no line is active yet or if lyrics are unsynced.
func (l *Lyrics) LineAt(pos time.Duration) int {
	if l == nil || !l.IsSynced() {
		return -1
	}
	// First line starting after pos, minus one.
	i, _ := slices.BinarySearchFunc(l.Lines, pos, func(line Line, p time.Duration) int {
		if line.Time <= p {
			return -1
		}
		return 1
	})
	return i - 1
}

// TextAt returns the text of the line at pos, or "" when none is active.
func (l *Lyrics) TextAt(pos time.Duration) string {
	if i := l.LineAt(pos); i >= 0 {
		return l.Lines[i].Text
	}
	return ""
}

// IsSynced returns true if the lyrics have timestamps (synced).
func (l *Lyrics) IsSynced() bool {
	return slices.ContainsFunc(l.Lines, func(line Line) bool { return line.Time > 0 })
}

var (
	// [mm:ss], [mm:ss.xx] or [mm:ss:xx]
	stampRe = regexp.MustCompile(`\[(\d+):(\d+)(?:[.:](\d+))?\]`)
	// [ar:Artist] style header tags
	tagRe = regexp.MustCompile(`^\[([a-z]+):(.+)\]$`)
)

// Parse reads LRC text carried by a track. Text without any timed line
// yields nil.
func Parse(lrc string) *Lyrics {
	if strings.TrimSpace(lrc) == "" {
		return nil
	}
	l, err := ParseLRC(strings.NewReader(lrc))
	if err != nil || len(l.Lines) == 0 {
		return nil
	}
	return l
}

// ParseLRC reads LRC lyrics. A text may carry several stamps, one per
// occurrence; stamps without text are dropped. Lines come out in time order.
func ParseLRC(r io.Reader) (*Lyrics, error) {
	l := &Lyrics{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		l.parseLine(strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	slices.SortStableFunc(l.Lines, func(a, b Line) int { return cmp.Compare(a.Time, b.Time) })
	return l, nil
}

func (l *Lyrics) parseLine(line string) {
	if tag := tagRe.FindStringSubmatch(line); tag != nil {
		value := strings.TrimSpace(tag[2])
		switch tag[1] {
		case "ar":
			l.Artist = value
		case "ti":
			l.Title = value
		case "al":
			l.Album = value
		}
		return
	}
	stamps := stampRe.FindAllStringSubmatch(line, -1)
	text := strings.TrimSpace(stampRe.ReplaceAllString(line, ""))
	if text == "" {
		return
	}
	for _, m := range stamps {
		l.Lines = append(l.Lines, Line{Time: stampTime(m), Text: text})
	}
}

// stampTime converts stampRe submatches. The fraction is read as
// milliseconds after padding or cutting it to three digits.
func stampTime(m []string) time.Duration {
	minutes, _ := strconv.Atoi(m[1])
	seconds, _ := strconv.Atoi(m[2])
	var millis int
	if m[3] != "" {
		millis, _ = strconv.Atoi((m[3] + "00")[:3])
	}
	return time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
}
