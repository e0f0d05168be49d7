package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Attr is one extra key/value on a log record.
type Attr struct {
	Key   string
	Value string
}

// Entry is a parsed slog JSON record.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   []Attr
	Raw     string
	// Parsed is false when Raw was not a JSON record.
	Parsed bool
}

// ParseLine decodes one JSON log line. Lines that are not JSON are returned
// as unparsed info entries carrying the raw text.
func ParseLine(line string) Entry {
	entry := Entry{Raw: line, Level: slog.LevelInfo, Message: line}

	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return entry
	}
	entry.Parsed = true
	entry.Message = ""

	for key, value := range rec {
		switch key {
		case slog.TimeKey:
			if s, ok := value.(string); ok {
				if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
					entry.Time = t
				}
			}
		case slog.LevelKey:
			if s, ok := value.(string); ok {
				var lvl slog.Level
				if err := lvl.UnmarshalText([]byte(s)); err == nil {
					entry.Level = lvl
				}
			}
		case slog.MessageKey:
			entry.Message = fmt.Sprint(value)
		default:
			entry.Attrs = append(entry.Attrs, Attr{Key: key, Value: formatValue(value)})
		}
	}
	sort.Slice(entry.Attrs, func(i, j int) bool { return entry.Attrs[i].Key < entry.Attrs[j].Key })
	return entry
}

// Parse converts lines into entries, dropping blank lines and entries below
// minLevel.
func Parse(lines []string, minLevel slog.Level) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry := ParseLine(line)
		if entry.Level < minLevel {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// Attr returns the value of key, if present.
func (e Entry) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// String renders the entry on one line.
func (e Entry) String() string {
	if !e.Parsed {
		return e.Raw
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s %s", e.Level.String(), e.Message)
	for _, a := range e.Attrs {
		fmt.Fprintf(&b, " %s=%s", a.Key, a.Value)
	}
	return b.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return "null"
	case float64, bool:
		return fmt.Sprint(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
