// Package segment splits and joins composed file names.
//
// A name buffer is a list of tag segments joined by Separator. The last
// segment is the one being typed; it is what the suggestion engine is asked
// about and what an accepted suggestion replaces.
package segment

import "strings"

// Separator delimits tag segments in a composed name
const Separator = "--"

// Segments splits buffer on Separator and drops empty pieces, keeping order
func Segments(buffer string) []string {
	parts := strings.Split(buffer, Separator)
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// Join concatenates segments, each followed by Separator. The trailing
// separator lets the next typed character start a fresh segment.
func Join(segments []string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s)
		b.WriteString(Separator)
	}
	return b.String()
}

// Normalize collapses irregular separators: Join(Segments(buffer))
func Normalize(buffer string) string {
	return Join(Segments(buffer))
}

// Active returns the segment being typed. It is empty when the buffer is
// empty or ends with a separator.
func Active(buffer string) string {
	if buffer == "" || strings.HasSuffix(buffer, Separator) {
		return ""
	}
	idx := strings.LastIndex(buffer, Separator)
	if idx < 0 {
		return buffer
	}
	return buffer[idx+len(Separator):]
}

// Accept replaces the active segment with choice and appends a separator.
// Completed segments are kept as typed.
func Accept(buffer, choice string) string {
	head := buffer[:len(buffer)-len(Active(buffer))]
	if choice == "" {
		return head
	}
	return head + choice + Separator
}

// TrimTrailing removes every trailing Separator from name
func TrimTrailing(name string) string {
	for strings.HasSuffix(name, Separator) {
		name = strings.TrimSuffix(name, Separator)
	}
	return name
}
