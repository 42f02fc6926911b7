package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		name   string
		buffer string
		want   []string
	}{
		{"empty", "", []string{}},
		{"single", "linux", []string{"linux"}},
		{"two", "linux--warframe", []string{"linux", "warframe"}},
		{"trailing separator", "linux--", []string{"linux"}},
		{"leading separator", "--linux", []string{"linux"}},
		{"doubled separator", "linux----warframe", []string{"linux", "warframe"}},
		{"only separators", "------", []string{}},
		{"single dash is content", "a-b--c", []string{"a-b", "c"}},
		{"odd dashes", "a---b", []string{"a", "-b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segments(tt.buffer))
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a--b--", Join([]string{"a", "b"}))
	assert.Equal(t, "", Join(nil))
	assert.Equal(t, []string{"a", "b"}, Segments(Join([]string{"a", "b"})))
}

func TestNormalizationIsIdempotent(t *testing.T) {
	buffers := []string{
		"",
		"a",
		"a--b",
		"--a----b--",
		"x--y--z",
		"memes----linux--funny---",
	}

	for _, buffer := range buffers {
		t.Run(buffer, func(t *testing.T) {
			once := Segments(buffer)
			assert.Equal(t, once, Segments(Join(once)))
			assert.Equal(t, Normalize(buffer), Normalize(Normalize(buffer)))
		})
	}

	// Not byte-identical when separators were irregular
	assert.NotEqual(t, "--a----b", Normalize("--a----b"))
	assert.Equal(t, "a--b--", Normalize("--a----b"))
}

func TestActive(t *testing.T) {
	tests := []struct {
		buffer string
		want   string
	}{
		{"", ""},
		{"lin", "lin"},
		{"linux--", ""},
		{"linux--war", "war"},
		{"a--b--c", "c"},
		{"a-b", "a-b"},
	}

	for _, tt := range tests {
		t.Run(tt.buffer, func(t *testing.T) {
			assert.Equal(t, tt.want, Active(tt.buffer))
		})
	}
}

func TestAccept(t *testing.T) {
	tests := []struct {
		name   string
		buffer string
		choice string
		want   string
	}{
		{"replace only segment", "lin", "linux", "linux--"},
		{"replace last segment", "memes--lin", "linux", "memes--linux--"},
		{"append after separator", "memes--", "linux", "memes--linux--"},
		{"empty buffer", "", "linux", "linux--"},
		{"empty choice drops active", "memes--lin", "", "memes--"},
		{"completed segments kept verbatim", "a----b--c", "cat", "a----b--cat--"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Accept(tt.buffer, tt.choice))
		})
	}
}

func TestTrimTrailing(t *testing.T) {
	assert.Equal(t, "memes--linux", TrimTrailing("memes--linux--"))
	assert.Equal(t, "memes", TrimTrailing("memes------"))
	assert.Equal(t, "", TrimTrailing("--"))
	assert.Equal(t, "memes-", TrimTrailing("memes-"))
	assert.Equal(t, "plain", TrimTrailing("plain"))
}
