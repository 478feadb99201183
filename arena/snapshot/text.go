package snapshot

import (
	"strconv"
	"strings"

	"github.com/joshuapare/wordarena/arena/blocks"
)

// FormatText renders holes as "[off, size] - [off, size]". An empty list
// renders as "".
func FormatText(holes []blocks.Hole) string {
	var sb strings.Builder
	for i, h := range holes {
		if i > 0 {
			sb.WriteString(" - ")
		}
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(h.Offset))
		sb.WriteString(", ")
		sb.WriteString(strconv.Itoa(h.Size))
		sb.WriteByte(']')
	}
	return sb.String()
}
