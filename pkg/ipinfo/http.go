package ipinfo

import (
	"io"
	"strings"
)

func bodyToSingleLine(body io.Reader) (s string) {
	const maxBodySize = 1024
	b, err := io.ReadAll(io.LimitReader(body, maxBodySize))
	if err != nil {
		return ""
	}
	return toSingleLine(string(b))
}

func toSingleLine(s string) (line string) {
	line = strings.ReplaceAll(s, "\n", "")
	line = strings.ReplaceAll(line, "\r", "")
	line = strings.ReplaceAll(line, "  ", " ")
	line = strings.ReplaceAll(line, "  ", " ")
	return line
}
