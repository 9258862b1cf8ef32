package util

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ReadLine reads a full line without the trailing newline. Returns io.EOF once the
// reader is drained.
func ReadLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
