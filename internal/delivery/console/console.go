package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// Console is a menu.LineIO over a plain reader and writer, normally stdin
// and stdout. Lines have no length limit.
type Console struct {
	r *bufio.Reader
	w io.Writer
}

func New(r io.Reader, w io.Writer) *Console {
	return &Console{r: bufio.NewReader(r), w: w}
}

// ReadLine blocks on the reader; ctx is only checked before reading since a
// terminal read cannot be interrupted.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := c.r.ReadString('\n')
	if err != nil {
		// a final line without a newline still counts
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

func (c *Console) Write(s string) error {
	_, err := io.WriteString(c.w, s)
	return err
}

func (c *Console) WriteLine(s string) error {
	return c.Write(s + "\n")
}
