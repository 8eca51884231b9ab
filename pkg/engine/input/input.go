package input

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// KeyReader decodes single key presses from a byte stream
type KeyReader struct {
	r io.ByteReader
}

// NewKeyReader wraps r
func NewKeyReader(r io.Reader) *KeyReader {
	if br, ok := r.(io.ByteReader); ok {
		return &KeyReader{r: br}
	}
	return &KeyReader{r: bufio.NewReader(r)}
}

// ReadKey returns the code of the next key press: a lower-cased printable
// character, "enter", "space", "escape", "ctrl_c" or an "arrow_*" name.
// Unknown escape sequences and control bytes are skipped.
func (k *KeyReader) ReadKey() (RawInput, error) {
	for {
		b, err := k.r.ReadByte()
		if err != nil {
			return RawInput{}, err
		}
		if code := k.decode(b); code != "" {
			return RawInput{Device: DeviceTerminal, Code: code}, nil
		}
	}
}

func (k *KeyReader) decode(b byte) string {
	switch {
	case b == 3:
		return "ctrl_c"
	case b == '\r' || b == '\n':
		return "enter"
	case b == ' ':
		return "space"
	case b == 0x1b:
		return k.escape()
	case b > 32 && b < 127:
		return strings.ToLower(string(rune(b)))
	}
	return ""
}

// escape reads the rest of a CSI or SS3 sequence after ESC. A lone ESC
// at the end of the stream is reported as "escape".
func (k *KeyReader) escape() string {
	b2, err := k.r.ReadByte()
	if err != nil {
		return "escape"
	}
	if b2 != '[' && b2 != 'O' {
		return "escape"
	}
	b3, err := k.r.ReadByte()
	if err != nil {
		return ""
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}
	return ""
}

// MakeRaw puts stdin into raw mode and returns a function restoring it
func MakeRaw() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() {
		term.Restore(fd, oldState)
	}, nil
}
