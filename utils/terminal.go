package utils

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Fallback terminal dimensions used when neither the terminal nor the
// environment can tell the size.
const (
	DefaultColumns = 80
	DefaultLines   = 25
)

// TerminalSize returns the number of columns and lines of the terminal.
// It queries stdout, stdin and stderr in turn and falls back to the
// COLUMNS and LINES environment variables, then to an 80x25 screen.
func TerminalSize() (cols, rows int) {
	fds := []int{int(os.Stdout.Fd()), int(os.Stdin.Fd()), int(os.Stderr.Fd())}
	return terminalSize(term.GetSize, os.Getenv, fds...)
}

func terminalSize(getSize func(fd int) (int, int, error), getenv func(string) string, fds ...int) (int, int) {
	for _, fd := range fds {
		if w, h, err := getSize(fd); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return envInt(getenv, "COLUMNS", DefaultColumns), envInt(getenv, "LINES", DefaultLines)
}

func envInt(getenv func(string) string, key string, def int) int {
	if v, err := strconv.Atoi(getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

// CanvasSize returns the pixel dimensions of a canvas covering cols x rows
// terminal cells.
func CanvasSize(cols, rows int) (int, int) {
	return cols * 2, rows * 4
}

// DetectFileContentType sniffs the MIME type of a file from its first bytes.
func DetectFileContentType(fname string) (string, error) {
	file, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer file.Close()

	// Only the first 512 bytes are used to sniff the content type.
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && n == 0 {
		return "", fmt.Errorf("cannot read %s: %w", fname, err)
	}
	return http.DetectContentType(buffer[:n]), nil
}
