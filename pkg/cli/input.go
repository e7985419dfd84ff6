package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/oisee/aoc-core/pkg/config"
)

// StdinIsTerminal reports whether standard input is an interactive terminal.
func StdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ReadInput reads the puzzle input named by path. "-" reads stdin. When
// path is the default and that file does not exist, piped stdin is used
// instead.
func ReadInput(path string) ([]byte, error) {
	return readInput(path, os.Stdin, StdinIsTerminal())
}

func readInput(path string, stdin io.Reader, tty bool) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if errors.Is(err, fs.ErrNotExist) && path == config.DefaultInput && !tty {
		return io.ReadAll(stdin)
	}
	return nil, fmt.Errorf("read input: %w", err)
}
