package synth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	clierrors "github.com/aledsdavies/cliarg/pkgs/errors"
)

// argFilePrefix marks a token naming a file of further arguments
const argFilePrefix = "@"

// maxArgFileDepth bounds argument files that include each other
const maxArgFileDepth = 16

// expandArgFiles replaces every "@path" token with the arguments read from
// path, one per non-empty line. Argument files may reference other files.
// Tokens after "--" are left alone.
func expandArgFiles(args []string) ([]string, error) {
	return expandArgFilesDepth(args, 0)
}

func expandArgFilesDepth(args []string, depth int) ([]string, error) {
	if depth > maxArgFileDepth {
		return nil, clierrors.NewUsageError("argument files nested more than %d deep", maxArgFileDepth)
	}

	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, argFilePrefix) || arg == argFilePrefix {
			out = append(out, arg)
			continue
		}

		lines, err := readArgFile(strings.TrimPrefix(arg, argFilePrefix))
		if err != nil {
			return nil, err
		}
		expanded, err := expandArgFilesDepth(lines, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func readArgFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, clierrors.Wrap(clierrors.ErrUsage, fmt.Sprintf("cannot read argument file %s", path), err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, clierrors.Wrap(clierrors.ErrUsage, fmt.Sprintf("cannot read argument file %s", path), err)
	}
	return lines, nil
}
