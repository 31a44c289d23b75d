package argspec

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aledsdavies/cliarg/core/types"
)

// builtinConverter returns the converter for a declared value type
func builtinConverter(t types.ParamType) Converter {
	switch t {
	case types.TypeInt:
		return func(token string) (any, error) {
			return strconv.Atoi(strings.TrimSpace(token))
		}
	case types.TypeFloat:
		return func(token string) (any, error) {
			return strconv.ParseFloat(strings.TrimSpace(token), 64)
		}
	case types.TypeBool:
		return func(token string) (any, error) {
			return strconv.ParseBool(strings.TrimSpace(token))
		}
	case types.TypeDuration:
		return func(token string) (any, error) {
			return types.ParseDuration(token)
		}
	default:
		return func(token string) (any, error) {
			return token, nil
		}
	}
}

// NonNegativeInt accepts integers >= 0
func NonNegativeInt(token string) (any, error) {
	v, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}
	if v < 0 {
		return nil, fmt.Errorf("value must be >= 0")
	}
	return v, nil
}

// NonNegativeFloat accepts floats >= 0.0
func NonNegativeFloat(token string) (any, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return nil, err
	}
	if v < 0 {
		return nil, fmt.Errorf("value must be >= 0.0")
	}
	return v, nil
}

// fitsExtensions lists the file name extensions accepted for FITS images
var fitsExtensions = []string{".fits", ".fit", ".fts", ".fits.gz", ".fit.gz", ".fts.gz"}

// fitsMagic is the first header card of every primary FITS HDU
var fitsMagic = []byte("SIMPLE  =")

// ExistingFITSFile accepts the path of an existing, readable FITS file.
// The value is returned as the cleaned path.
func ExistingFITSFile(token string) (any, error) {
	path := filepath.Clean(token)

	lower := strings.ToLower(path)
	matched := false
	for _, ext := range fitsExtensions {
		if strings.HasSuffix(lower, ext) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, fmt.Errorf("%s is not a FITS file name (expected one of %s)", path, strings.Join(fitsExtensions, ", "))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%s does not exist", path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	// Compressed files are not inspected
	if strings.HasSuffix(lower, ".gz") {
		return path, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s is not readable: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	header := make([]byte, len(fitsMagic))
	if _, err := io.ReadFull(f, header); err != nil || !bytes.Equal(header, fitsMagic) {
		return nil, fmt.Errorf("%s does not start with a FITS primary header", path)
	}

	return path, nil
}
