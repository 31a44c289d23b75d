package argspec

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonNegativeInt(t *testing.T) {
	v, err := NonNegativeInt("7")
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = NonNegativeInt("-1")
	assert.EqualError(t, err, "value must be >= 0")

	_, err = NonNegativeInt("x")
	assert.Error(t, err)
}

func TestNonNegativeFloat(t *testing.T) {
	v, err := NonNegativeFloat("0.5")
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	_, err = NonNegativeFloat("-0.1")
	assert.EqualError(t, err, "value must be >= 0.0")
}

func TestExistingFITSFile(t *testing.T) {
	dir := t.TempDir()

	image := filepath.Join(dir, "image.fits")
	header := "SIMPLE  =                    T / conforms to FITS standard"
	require.NoError(t, os.WriteFile(image, []byte(header), 0o644))

	notFits := filepath.Join(dir, "fake.fits")
	require.NoError(t, os.WriteFile(notFits, []byte("hello"), 0o644))

	wrongExt := filepath.Join(dir, "image.txt")
	require.NoError(t, os.WriteFile(wrongExt, []byte(header), 0o644))

	v, err := ExistingFITSFile(image)
	require.NoError(t, err)
	assert.Equal(t, image, v)

	_, err = ExistingFITSFile(notFits)
	assert.ErrorContains(t, err, "FITS primary header")

	_, err = ExistingFITSFile(wrongExt)
	assert.ErrorContains(t, err, "not a FITS file name")

	_, err = ExistingFITSFile(filepath.Join(dir, "missing.fits"))
	assert.ErrorContains(t, err, "does not exist")
}

func TestBuiltinConverters(t *testing.T) {
	v, err := builtinConverter("duration")("1h30m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, v)

	v, err = builtinConverter("boolean")("true")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = builtinConverter("float")("2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	v, err = builtinConverter("string")("as-is")
	require.NoError(t, err)
	assert.Equal(t, "as-is", v)
}
