package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"PPD/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *models.FeatureResult {
	return &models.FeatureResult{
		Filename: "lena.tif",
		Path:     "/data/cover/lena.tif",
		Features: []float64{0, 0.5, 1},
		Seed:     3,
		Bitrate:  1,
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, "text")
	require.NoError(t, err)

	require.NoError(t, w.Write(sample()))
	require.NoError(t, w.Flush())
	assert.Equal(t, "0.000000 0.500000 1.000000 lena.tif\n", buf.String())
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, "csv")
	require.NoError(t, err)

	r := sample()
	require.NoError(t, w.Write(r))
	r.Label = models.LabelStego
	require.NoError(t, w.Write(r))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "0.000000,0.500000,1.000000,lena.tif", lines[0])
	assert.Equal(t, "0.000000,0.500000,1.000000,stego", lines[1])
}

func TestCSVWriter_LabelledRecordsAreNumeric(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, "csv")
	require.NoError(t, err)

	for _, label := range []string{models.LabelCover, models.LabelStego} {
		r := sample()
		r.Label = label
		require.NoError(t, w.Write(r))
	}
	require.NoError(t, w.Flush())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	for i, rec := range records {
		require.Len(t, rec, len(sample().Features)+1)
		for _, field := range rec[:len(rec)-1] {
			_, err := strconv.ParseFloat(field, 64)
			require.NoError(t, err, "record %d field %q", i, field)
		}
	}
	assert.Equal(t, models.LabelCover, records[0][3])
	assert.Equal(t, models.LabelStego, records[1][3])
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, "json")
	require.NoError(t, err)
	require.NoError(t, w.Write(sample()))

	var got models.FeatureResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "lena.tif", got.Filename)
	assert.Equal(t, []float64{0, 0.5, 1}, got.Features)
}

func TestNewWriter_Unknown(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, "xml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}
