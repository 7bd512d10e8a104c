package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rychenberg/komb"
)

const validConfig = `
; comment line
[RawData]
DataFiles = logger1.csv, logger2.csv ,
Encoding = latin-1

[RawDataStructure]
Delimiter = ;
ColumnIdentifierRow = 2
TimestampColumn = 1
TimestampFormat = %d.%m.%Y %H:%M:%S

[OutputFileStructure]
OutputFile = combined.csv
Delimiter = \t
TimestampFormat = %Y-%m-%d %H:%M
Interval = 15m
NumberFormat = :.2f
DecimalSeparator = ,
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"logger1.csv", "logger2.csv"}, c.DataFiles)
	assert.Equal(t, "latin-1", c.Encoding)

	st, err := c.Structure()
	require.NoError(t, err)
	assert.Equal(t, Structure{
		Delimiter:       ';',
		HeaderRow:       1,
		TimestampColumn: 0,
		TimestampFormat: "%d.%m.%Y %H:%M:%S",
	}, st)

	out, err := c.Output()
	require.NoError(t, err)
	assert.Equal(t, "combined.csv", out.File)
	assert.Equal(t, '\t', out.Delimiter)
	assert.Equal(t, "%Y-%m-%d %H:%M", out.TimestampFormat)
	assert.Equal(t, 15*komb.Minute, out.Interval)
	assert.Equal(t, ",", out.DecimalSeparator)
	assert.Equal(t, "3.14", out.NumberFormat.Format(3.14159))
}

func TestParse_KeysAreCaseInsensitive(t *testing.T) {
	c, err := Parse([]byte(`
[RawData]
datafiles = a.csv

[RawDataStructure]
delimiter = ,
columnidentifierrow = 1
timestampcolumn = 2
timestampformat = %Y-%m-%d
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv"}, c.DataFiles)
	assert.Equal(t, DefaultEncoding, c.Encoding)

	st, err := c.Structure()
	require.NoError(t, err)
	assert.Equal(t, ',', st.Delimiter)
	assert.Equal(t, 1, st.TimestampColumn)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("[RawDataStructure]\nDelimiter = ;\n"))
	var mkErr *MissingKeyError
	require.True(t, errors.As(err, &mkErr), "got %v", err)
	assert.Equal(t, SectionRawData, mkErr.Section)
	assert.Equal(t, "", mkErr.Key)

	_, err = Parse([]byte("[RawData]\nEncoding = utf-8\n"))
	assert.True(t, errors.Is(err, ErrNoDataFiles), "got %v", err)

	_, err = Parse([]byte("[RawData]\nDataFiles = ,\n"))
	assert.True(t, errors.Is(err, ErrNoDataFiles), "got %v", err)
}

func TestParse_SectionErrorsAreDeferred(t *testing.T) {
	c, err := Parse([]byte("[RawData]\nDataFiles = a.csv\n"))
	require.NoError(t, err)

	_, err = c.Structure()
	var mkErr *MissingKeyError
	require.True(t, errors.As(err, &mkErr), "got %v", err)
	assert.Equal(t, SectionRawDataStructure, mkErr.Section)

	_, err = c.Output()
	require.True(t, errors.As(err, &mkErr), "got %v", err)
	assert.Equal(t, SectionOutput, mkErr.Section)
	assert.Equal(t, `section "OutputFileStructure" is missing in config file`, mkErr.Error())
}

func TestParse_InvalidValues(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		value   string
		missing bool
	}{
		{name: "missing key", key: "TimestampFormat", missing: true},
		{name: "bad delimiter", key: "Delimiter", value: ";;"},
		{name: "zero interval", key: "Interval", value: "0"},
		{name: "bad interval", key: "Interval", value: "soon"},
		{name: "bad number format", key: "NumberFormat", value: ":.2q"},
		{name: "bad time format", key: "TimestampFormat", value: "%Q"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			values := []struct{ key, value string }{
				{"OutputFile", "out.csv"},
				{"Delimiter", ";"},
				{"TimestampFormat", "%H:%M"},
				{"Interval", "60"},
				{"NumberFormat", ":.1f"},
				{"DecimalSeparator", "."},
			}
			data := "[RawData]\nDataFiles = a.csv\n[OutputFileStructure]\n"
			for _, kv := range values {
				switch {
				case kv.key != tc.key:
					data += kv.key + " = " + kv.value + "\n"
				case !tc.missing:
					data += kv.key + " = " + tc.value + "\n"
				}
			}
			c, err := Parse([]byte(data))
			require.NoError(t, err)

			_, err = c.Output()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	testCases := []struct {
		input   string
		want    rune
		wantErr bool
	}{
		{input: ";", want: ';'},
		{input: ",", want: ','},
		{input: "|", want: '|'},
		{input: `\t`, want: '\t'},
		{input: "TAB", want: '\t'},
		{input: "§", want: '§'},
		{input: "", wantErr: true},
		{input: ";;", wantErr: true},
		{input: `"`, wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseDelimiter(tc.input)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.input)
			continue
		}
		if assert.NoError(t, err, "input %q", tc.input) {
			assert.Equal(t, tc.want, got, "input %q", tc.input)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "komb.ini")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Path)

	_, err = Load(filepath.Join(dir, "missing.ini"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}
