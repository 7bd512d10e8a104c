// Package config loads the INI configuration file of komb.
//
// The file has three sections. RawData lists the input files and their
// encoding, RawDataStructure describes the layout of every input file and
// OutputFileStructure describes the combined output file.
package config

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"gopkg.in/ini.v1"

	"github.com/rychenberg/komb"
)

// Section names.
const (
	SectionRawData          = "RawData"
	SectionRawDataStructure = "RawDataStructure"
	SectionOutput           = "OutputFileStructure"
)

// DefaultEncoding is used when RawData has no Encoding key.
const DefaultEncoding = "utf-8"

// Config is a loaded configuration file.
//
// The input and output structure sections are validated when loading but
// their errors are only reported by Structure and Output, so that a bad
// RawDataStructure fails each input file and a bad OutputFileStructure
// fails only the export.
type Config struct {
	Path      string
	DataFiles []string
	Encoding  string

	structure    Structure
	structureErr error
	output       Output
	outputErr    error
}

// Structure describes the layout of the input files.
type Structure struct {
	Delimiter rune

	// HeaderRow is the 0-based index of the row holding column names.
	HeaderRow int

	// TimestampColumn is the 0-based index of the timestamp column.
	TimestampColumn int

	// TimestampFormat is the strftime style pattern of timestamp cells.
	TimestampFormat string
}

// Output describes the combined output file.
type Output struct {
	File             string
	Delimiter        rune
	TimestampFormat  string
	Interval         komb.Duration
	NumberFormat     komb.NumberFormat
	DecimalSeparator string
}

// MissingKeyError is returned when a required section or key is absent.
type MissingKeyError struct {
	Section string

	// Key is empty when the whole section is missing.
	Key string
}

func (e *MissingKeyError) Error() string {
	if e.Key == "" {
		return "section \"" + e.Section + "\" is missing in config file"
	}
	return "key \"" + e.Key + "\" is missing in section \"" + e.Section + "\" of config file"
}

// ErrNoDataFiles is returned when RawData lists no input files.
var ErrNoDataFiles = errors.New("no data files given under RawData/DataFiles")

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config file %s", path)
	}
	c, err := fromFile(f)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}
	c.Path = path
	return c, nil
}

// Parse reads a configuration from data.
func Parse(data []byte) (*Config, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse config")
	}
	return fromFile(f)
}

// Semicolons and hashes are common delimiters, so only whole line
// comments are recognized. Key names are case insensitive.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
	InsensitiveKeys:     true,
}

func fromFile(f *ini.File) (*Config, error) {
	raw, err := section(f, SectionRawData)
	if err != nil {
		return nil, err
	}
	files := splitList(raw.Key("DataFiles").Value())
	if len(files) == 0 {
		return nil, ErrNoDataFiles
	}

	c := &Config{
		DataFiles: files,
		Encoding:  DefaultEncoding,
	}
	if raw.HasKey("Encoding") {
		if enc := strings.TrimSpace(raw.Key("Encoding").Value()); enc != "" {
			c.Encoding = enc
		}
	}
	c.structure, c.structureErr = parseStructure(f)
	c.output, c.outputErr = parseOutput(f)
	return c, nil
}

// Structure returns the input file layout or the error found in the
// RawDataStructure section.
func (c *Config) Structure() (Structure, error) {
	return c.structure, c.structureErr
}

// Output returns the output file description or the error found in the
// OutputFileStructure section.
func (c *Config) Output() (Output, error) {
	return c.output, c.outputErr
}

func parseStructure(f *ini.File) (Structure, error) {
	var s Structure
	sec, err := section(f, SectionRawDataStructure)
	if err != nil {
		return s, err
	}
	v := sectionValues{sec: sec}
	s.Delimiter = v.delimiter("Delimiter")
	s.HeaderRow = v.index("ColumnIdentifierRow")
	s.TimestampColumn = v.index("TimestampColumn")
	s.TimestampFormat = v.timePattern("TimestampFormat")
	if v.err != nil {
		return Structure{}, v.err
	}
	return s, nil
}

func parseOutput(f *ini.File) (Output, error) {
	var o Output
	sec, err := section(f, SectionOutput)
	if err != nil {
		return o, err
	}
	v := sectionValues{sec: sec}
	o.File = v.str("OutputFile")
	o.Delimiter = v.delimiter("Delimiter")
	o.TimestampFormat = v.timePattern("TimestampFormat")
	o.Interval = v.interval("Interval")
	o.NumberFormat = v.numberFormat("NumberFormat")
	o.DecimalSeparator = v.str("DecimalSeparator")
	if v.err != nil {
		return Output{}, v.err
	}
	if o.File == "" {
		return Output{}, errors.Newf("%s/OutputFile must not be empty", SectionOutput)
	}
	return o, nil
}

func section(f *ini.File, name string) (*ini.Section, error) {
	if !f.HasSection(name) {
		return nil, &MissingKeyError{Section: name}
	}
	return f.Section(name), nil
}

// sectionValues reads typed values from a section and keeps the first
// error.
type sectionValues struct {
	sec *ini.Section
	err error
}

func (v *sectionValues) str(key string) string {
	if v.err != nil {
		return ""
	}
	if !v.sec.HasKey(key) {
		v.err = &MissingKeyError{Section: v.sec.Name(), Key: key}
		return ""
	}
	return strings.TrimSpace(v.sec.Key(key).Value())
}

func (v *sectionValues) fail(key string, err error) {
	v.err = errors.Wrapf(err, "%s/%s", v.sec.Name(), key)
}

func (v *sectionValues) delimiter(key string) rune {
	s := v.str(key)
	if v.err != nil {
		return 0
	}
	r, err := ParseDelimiter(s)
	if err != nil {
		v.fail(key, err)
	}
	return r
}

func (v *sectionValues) index(key string) int {
	s := v.str(key)
	if v.err != nil {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		v.fail(key, err)
		return 0
	}
	if n < 1 {
		v.fail(key, errors.Newf("must be 1 or larger, got %d", n))
		return 0
	}
	return n - 1
}

func (v *sectionValues) timePattern(key string) string {
	s := v.str(key)
	if v.err != nil {
		return ""
	}
	if _, err := komb.TranslateTimePattern(s); err != nil {
		v.fail(key, err)
	}
	return s
}

func (v *sectionValues) interval(key string) komb.Duration {
	s := v.str(key)
	if v.err != nil {
		return 0
	}
	d, err := komb.ParseDuration(s)
	if err != nil {
		v.fail(key, err)
		return 0
	}
	if d <= 0 {
		v.fail(key, komb.ErrInvalidStep)
		return 0
	}
	return d
}

func (v *sectionValues) numberFormat(key string) komb.NumberFormat {
	if v.err != nil {
		return komb.NumberFormat{}
	}
	if !v.sec.HasKey(key) {
		return komb.DefaultNumberFormat
	}
	nf, err := komb.ParseNumberFormat(v.sec.Key(key).Value())
	if err != nil {
		v.fail(key, err)
	}
	return nf
}

// ParseDelimiter parses a field delimiter. It must be a single character,
// or one of `\t` and "tab" for a horizontal tab.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.Newf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, errors.Newf("invalid delimiter %q", s)
	}
	return r, nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
