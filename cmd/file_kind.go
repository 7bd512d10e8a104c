package cmd

// FileKind tells which file of a run an error is about.
type FileKind int

const (
	ConfigFile FileKind = iota + 1
	DataFile
	OutputFile
)

func (k FileKind) String() string {
	switch k {
	case ConfigFile:
		return "config file"
	case DataFile:
		return "data file"
	case OutputFile:
		return "output file"
	default:
		return "file"
	}
}
