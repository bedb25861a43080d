package prog

import "flag"

// FlagSet wraps a [flag.FlagSet], and provides methods for registering
// flags shared by multiple subprograms. A shared flag is only registered
// the first time it is asked for; later calls return the same destination.
type FlagSet struct {
	*flag.FlagSet
	config *string
	json   *bool
}

// Config returns the value of the shared -config flag, the path of the
// configuration file.
func (fs *FlagSet) Config() *string {
	if fs.config == nil {
		var config string
		fs.StringVar(&config, "config", "",
			"Path of the configuration file")
		fs.config = &config
	}
	return fs.config
}

// JSON returns the value of the shared -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"Show the output from -buildinfo or -version in JSON")
		fs.json = &json
	}
	return fs.json
}
