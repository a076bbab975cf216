package models

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Features selects which groups of BIOS calls are emulated at high level.
// A disabled group leaves its table entries empty so the guest's own ROM code runs.
type Features struct {
	Heap     bool
	FileIO   bool
	RCnt     bool
	Pad      bool
	GPU      bool
	MCD      bool
	LoadExec bool
	Thread   bool
	EntryInt bool
	Event    bool
}

const featureEnvPrefix = "PSX_HLE_CONFIG_"

var featureNames = []string{"HEAP", "FILEIO", "RCNT", "PAD", "GPU", "MCD", "LOADEXEC", "THREAD", "ENTRYINT", "EVENT"}

func (f *Features) field(name string) *bool {
	switch strings.ToUpper(name) {
	case "HEAP":
		return &f.Heap
	case "FILEIO":
		return &f.FileIO
	case "RCNT":
		return &f.RCnt
	case "PAD":
		return &f.Pad
	case "GPU":
		return &f.GPU
	case "MCD":
		return &f.MCD
	case "LOADEXEC":
		return &f.LoadExec
	case "THREAD":
		return &f.Thread
	case "ENTRYINT":
		return &f.EntryInt
	case "EVENT":
		return &f.Event
	}
	return nil
}

// AllFeatures enables every group.
func AllFeatures() Features {
	var f Features
	for _, name := range featureNames {
		*f.field(name) = true
	}
	return f
}

// FeaturesFromEnv reads PSX_HLE_CONFIG_<NAME> toggles from environ.
// Unset toggles are off. Leading spaces are skipped, '0' disables and any other
// value enables. Values that aren't a single digit are accepted with a warning.
func FeaturesFromEnv(environ []string, warn io.Writer) Features {
	if warn == nil {
		warn = ioutil.Discard
	}
	var f Features
	for _, kv := range environ {
		if !strings.HasPrefix(kv, featureEnvPrefix) {
			continue
		}
		kv = kv[len(featureEnvPrefix):]
		eq := strings.IndexByte(kv, '=')
		if eq < 0 {
			continue
		}
		name, val := kv[:eq], strings.TrimLeft(kv[eq+1:], " ")
		field := f.field(name)
		if field == nil {
			fmt.Fprintf(warn, "warning: unknown HLE feature %q\n", name)
			continue
		}
		if len(val) != 1 || val[0] < '0' || val[0] > '9' {
			fmt.Fprintf(warn, "warning: %s%s=%q should be a single digit\n", featureEnvPrefix, name, val)
		}
		*field = val == "" || val[0] != '0'
	}
	return f
}

// ParseFeatures enables a comma-separated list of groups. "all" and "none" are accepted.
func ParseFeatures(list string) (Features, error) {
	var f Features
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		switch name {
		case "":
			continue
		case "all":
			f = AllFeatures()
			continue
		case "none":
			f = Features{}
			continue
		}
		field := f.field(name)
		if field == nil {
			return f, errors.Errorf("unknown HLE feature %q", name)
		}
		*field = true
	}
	return f, nil
}

func (f Features) String() string {
	var on []string
	for _, name := range featureNames {
		if *f.field(name) {
			on = append(on, strings.ToLower(name))
		}
	}
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ",")
}

type Config struct {
	Features Features

	Color      bool
	Etrace     bool
	Strace     bool
	Verbose    bool
	Strsize    int
	Tracefile  string
	CardDir    string
	// raise a vblank interrupt after this many basic blocks, 0 disables
	VsyncBlocks int

	Output io.Writer
	Stdout io.Writer
	Stdin  io.Reader
}

func (c *Config) Init() *Config {
	if c == nil {
		c = &Config{}
	}
	if c.Output == nil {
		c.Output = os.Stderr
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	if c.Strsize == 0 {
		c.Strsize = 30
	}
	return c
}
