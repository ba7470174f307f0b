package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "suggestgen"

// Default values of the flags, relative to the root of the autosuggest
// project.
const (
	DefaultSource   = "src/test/java/com/intigua/antlr4/autosuggest/AutoSuggesterTest.java"
	DefaultOutFile  = "generatedTestsFromJava.spec.js"
	DefaultOutDir   = "testGrammars"
	DefaultTool     = "antlr4"
	DefaultLanguage = "JavaScript"
)

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

Generates the Jasmine spec of the JavaScript autosuggest module from the
JUnit tests of the Java autosuggest module, along with the parsers and
lexers of the test grammars. The grammar compiler must be in the PATH.

The <command> can be one of:
       extract                   Print the test records extracted from
                                 the source test file, or from the
                                 provided paths.
       generate                  Generate the parsers and lexers of the
                                 test grammars and the Jasmine spec file.
       names                     Print the identifier of each unique
                                 grammar of the source test file, or of
                                 the provided paths.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --source PATH             Java test file to extract the tests
                                 from (default: %[2]s).
       --log-level LEVEL         Log level, one of debug, info, warn or
                                 error (default: info).
       --log-format FORMAT       Log format, one of text or json
                                 (default: text).

Valid flag options for the <generate> command are:
       --out-file PATH           Jasmine spec file to generate
                                 (default: %[3]s).
       --out-dir PATH            Directory of the generated parsers and
                                 lexers, removed and recreated on each
                                 run (default: %[4]s).
       --tool NAME               Grammar compiler to run (default: %[5]s).
       --language NAME           Target language of the grammar compiler
                                 (default: %[6]s).
       --keep-scratch            Do not remove the scratch directory
                                 where the grammars are compiled.

Flags can also be set with environment variables, using the SUGGESTGEN_
prefix and the uppercase flag name with underscores (e.g. SUGGESTGEN_OUT_DIR).
`, binName, DefaultSource, DefaultOutFile, DefaultOutDir, DefaultTool, DefaultLanguage)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Source    string `flag:"source" env:"SOURCE"`
	LogLevel  string `flag:"log-level" env:"LOG_LEVEL"`
	LogFormat string `flag:"log-format" env:"LOG_FORMAT"`

	OutFile     string `flag:"out-file" env:"OUT_FILE"`
	OutDir      string `flag:"out-dir" env:"OUT_DIR"`
	Tool        string `flag:"tool" env:"TOOL"`
	Language    string `flag:"language" env:"LANGUAGE"`
	KeepScratch bool   `flag:"keep-scratch" env:"KEEP_SCRATCH"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

// flags that only apply to the generate command.
var generateFlags = []string{"out-file", "out-dir", "tool", "language", "keep-scratch"}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) setDefaults() {
	defaults := []struct {
		field *string
		value string
	}{
		{&c.Source, DefaultSource},
		{&c.LogLevel, "info"},
		{&c.LogFormat, "text"},
		{&c.OutFile, DefaultOutFile},
		{&c.OutDir, DefaultOutDir},
		{&c.Tool, DefaultTool},
		{&c.Language, DefaultLanguage},
	}
	for _, d := range defaults {
		if *d.field == "" {
			*d.field = d.value
		}
	}
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	if cmdName == "generate" {
		if len(c.args[1:]) > 0 {
			return fmt.Errorf("%s: unexpected arguments: %s", cmdName, strings.Join(c.args[1:], " "))
		}
		for _, v := range []struct{ name, val string }{
			{"source", c.Source},
			{"out-file", c.OutFile},
			{"out-dir", c.OutDir},
			{"tool", c.Tool},
			{"language", c.Language},
		} {
			if v.val == "" {
				return fmt.Errorf("%s: flag '%s' cannot be empty", cmdName, v.name)
			}
		}
	} else {
		for _, flag := range generateFlags {
			if c.flags[flag] {
				return fmt.Errorf("%s: invalid flag '%s'", cmdName, flag)
			}
		}
	}

	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s", c.LogFormat)
	}
	return nil
}

// printError prints err to stdio.Stderr, one line per joined error.
func printError(stdio mainer.Stdio, err error) error {
	if err == nil {
		return nil
	}

	var errs []error
	if uw, ok := err.(interface{ Unwrap() []error }); ok {
		errs = uw.Unwrap()
	} else {
		errs = []error{err}
	}
	for _, e := range errs {
		fmt.Fprintf(stdio.Stderr, "%s\n", e)
	}
	return err
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	c.setDefaults()
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: strings.ToUpper(binName) + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		// each command takes care of printing its errors, just return with an error code
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are those that take a context, a mainer.Stdio and a slice of
// strings as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		// must take 4 parameters (including receiver) and return 1
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}

		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
