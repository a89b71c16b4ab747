package options

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

//nolint:gochecknoglobals
var (
	args        []string
	command     string
	interactive bool
	script      string
	terminal    int
	trace       bool

	conf = config{Prompt: ">> "}

	usage = `lumen

Usage:
  lumen SCRIPT [ARGUMENTS...]
  lumen -c COMMAND [NAME [ARGUMENTS...]]
  lumen [-it] [-s [ARGUMENTS...]]
  lumen -h
  lumen -v

Arguments:
  ARGUMENTS  Positional parameters.
  SCRIPT     Path to lumen script. Also used as the script name in errors.
  NAME       Override the script name. Otherwise the name used to invoke
             lumen is used.

Options:
  -c, --command=COMMAND  Evaluate the specified source text.
  -i, --interactive      Invert interactive mode.
  -s, --stdin            Read source from stdin.
  -t, --trace            Log every evaluator step.
  -h, --help             Display this help.
  -v, --version          Print lumen version.

If lumen's stdin is a TTY, and lumen was invoked with no non-option
operands or lumen was explicitly directed to evaluate source from stdin,
the interactive read-eval loop is started. Otherwise source is read from
the named script or the -c argument.
`
)

// config is the shape of the optional ~/.lumenrc.toml file.
type config struct {
	Prompt string `toml:"prompt"`
	Trace  bool   `toml:"trace"`
}

func Args() []string {
	return args
}

func Command() string {
	return command
}

func Interactive() bool {
	return interactive
}

func Parse() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	loadConfig()

	command, _ = opts.String("--command")

	name, _ := opts.String("NAME")
	if name == "" {
		name = os.Args[0]
	}

	script, _ = opts.String("SCRIPT")
	if script != "" {
		name = script
	} else if command == "" && isatty.IsTerminal(os.Stdin.Fd()) {
		interactive = true
		terminal = int(os.Stdin.Fd())
	}

	args, _ = opts["ARGUMENTS"].([]string)
	args = append([]string{name}, args...)

	invertInteractive, _ := opts.Bool("--interactive")
	interactive = interactive != invertInteractive

	invertTrace, _ := opts.Bool("--trace")
	trace = conf.Trace != invertTrace
}

func Prompt() string {
	return conf.Prompt
}

func Script() string {
	return script
}

func Terminal() int {
	return terminal
}

func Trace() bool {
	return trace
}

func loadConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	path := filepath.Join(home, ".lumenrc.toml")

	_, err = toml.DecodeFile(path, &conf)
	if err != nil && !os.IsNotExist(err) {
		println("lumen: " + path + ": " + err.Error())
	}
}
