package flag

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/posener/complete"
	"github.com/sirupsen/logrus"

	_log "github.com/hive-tools/hivekit/log"
)

// Environment variable name prefix
const envNamePrefix = "HIVE_"

var (
	envNames = map[string]string{
		"debug": "DEBUG",

		"nodes":   "NODES",
		"network": "NETWORK",
		"timeout": "TIMEOUT",

		"user": "USER",
		"wif":  "POSTING_WIF",

		"interval":  "INTERVAL",
		"templates": "TEMPLATES",
		"selfvote":  "SELF_VOTE",
	}
	defaults = map[string]interface{}{
		"debug": false,

		"network": "main",
		"timeout": 15 * time.Second,

		"user": "",
		"wif":  "",

		"interval":  5 * time.Minute,
		"templates": "",
		"selfvote":  uint64(0),
	}
	descriptions = map[string]string{
		"debug": "Log debug messages",

		"nodes":   "Hive API node URLs to use, space or comma separated",
		"network": "Hive network to use: main or test",
		"timeout": "Timeout for API node requests",

		"user": "Hive account the bot posts as",
		"wif":  "Posting key of the bot account in WIF; prefer the environment variable",

		"interval":  "Time between queued posts",
		"templates": "Path to the TOML file with queued post templates",
		"selfvote":  "Self-upvote weight in basis points, 0 disables",
	}
	flags = complete.Flags{
		"-debug": complete.PredictNothing,

		"-nodes":   complete.PredictAnything,
		"-network": complete.PredictSet("main", "test"),
		"-timeout": complete.PredictAnything,

		"-user": complete.PredictAnything,
		"-wif":  complete.PredictNothing,

		"-interval":  complete.PredictAnything,
		"-templates": complete.PredictFiles("*.toml"),
		"-selfvote":  complete.PredictAnything,

		"-y":                   complete.PredictNothing,
		"-installcompletion":   complete.PredictNothing,
		"-uninstallcompletion": complete.PredictNothing,
	}

	LogDebug bool

	Nodes       NodeList
	NetworkName string
	Timeout     time.Duration

	Username   string
	PostingWIF string

	Interval  time.Duration
	Templates string
	selfVote  uint64 // We parse the flag as unsigned.
	SelfVote  int16

	flagset    map[string]bool
	log        *logrus.Entry
	Completion *complete.Complete
)

func init() {
	flagVar(&LogDebug, "debug")

	flagVar(&Nodes, "nodes")
	flagVar(&NetworkName, "network")
	flagVar(&Timeout, "timeout")

	flagVar(&Username, "user")
	flagVar(&PostingWIF, "wif")

	flagVar(&Interval, "interval")
	flagVar(&Templates, "templates")
	flagVar(&selfVote, "selfvote")

	// Add flags for self installing the CLI completion tool
	Completion = complete.New(os.Args[0], complete.Command{Flags: flags})
	Completion.CLI.InstallName = "installcompletion"
	Completion.CLI.UninstallName = "uninstallcompletion"
	Completion.AddFlags(nil)
}

func Parse() {
	flag.Parse()
	flagset = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { flagset[f.Name] = true })

	setupLogger()

	// Load options from environment variables if they haven't been
	// specified on the command line.
	loadFromEnv(&LogDebug, "debug")

	loadFromEnv(&Nodes, "nodes")
	loadFromEnv(&NetworkName, "network")
	loadFromEnv(&Timeout, "timeout")

	loadFromEnv(&Username, "user")
	loadFromEnv(&PostingWIF, "wif")

	loadFromEnv(&Interval, "interval")
	loadFromEnv(&Templates, "templates")
	loadFromEnv(&selfVote, "selfvote")

	SelfVote = int16(selfVote)
	_log.SetDebug(LogDebug)
}

func Validate() {
	// Redact private data from debug output.
	postingWIF := "\"\""
	if len(PostingWIF) > 0 {
		postingWIF = "<redacted>"
	}

	log.Debugf("-debug     %v ", LogDebug)
	log.Debugf("-nodes     %#v", Nodes.String())
	log.Debugf("-network   %#v", NetworkName)
	log.Debugf("-timeout   %v ", Timeout)
	debugPrintln()

	log.Debugf("-user      %#v", Username)
	log.Debugf("-wif       %v ", postingWIF)
	debugPrintln()

	log.Debugf("-interval  %v ", Interval)
	log.Debugf("-templates %#v", Templates)
	log.Debugf("-selfvote  %v ", SelfVote)
	debugPrintln()

	// Validate options
	if NetworkName != "main" && NetworkName != "test" {
		log.Fatalf("-network must be \"main\" or \"test\", not %#v",
			NetworkName)
	}
	if Username == "" {
		log.Fatal("-user is required")
	}
	if PostingWIF == "" {
		log.Fatal("-wif is required")
	}
	if selfVote > 10000 {
		log.Fatalf("-selfvote must be at most 10000, not %v", selfVote)
	}
}

func flagVar(v interface{}, name string) {
	dflt := defaults[name]
	desc := description(name)
	switch v := v.(type) {
	case *string:
		flag.StringVar(v, name, dflt.(string), desc)
	case *time.Duration:
		flag.DurationVar(v, name, dflt.(time.Duration), desc)
	case *uint64:
		flag.Uint64Var(v, name, dflt.(uint64), desc)
	case *bool:
		flag.BoolVar(v, name, dflt.(bool), desc)
	case flag.Value:
		flag.Var(v, name, desc)
	}
}

func loadFromEnv(v interface{}, flagName string) {
	if flagset[flagName] {
		return
	}
	eName := envName(flagName)
	eVar, ok := os.LookupEnv(eName)
	if len(eVar) > 0 {
		switch v := v.(type) {
		case *NodeList:
			if err := v.Set(eVar); err != nil {
				log.Fatalf("Environment Variable %v: %v", eName, err)
			}
		case *string:
			*v = eVar
		case *time.Duration:
			duration, err := time.ParseDuration(eVar)
			if err != nil {
				log.Fatalf("Environment Variable %v: "+
					"time.ParseDuration(\"%v\"): %v",
					eName, eVar, err)
			}
			*v = duration
		case *uint64:
			val, err := strconv.ParseUint(eVar, 10, 64)
			if err != nil {
				log.Fatalf("Environment Variable %v: "+
					"strconv.ParseUint(\"%v\", 10, 64): %v",
					eName, eVar, err)
			}
			*v = val
		case *bool:
			if ok {
				*v = true
			}
		}
	}
}

func debugPrintln() {
	if LogDebug {
		fmt.Println()
	}
}

func envName(flagName string) string {
	return envNamePrefix + envNames[flagName]
}
func description(flagName string) string {
	return fmt.Sprintf("%s\nEnvironment variable: %v",
		descriptions[flagName], envName(flagName))
}

func setupLogger() {
	_log := logrus.New()
	_log.Formatter = &logrus.TextFormatter{ForceColors: true,
		DisableTimestamp:       true,
		DisableLevelTruncation: true}
	if LogDebug {
		_log.SetLevel(logrus.DebugLevel)
	}
	log = _log.WithField("pkg", "flag")
}
