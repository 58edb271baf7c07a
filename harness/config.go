package harness

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	vtbench "github.com/softdevteam/vtable-bench"
)

// Defaults used when no positional arguments are given.
const (
	DefaultReps       = 30
	DefaultIterations = 100
	DefaultVectorSize = 10000000
	DefaultBinDir     = "bin"
)

// ErrHelp is returned by ParseArgs when -h or --help was given.
// errors.Is(ErrHelp, vtbench.ErrUsage) holds.
var ErrHelp = fmt.Errorf("%w: help requested", vtbench.ErrUsage)

var errDuplicateBenchmark = errors.New("duplicate benchmark")

// Config holds the parameters of a harness session.
type Config struct {
	Reps       int      `toml:"reps"`
	Iterations int      `toml:"iterations"`
	VectorSize int      `toml:"vector_size"`
	BinDir     string   `toml:"bin_dir"`
	Benchmarks []string `toml:"benchmarks"`

	// MaxLaunchesPerSecond paces subprocess starts. 0 means unlimited.
	MaxLaunchesPerSecond float64 `toml:"max_launches_per_second"`
	// Seed fixes the run order. 0 picks a random seed.
	Seed int64 `toml:"seed"`
}

// DefaultConfig returns the default session parameters.
func DefaultConfig() Config {
	return Config{
		Reps:       DefaultReps,
		Iterations: DefaultIterations,
		VectorSize: DefaultVectorSize,
		BinDir:     DefaultBinDir,
	}
}

// Validate checks that the session can run.
func (c Config) Validate() error {
	switch {
	case c.Reps < 1:
		return vtbench.NewErrInvalidArgument("reps", strconv.Itoa(c.Reps), nil)
	case c.Iterations < 0:
		return vtbench.NewErrInvalidArgument("iterations", strconv.Itoa(c.Iterations), nil)
	case c.VectorSize < 0:
		return vtbench.NewErrInvalidArgument("vector size", strconv.Itoa(c.VectorSize), nil)
	case c.MaxLaunchesPerSecond < 0:
		return vtbench.NewErrInvalidArgument("max_launches_per_second",
			strconv.FormatFloat(c.MaxLaunchesPerSecond, 'g', -1, 64), nil)
	case c.BinDir == "":
		return vtbench.NewErrInvalidArgument("bin_dir", c.BinDir, nil)
	}

	seen := make(map[string]struct{}, len(c.Benchmarks))
	for _, name := range c.Benchmarks {
		if name == "" {
			return vtbench.NewErrInvalidArgument("benchmarks", name, nil)
		}
		if _, dup := seen[name]; dup {
			return vtbench.NewErrInvalidArgument("benchmarks", name, errDuplicateBenchmark)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// LoadFile reads a TOML config file on top of base. Unknown keys are an error.
func LoadFile(path string, base Config) (Config, error) {
	cfg := base
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: config %s: %w", vtbench.ErrUsage, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: config %s: unknown keys %s", vtbench.ErrUsage, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ParseArgs parses the harness command line (without the program name).
func ParseArgs(args []string) (Config, error) {
	fs := flag.NewFlagSet("vtbench", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	configPath := fs.String("config", "", "TOML config file")
	binDir := fs.String("bin", DefaultBinDir, "directory holding the benchmark executables")
	seed := fs.Int64("seed", 0, "seed for the run order (0: random)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, ErrHelp
		}
		return Config{}, fmt.Errorf("%w: %w", vtbench.ErrUsage, err)
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadFile(*configPath, cfg); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bin":
			cfg.BinDir = *binDir
		case "seed":
			cfg.Seed = *seed
		}
	})

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 3:
		vals := make([]int, 3)
		for i, name := range []string{"reps", "iterations", "vector size"} {
			n, err := strconv.Atoi(rest[i])
			if err != nil {
				return Config{}, vtbench.NewErrInvalidArgument(name, rest[i], err)
			}
			vals[i] = n
		}
		cfg.Reps, cfg.Iterations, cfg.VectorSize = vals[0], vals[1], vals[2]
	default:
		return Config{}, fmt.Errorf("%w: expected 0 or 3 arguments, got %d", vtbench.ErrUsage, len(rest))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Usage returns the usage line for prog.
func Usage(prog string) string {
	if prog == "" {
		prog = "vtbench"
	}
	return fmt.Sprintf("Usage: %s [-h] [-config <file>] [-bin <dir>] [-seed <n>] [<#reps> <#iters> <#vec size>]", prog)
}
