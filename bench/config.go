package bench

import (
	"fmt"
	"log/slog"
	"strconv"

	vtbench "github.com/softdevteam/vtable-bench"
)

// Environment variables read by ParseArgs.
const (
	EnvMemoryLimit = "VTBENCH_MEMORY_LIMIT"
	EnvLogLevel    = "VTBENCH_LOG_LEVEL"
	EnvTrackBlocks = "VTBENCH_TRACK_BLOCKS"
	EnvLogFormat   = "VTBENCH_LOG_FORMAT"
)

// Config holds the parameters of one benchmark process.
type Config struct {
	// Iterations is the number of passes timed.
	Iterations int
	// VectorSize is the number of elements in the collection.
	VectorSize int
	// MemoryLimit bounds arena memory in bytes. 0 means unlimited.
	MemoryLimit int64
	// TrackBlocks enables double-free and leak detection.
	TrackBlocks bool
	// LogLevel is the minimum level logged to stderr.
	LogLevel slog.Level
	// LogJSON selects JSON log records instead of text.
	LogJSON bool
}

// ParseArgs builds a Config from the positional arguments (without the
// program name) and the environment.
func ParseArgs(args []string, getenv func(string) string) (Config, error) {
	if len(args) != 2 {
		return Config{}, fmt.Errorf("%w: expected 2 arguments, got %d", vtbench.ErrUsage, len(args))
	}

	iters, err := parseCount("iterations", args[0])
	if err != nil {
		return Config{}, err
	}
	size, err := parseCount("vector_size", args[1])
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Iterations: iters,
		VectorSize: size,
		LogLevel:   vtbench.ParseLevel(getenv(EnvLogLevel), slog.LevelWarn),
	}

	if v := getenv(EnvMemoryLimit); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil || limit < 0 {
			return Config{}, vtbench.NewErrInvalidArgument(EnvMemoryLimit, v, err)
		}
		cfg.MemoryLimit = limit
	}

	logJSON, err := vtbench.ParseLogFormat(getenv(EnvLogFormat))
	if err != nil {
		return Config{}, vtbench.NewErrInvalidArgument(EnvLogFormat, getenv(EnvLogFormat), err)
	}
	cfg.LogJSON = logJSON

	if v := getenv(EnvTrackBlocks); v != "" {
		track, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, vtbench.NewErrInvalidArgument(EnvTrackBlocks, v, err)
		}
		cfg.TrackBlocks = track
	}

	return cfg, nil
}

func parseCount(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, vtbench.NewErrInvalidArgument(name, s, err)
	}
	if n < 0 {
		return 0, vtbench.NewErrInvalidArgument(name, s, nil)
	}
	return n, nil
}
