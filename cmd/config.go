package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"pymut.dev/pkg/pymut/internal/domain"
	m "pymut.dev/pkg/pymut/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "pymut"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	pathsToMutateKey  = "paths_to_mutate"
	doNotMutateKey    = "do_not_mutate"
	alsoCopyKey       = "also_copy"
	testsDirKey       = "tests_dir"
	pytestArgsKey     = "pytest_args"
	coverageReportKey = "coverage_report"
	maxChildrenKey    = "max_children"
	debugKey          = "debug"
	pythonKey         = "python"

	maxChildrenFlagName = "max-children"
	debugFlagName       = "debug"
	coverageFlagName    = "coverage"

	defaultPython = "python"

	envPrefix = "PYMUT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".pymut.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(pathsToMutateKey, []string{"src"})
	viper.SetDefault(doNotMutateKey, []string{})
	viper.SetDefault(alsoCopyKey, []string{
		"tests", "test", "conftest.py", "setup.py", "setup.cfg",
		"pyproject.toml", "pytest.ini", "tox.ini",
	})
	viper.SetDefault(testsDirKey, []string{})
	viper.SetDefault(pytestArgsKey, []string{})
	viper.SetDefault(coverageReportKey, "")
	viper.SetDefault(maxChildrenKey, 0)
	viper.SetDefault(debugKey, false)
	viper.SetDefault(pythonKey, defaultPython)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	loadConfigFile()
}

// loadConfigFile reads pymut.yaml if present. A missing file is fine,
// commands run on defaults; a file that exists but cannot be read
// deserves a warning. With an explicit config file set, viper reports a
// missing file as a plain fs error rather than ConfigFileNotFoundError,
// so both shapes are accepted.
func loadConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("could not read config file", "path", configFileName, "error", err)
		}
	}
}

// resolveConfig builds the domain configuration from whatever viper has
// gathered from the config file, environment and flags.
func resolveConfig() domain.Config {
	return domain.Config{
		PathsToMutate:  parsePaths(viper.GetStringSlice(pathsToMutateKey)),
		DoNotMutate:    viper.GetStringSlice(doNotMutateKey),
		AlsoCopy:       parsePaths(viper.GetStringSlice(alsoCopyKey)),
		TestsDir:       viper.GetStringSlice(testsDirKey),
		PytestArgs:     viper.GetStringSlice(pytestArgsKey),
		CoverageReport: m.Path(viper.GetString(coverageReportKey)),
		MaxChildren:    viper.GetInt(maxChildrenKey),
		Debug:          viper.GetBool(debugKey),
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
