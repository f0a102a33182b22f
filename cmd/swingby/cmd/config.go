package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zenGate-Global/swingby-connector-go/httptransport"
	"github.com/zenGate-Global/swingby-connector-go/node"
	"github.com/zenGate-Global/swingby-connector-go/stakes"
)

const (
	// envPrefix must be used when setting values via environment variables,
	// e.g. SWINGBY_NODE_URL.
	envPrefix = "SWINGBY"

	configName = "swingby"

	keyConfig     = "config"
	keyNodeURL    = "node_url"
	keyStakingURL = "staking_url"
	keyTimeout    = "timeout"
	keyOutput     = "output"
	keyLogLevel   = "log_level"
	keyTestnet    = "testnet"
)

// Output formats accepted by --output.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// settings is the resolved configuration of one invocation.
type settings struct {
	NodeURL    string
	StakingURL string
	Timeout    time.Duration
	Output     string
	LogLevel   zerolog.Level
	Testnet    bool
}

// app carries state shared by every sub-command of one root command.
type app struct {
	v        *viper.Viper
	settings settings
	logger   zerolog.Logger
}

func newApp() *app {
	v := viper.New()
	v.SetDefault(keyNodeURL, node.TestnetURL)
	v.SetDefault(keyStakingURL, stakes.DefaultURL)
	v.SetDefault(keyTimeout, httptransport.DefaultTimeout)
	v.SetDefault(keyOutput, OutputJSON)
	v.SetDefault(keyLogLevel, zerolog.WarnLevel.String())
	v.SetDefault(keyTestnet, true)

	return &app{v: v, logger: zerolog.Nop()}
}

func (a *app) bindFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to a swingby.yaml config file")
	flags.String("node-url", node.TestnetURL, "base URL of the Swingby node")
	flags.String("staking-url", stakes.DefaultURL, "base URL of the staking API")
	flags.Duration("timeout", httptransport.DefaultTimeout, "timeout of every HTTP request")
	flags.StringP("output", "o", OutputJSON, "output format (json|yaml)")
	flags.String("log-level", zerolog.WarnLevel.String(), "log level (debug|info|warn|error)")
	flags.Bool("testnet", true, "treat the node as a testnet node when checking addresses")

	for key, flag := range map[string]string{
		keyConfig:     "config",
		keyNodeURL:    "node-url",
		keyStakingURL: "staking-url",
		keyTimeout:    "timeout",
		keyOutput:     "output",
		keyLogLevel:   "log-level",
		keyTestnet:    "testnet",
	} {
		// Lookup cannot fail: every flag was defined above.
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}
}

// load resolves settings from flags, environment, config file and defaults.
func (a *app) load(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString(keyConfig); path != "" {
		a.v.SetConfigFile(path)
	} else {
		a.v.SetConfigName(configName)
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		a.v.AddConfigPath("$HOME/.swingby")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	level, err := zerolog.ParseLevel(a.v.GetString(keyLogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	output := strings.ToLower(a.v.GetString(keyOutput))
	if output != OutputJSON && output != OutputYAML {
		return fmt.Errorf("invalid output format %q: use json or yaml", output)
	}

	timeout := a.v.GetDuration(keyTimeout)
	if timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", timeout)
	}

	a.settings = settings{
		NodeURL:    a.v.GetString(keyNodeURL),
		StakingURL: a.v.GetString(keyStakingURL),
		Timeout:    timeout,
		Output:     output,
		LogLevel:   level,
		Testnet:    a.v.GetBool(keyTestnet),
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().
		Timestamp().
		Logger()

	a.logger.Debug().
		Str("config_file", a.v.ConfigFileUsed()).
		Str("node_url", a.settings.NodeURL).
		Str("staking_url", a.settings.StakingURL).
		Dur("timeout", timeout).
		Msg("configuration loaded")

	return nil
}

func (a *app) transport() *httptransport.Transport {
	return httptransport.New(httptransport.Config{
		Timeout:   a.settings.Timeout,
		UserAgent: "swingby-cli/" + version,
		Logger:    &a.logger,
	})
}

func (a *app) nodeClient() (*node.Client, error) {
	return node.New(node.Config{
		BaseURL:   a.settings.NodeURL,
		Transport: a.transport(),
		Logger:    &a.logger,
	})
}

func (a *app) stakesClient() *stakes.Client {
	return stakes.New(stakes.Config{
		BaseURL:   a.settings.StakingURL,
		Transport: a.transport(),
		Logger:    &a.logger,
	})
}
