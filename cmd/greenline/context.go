package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"greenline/internal/config"
	"greenline/internal/logging"
	"greenline/internal/projects"
	"greenline/internal/services"
)

const defaultCLILogLevel = "warn"

type commandContext struct {
	configFlag   *string
	datasetFlag  *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, datasetFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		datasetFlag:  datasetFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "cli", "load config",
				"Configuração inválida: "+err.Error(), err)
			return
		}
		if dataset := flagValue(c.datasetFlag); dataset != "" {
			expanded, err := config.ExpandPath(dataset)
			if err != nil {
				c.configErr = services.Wrap(services.ErrValidation, "cli", "dataset flag",
					"Caminho inválido para --dataset: "+dataset, err)
				return
			}
			cfg.Paths.Dataset = expanded
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// loggerFor returns the CLI logger. It writes to the command's stderr.
func (c *commandContext) loggerFor(cmd *cobra.Command) *slog.Logger {
	c.loggerOnce.Do(func() {
		level := flagValue(c.logLevelFlag)
		if level == "" {
			level = defaultCLILogLevel
		}
		format := "console"
		if cfg, err := c.ensureConfig(); err == nil {
			format = cfg.Logging.Format
		}
		logger, err := logging.New(logging.Options{
			Level:  level,
			Format: format,
			Writer: cmd.ErrOrStderr(),
		})
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) projectService(cmd *cobra.Command) (*projects.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger := c.loggerFor(cmd)
	return projects.NewService(projects.NewStore(cfg.Paths.Dataset, logger), logger), nil
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
