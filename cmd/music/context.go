package main

import (
	"github.com/Belphemur/SuperMusic/internal/app"
	"github.com/Belphemur/SuperMusic/internal/config"
)

// commandContext lazily loads configuration and services shared by all commands.
type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	cfg        *config.Config
	components *app.Components
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{configFlag: configFlag, jsonFlag: jsonFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	if c.configFlag == nil || *c.configFlag == "" {
		c.cfg = config.GetConfig()
		return c.cfg, nil
	}

	cfg, err := config.LoadConfigFile(*c.configFlag)
	if err != nil {
		return nil, err
	}
	config.SetConfig(cfg)
	config.SetLogLevel(cfg.LogLevel)
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) ensureComponents() (*app.Components, error) {
	if c.components != nil {
		return c.components, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	components, err := app.New(cfg)
	if err != nil {
		return nil, err
	}
	c.components = components
	return components, nil
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) close() error {
	if c.components == nil {
		return nil
	}
	return c.components.Close()
}
