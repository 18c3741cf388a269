package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeDOMS()
	if err := c.normalizeInput(); err != nil {
		return err
	}
	c.normalizeRun()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeDOMS() {
	c.DOMS.Endpoint = strings.TrimSpace(c.DOMS.Endpoint)
	c.DOMS.Username = strings.TrimSpace(c.DOMS.Username)
	if c.DOMS.Username == "" {
		if value, ok := os.LookupEnv("DOMS_USERNAME"); ok {
			c.DOMS.Username = strings.TrimSpace(value)
		}
	}
	if c.DOMS.Password == "" {
		if value, ok := os.LookupEnv("DOMS_PASSWORD"); ok {
			c.DOMS.Password = value
		}
	}
	if c.DOMS.TimeoutMS <= 0 {
		c.DOMS.TimeoutMS = defaultTimeoutMillis
	}
	c.DOMS.Datastream = strings.TrimSpace(c.DOMS.Datastream)
	if c.DOMS.Datastream == "" {
		c.DOMS.Datastream = defaultDatastream
	}
	c.DOMS.Agent = strings.TrimSpace(c.DOMS.Agent)
	if c.DOMS.Agent == "" {
		c.DOMS.Agent = defaultAgent
	}
}

func (c *Config) normalizeInput() error {
	c.Input.IDsFile = strings.TrimSpace(c.Input.IDsFile)
	if c.Input.IDsFile == "" || c.Input.IDsFile == "-" {
		return nil
	}
	var err error
	if c.Input.IDsFile, err = expandPath(c.Input.IDsFile); err != nil {
		return fmt.Errorf("input.ids_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeRun() {
	c.Run.Workers = ClampWorkers(c.Run.Workers)
}

// ClampWorkers bounds a worker count to the supported range.
func ClampWorkers(workers int) int {
	if workers < 1 {
		return 1
	}
	if workers > maxWorkers {
		return maxWorkers
	}
	return workers
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File == "" {
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
