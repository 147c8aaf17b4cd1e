package config

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const DefaultPath = "conf/config.ini"

type Config struct {
	LogLevel      string
	FullTimestamp bool
	JSONLog       bool

	OutputDir  string
	PlotWidth  float64 // inch
	PlotHeight float64 // inch
	Precision  int     // digits after the decimal point in CSV output

	Addr        string
	ReadBuffer  int
	WriteBuffer int
}

// Load reads an ini file. A missing file is not an error: every key has a
// default, so the tool runs without conf/.
func Load(path string) (*Config, error) {
	file, err := ini.LooseLoad(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return loadCfg(file), nil
}

// Parse reads ini content from memory.
func Parse(data []byte) (*Config, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return loadCfg(file), nil
}

func loadCfg(file *ini.File) *Config {
	return &Config{
		LogLevel:      file.Section("log").Key("level").MustString("info"),
		FullTimestamp: file.Section("log").Key("full_timestamp").MustBool(true),
		JSONLog:       file.Section("log").Key("json").MustBool(false),

		OutputDir:  file.Section("output").Key("dir").MustString("out"),
		PlotWidth:  file.Section("output").Key("plot_width").MustFloat64(10),
		PlotHeight: file.Section("output").Key("plot_height").MustFloat64(6),
		Precision:  file.Section("output").Key("precision").MustInt(6),

		Addr:        file.Section("server").Key("addr").MustString(":9000"),
		ReadBuffer:  file.Section("server").Key("read_buffer").MustInt(1024),
		WriteBuffer: file.Section("server").Key("write_buffer").MustInt(1024),
	}
}

// SetupLogging applies the [log] section to the standard logrus logger.
func (c *Config) SetupLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	log.SetLevel(level)
	if c.JSONLog {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: c.FullTimestamp})
	}
	return nil
}
