package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config configuration struct
type Config struct {
	Level         int            `json:"level" yaml:"level"`
	Format        string         `json:"format" yaml:"format"`
	Output        string         `json:"output" yaml:"output"`
	OutputFile    string         `json:"output_file" yaml:"output_file"`
	IndexName     string         `json:"index_name" yaml:"index_name"`
	RotateDaily   bool           `json:"rotate_daily" yaml:"rotate_daily"`
	DateSuffix    string         `json:"date_suffix" yaml:"date_suffix"`
	Elasticsearch *Elasticsearch `json:"elasticsearch" yaml:"elasticsearch"`
}

// Default returns the configuration used when the logger section is absent:
// info level text on stdout.
func Default() *Config {
	return &Config{
		Level:      4,
		Format:     "text",
		Output:     "stdout",
		IndexName:  "posts-log",
		DateSuffix: "2006.01.02",
	}
}

// GetConfig returns the logger configuration
func GetConfig(v *viper.Viper) *Config {
	if !v.IsSet("logger") {
		return Default()
	}

	indexName := strings.ToLower(v.GetString("app_name") + "-" + v.GetString("environment") + "-log")
	if v.GetString("logger.index_name") != "" {
		indexName = v.GetString("logger.index_name")
	}

	dateSuffix := v.GetString("logger.date_suffix")
	if dateSuffix == "" {
		dateSuffix = "2006.01.02"
	}

	return &Config{
		Level:         v.GetInt("logger.level"),
		Format:        v.GetString("logger.format"),
		Output:        v.GetString("logger.output"),
		OutputFile:    v.GetString("logger.output_file"),
		IndexName:     indexName,
		RotateDaily:   v.GetBool("logger.rotate_daily"),
		DateSuffix:    dateSuffix,
		Elasticsearch: getElasticsearchConfigs(v),
	}
}

// BuildIndexName returns the index for entries logged at the given day.
func (c *Config) BuildIndexName(day time.Time) string {
	if !c.RotateDaily {
		return c.IndexName
	}
	return c.IndexName + "-" + day.Format(c.DateSuffix)
}
