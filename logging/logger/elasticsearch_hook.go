package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/ncobase/posts/logging/logger/config"
	"github.com/sirupsen/logrus"
)

const indexTimeout = 5 * time.Second

// ElasticSearchHook ships log entries to Elasticsearch
type ElasticSearchHook struct {
	index    func(index string, body *bytes.Reader, dataStream bool) error
	config   *config.Config
	hostname string
	levels   []logrus.Level
}

// NewElasticSearchHook creates a hook and checks the cluster is reachable
func NewElasticSearchHook(cfg *config.Config) (*ElasticSearchHook, error) {
	if cfg == nil || cfg.Elasticsearch == nil {
		return nil, fmt.Errorf("elasticsearch config is nil")
	}

	esCfg := elasticsearch.Config{
		Addresses: cfg.Elasticsearch.Addresses,
	}
	if cfg.Elasticsearch.Username != "" {
		esCfg.Username = cfg.Elasticsearch.Username
		esCfg.Password = cfg.Elasticsearch.Password
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	// Test connection
	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch connection error: %s", res.Status())
	}

	hook := newElasticSearchHook(cfg, func(index string, body *bytes.Reader, dataStream bool) error {
		ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
		defer cancel()

		opts := []func(*esapi.IndexRequest){
			client.Index.WithContext(ctx),
			client.Index.WithRefresh("false"),
		}
		if dataStream {
			opts = append(opts, client.Index.WithOpType("create"))
		}

		res, err := client.Index(index, body, opts...)
		if err != nil {
			return fmt.Errorf("failed to index log entry: %w", err)
		}
		defer res.Body.Close()

		if res.IsError() {
			return fmt.Errorf("elasticsearch index error: %s", res.Status())
		}
		return nil
	})
	return hook, nil
}

func newElasticSearchHook(cfg *config.Config, index func(string, *bytes.Reader, bool) error) *ElasticSearchHook {
	hostname, _ := os.Hostname()
	return &ElasticSearchHook{
		index:    index,
		config:   cfg,
		hostname: hostname,
		levels:   logrus.AllLevels,
	}
}

// Levels returns the log levels this hook fires for
func (h *ElasticSearchHook) Levels() []logrus.Level {
	return h.levels
}

// Fire sends the log entry to Elasticsearch
func (h *ElasticSearchHook) Fire(entry *logrus.Entry) error {
	body, err := json.Marshal(h.prepareLogDocument(entry))
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	index := h.config.BuildIndexName(entry.Time)
	return h.index(index, bytes.NewReader(body), isDataStreamIndex(index))
}

// prepareLogDocument prepares the log document structure
func (h *ElasticSearchHook) prepareLogDocument(entry *logrus.Entry) map[string]any {
	doc := map[string]any{
		"@timestamp": entry.Time.UTC().Format(time.RFC3339Nano),
		"level":      entry.Level.String(),
		"message":    entry.Message,
	}
	if h.hostname != "" {
		doc["hostname"] = h.hostname
	}

	for key, value := range entry.Data {
		if _, reserved := doc[key]; reserved {
			continue
		}
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		doc[key] = value
	}
	return doc
}

// isDataStreamIndex checks if index name might be treated as data stream by ES
func isDataStreamIndex(indexName string) bool {
	lowerIndex := strings.ToLower(indexName)
	for _, prefix := range []string{"logs-", "metrics-", "traces-"} {
		if strings.HasPrefix(lowerIndex, prefix) {
			return true
		}
	}
	return false
}
