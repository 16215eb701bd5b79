package elastic_client

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
	"github.com/sysdevrun/transitchat/pkg/util"
)

// Client indexes documents in the background. A nil Client drops everything,
// which lets callers emit events unconditionally.
type Client struct {
	es *elasticsearch.Client

	indexRequestChannel chan *esapi.IndexRequest
}

// Connect sets up the Elasticsearch connection from the environment. Returns
// nil (no error) when no address is configured.
func Connect() (*Client, error) {
	env := util.GetEnvironmentVariables()

	if env["TRANSITCHAT_ELASTICSEARCH_ADDRESS"] == "" {
		log.Info().Msg("Skipping Elasticsearch setup")
		return nil, nil
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{env["TRANSITCHAT_ELASTICSEARCH_ADDRESS"]},
		Username:  env["TRANSITCHAT_ELASTICSEARCH_USERNAME"],
		Password:  env["TRANSITCHAT_ELASTICSEARCH_PASSWORD"],
	})
	if err != nil {
		return nil, err
	}

	if _, err := es.Info(); err != nil {
		return nil, err
	}

	client := &Client{
		es:                  es,
		indexRequestChannel: make(chan *esapi.IndexRequest, 10000),
	}

	go client.runIndexer()

	log.Info().Msgf("Elasticsearch client setup for %s", env["TRANSITCHAT_ELASTICSEARCH_ADDRESS"])

	return client, nil
}

func (c *Client) runIndexer() {
	for req := range c.indexRequestChannel {
		res, err := req.Do(context.Background(), c.es)
		if err != nil {
			log.Error().Err(err).Msg("Error getting response")
			continue
		}
		if res.IsError() {
			log.Error().Msgf("[%s] Error indexing document", res.Status())
		}
		res.Body.Close()
	}
}

// IndexDocument queues a document for indexing. It never blocks the caller;
// when the buffer is full the document is dropped.
func (c *Client) IndexDocument(index string, document any) {
	if c == nil {
		return
	}

	body, err := json.Marshal(document)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal document for indexing")
		return
	}

	req := &esapi.IndexRequest{
		Index: index,
		Body:  bytes.NewReader(body),
	}

	select {
	case c.indexRequestChannel <- req:
	default:
		log.Warn().Str("index", index).Msg("Index queue full, dropping document")
	}
}
