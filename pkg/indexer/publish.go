package indexer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/srinman/blograg/internal/models"
)

const publishTimeout = 30 * time.Second

// Publish posts the index to the remote indexing service's /index endpoint.
// The service owns retries and embedding; a non-2xx response is an error
// here.
func Publish(endpoint string, index models.Index) error {
	data, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to encode index %s: %v", index.IndexName, err)
	}

	client := &http.Client{Timeout: publishTimeout}
	url := strings.TrimRight(endpoint, "/") + "/index"

	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to publish index %s: %v", index.IndexName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("indexing service returned status %d for index %s", resp.StatusCode, index.IndexName)
	}

	return nil
}
