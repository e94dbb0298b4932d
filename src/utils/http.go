package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jiaming2012/banking-services/src/models"
)

func GetJSON(ctx context.Context, client *http.Client, url string, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("GetJSON: new request: %w", err)
	}

	return doJSON(client, req, out)
}

func PostJSON(ctx context.Context, client *http.Client, url string, body interface{}, out interface{}) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("PostJSON: marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("PostJSON: new request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return doJSON(client, req, out)
}

func doJSON(client *http.Client, req *http.Request, out interface{}) (int, error) {
	res, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("doJSON: %w", err)
	}

	if res.Body != nil {
		defer res.Body.Close()
	}

	body, readErr := io.ReadAll(res.Body)
	if readErr != nil {
		return res.StatusCode, fmt.Errorf("doJSON: read body: %w", readErr)
	}

	if res.StatusCode >= 400 {
		var errDTO models.ErrorDTO
		if jsonErr := json.Unmarshal(body, &errDTO); jsonErr != nil || errDTO.Msg == "" {
			return res.StatusCode, fmt.Errorf("doJSON: unexpected status %d", res.StatusCode)
		}

		return res.StatusCode, fmt.Errorf("doJSON: %v", errDTO.Msg)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return res.StatusCode, fmt.Errorf("doJSON: unmarshal response: %w", err)
		}
	}

	return res.StatusCode, nil
}
