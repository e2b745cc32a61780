package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// defaultAPIRoot is the production Intercom REST API.
	defaultAPIRoot = "https://api.intercom.io"
	// intercomVersion pins the API version; the transcript field layout
	// depends on it.
	intercomVersion = "2.13"
)

// ConversationSearcher lists conversation summaries matching a search
// definition, calling visit once per summary in server order across all
// pages. A non-nil error from visit stops the search and is returned as-is.
type ConversationSearcher interface {
	SearchConversations(ctx context.Context, def SearchDefinition, visit func(ConversationSummary) error) error
}

// ConversationFetcher loads one conversation's full detail.
type ConversationFetcher interface {
	GetConversation(ctx context.Context, id string) (*ConversationDetail, error)
}

// IntercomClient issues requests against the Intercom conversations API.
// It implements ConversationSearcher and ConversationFetcher.
type IntercomClient struct {
	logger  *Logger
	client  HTTPClient
	apiRoot string
}

// NewIntercomClient creates a client authenticated with the given access
// token. An empty apiRoot selects production.
func NewIntercomClient(logger *Logger, token, apiRoot string) *IntercomClient {
	if apiRoot == "" {
		apiRoot = defaultAPIRoot
	}
	return &IntercomClient{
		logger: logger,
		client: NewRetryHTTPClient(
			WithLogger(logger),
			WithBearerToken(token),
			WithHeaders(map[string]string{"Intercom-Version": intercomVersion}),
		),
		apiRoot: strings.TrimRight(apiRoot, "/"),
	}
}

// doJSON makes a JSON request and returns the response body.
func (c *IntercomClient) doJSON(ctx context.Context, method, requestURL string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("error marshalling payload: %v", err)
		}
		c.logger.Debugf("Sending request to %s with payload: %s", requestURL, string(jsonData))
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making HTTP request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("request returned non-200 status: %d, body: %s", resp.StatusCode, string(respBody))
	}

	return io.ReadAll(resp.Body)
}

// SearchConversations runs a conversation search, following the
// starting_after cursor until the last page. Page order is preserved.
func (c *IntercomClient) SearchConversations(ctx context.Context, def SearchDefinition, visit func(ConversationSummary) error) error {
	searchURL := c.apiRoot + "/conversations/search"
	body := def
	for {
		data, err := c.doJSON(ctx, http.MethodPost, searchURL, body)
		if err != nil {
			return err
		}

		var page searchResponse
		if err := json.Unmarshal(data, &page); err != nil {
			return fmt.Errorf("error parsing search response: %v", err)
		}
		c.logger.Debugf("Search page returned %d conversations", len(page.Conversations))

		for _, summary := range page.Conversations {
			if err := visit(summary); err != nil {
				return err
			}
		}

		if page.Pages.Next == nil || page.Pages.Next.StartingAfter == "" {
			return nil
		}
		body.Pagination.StartingAfter = page.Pages.Next.StartingAfter
	}
}

// GetConversation fetches one conversation's full detail with plaintext
// message bodies.
func (c *IntercomClient) GetConversation(ctx context.Context, id string) (*ConversationDetail, error) {
	requestURL := fmt.Sprintf("%s/conversations/%s?display_as=plaintext", c.apiRoot, url.PathEscape(id))

	data, err := c.doJSON(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	var detail ConversationDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("error parsing conversation %s: %v", id, err)
	}
	return &detail, nil
}
