package lifx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/lifxbridge/internal/constants"
)

// Client talks to the LIFX cloud HTTP API.
//
// Pass a nil *http.Client to have the client create and own one; a
// non-nil client is borrowed and will never be closed by Close.
type Client struct {
	logger     *log.Logger
	token      string
	httpClient *http.Client
	ownsClient bool
	baseURL    string
}

func NewClient(logger *log.Logger, token string, httpClient *http.Client) *Client {
	ownsClient := httpClient == nil
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.RequestTimeout}
	}
	return &Client{
		logger:     logger,
		token:      token,
		httpClient: httpClient,
		ownsClient: ownsClient,
		baseURL:    constants.APIBaseURL,
	}
}

// Close releases the underlying connections, but only if the client
// created them itself.
func (c *Client) Close() {
	if c.ownsClient {
		c.httpClient.CloseIdleConnections()
	}
}

// ListLights returns the lights matching the selector ("all" or "id:<id>").
// An empty account is an empty slice, not an error.
func (c *Client) ListLights(selector string) ([]Light, error) {
	body, err := c.get(fmt.Sprintf("/lights/%s", selector))
	if err != nil {
		return nil, err
	}

	var lights []Light
	if err := json.Unmarshal(body, &lights); err != nil {
		return nil, fmt.Errorf("error parsing lights response: %w", err)
	}

	return lights, nil
}

// ValidateToken reports whether the access token is usable. Only an
// auth error maps to false; connection and API errors propagate.
func (c *Client) ValidateToken() (bool, error) {
	_, err := c.ListLights(constants.SelectorAll)

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// StateUpdate describes a state change; nil fields are left out of the
// request so the light keeps its current value for them. A zero
// Duration means the default transition (1s), duration is always sent.
type StateUpdate struct {
	Power      *string
	Color      *string
	Brightness *float64
	Duration   float64
	Infrared   *float64
	Fast       bool
}

// SetState applies a state change to the lights matching the selector.
// In fast mode the API acknowledges without a body and the results are nil.
func (c *Client) SetState(selector string, update StateUpdate) (*OperationResults, error) {
	duration := update.Duration
	if duration == 0 {
		duration = constants.DefaultTransitionSeconds
	}

	data := map[string]any{"duration": duration}
	if update.Power != nil {
		data["power"] = *update.Power
	}
	if update.Color != nil {
		data["color"] = *update.Color
	}
	if update.Brightness != nil {
		data["brightness"] = *update.Brightness
	}
	if update.Infrared != nil {
		data["infrared"] = *update.Infrared
	}
	if update.Fast {
		data["fast"] = true
	}

	body, err := c.put(fmt.Sprintf("/lights/%s/state", selector), data)
	if err != nil {
		return nil, err
	}

	return parseResults(body)
}

// TogglePower flips the power state of the lights matching the selector.
func (c *Client) TogglePower(selector string, duration float64) (*OperationResults, error) {
	if duration == 0 {
		duration = constants.DefaultTransitionSeconds
	}

	body, err := c.post(fmt.Sprintf("/lights/%s/toggle", selector), map[string]any{"duration": duration})
	if err != nil {
		return nil, err
	}

	return parseResults(body)
}

type EffectOptions struct {
	Color   string
	Period  float64
	Cycles  float64
	Persist bool
	PowerOn bool
	// peak brightness of the breathe waveform, ignored by pulse
	Peak float64
}

func NewEffectOptions(color string) EffectOptions {
	return EffectOptions{
		Color:   color,
		Period:  1.0,
		Cycles:  1.0,
		Persist: false,
		PowerOn: true,
		Peak:    0.5,
	}
}

// Breathe runs the slow fade effect on the lights matching the selector.
func (c *Client) Breathe(selector string, opts EffectOptions) (*OperationResults, error) {
	body, err := c.post(fmt.Sprintf("/lights/%s/effects/breathe", selector), map[string]any{
		"color":    opts.Color,
		"period":   opts.Period,
		"cycles":   opts.Cycles,
		"persist":  opts.Persist,
		"power_on": opts.PowerOn,
		"peak":     opts.Peak,
	})
	if err != nil {
		return nil, err
	}

	return parseResults(body)
}

// Pulse runs the hard blink effect on the lights matching the selector.
func (c *Client) Pulse(selector string, opts EffectOptions) (*OperationResults, error) {
	body, err := c.post(fmt.Sprintf("/lights/%s/effects/pulse", selector), map[string]any{
		"color":    opts.Color,
		"period":   opts.Period,
		"cycles":   opts.Cycles,
		"persist":  opts.Persist,
		"power_on": opts.PowerOn,
	})
	if err != nil {
		return nil, err
	}

	return parseResults(body)
}

func parseResults(body []byte) (*OperationResults, error) {
	// fast-mode responses have no body
	if body == nil {
		return nil, nil
	}

	results := OperationResults{}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("error parsing operation results: %w", err)
	}

	return &results, nil
}

func (c *Client) get(path string) ([]byte, error) {
	return c.makeRequest("GET", path, nil)
}

func (c *Client) put(path string, body map[string]any) ([]byte, error) {
	return c.makeRequest("PUT", path, body)
}

func (c *Client) post(path string, body map[string]any) ([]byte, error) {
	return c.makeRequest("POST", path, body)
}

func (c *Client) makeRequest(verb string, path string, body map[string]any) ([]byte, error) {

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(verb, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}

	// set headers
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Content-Type", "application/json")

	// make the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, &ConnectionError{Reason: "request timed out", Err: err}
		}
		return nil, &ConnectionError{Reason: "connection error", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &AuthError{Reason: "Invalid access token"}

	case resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{Reason: "Access forbidden"}

	case resp.StatusCode == http.StatusMultiStatus:
		// partial per-light results, the caller gets to inspect them
		return c.readBody(resp)

	case resp.StatusCode >= 400:
		text, _ := io.ReadAll(resp.Body)
		c.logger.Error("Error making LIFX API call", "path", path, "status", resp.Status)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(text)}

	case resp.StatusCode == http.StatusAccepted:
		// fast mode, no body expected
		return nil, nil

	default:
		return c.readBody(resp)
	}
}

func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Reason: "error reading response body", Err: err}
	}
	return responseBody, nil
}
