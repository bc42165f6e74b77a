// Package labservice provides the HTTP client for the remote AI protocol
// generation and simulation service. It implements ports.ProtocolService.
package labservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labscript-ai/labscript/pkg/domain"
	"github.com/labscript-ai/labscript/pkg/ports"
)

const defaultTimeout = 5 * time.Minute

// Client talks to the generation service over HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Generation calls run a multi
// attempt repair loop server-side, so the default is deliberately generous.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.ProtocolService = (*Client)(nil)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type generateSOPRequest struct {
	HardwareConfig string `json:"hardware_config"`
	UserGoal       string `json:"user_goal"`
}

type generateSOPResponse struct {
	Success     bool   `json:"success"`
	SOPMarkdown string `json:"sop_markdown"`
	Timestamp   string `json:"timestamp"`
	Detail      string `json:"detail,omitempty"`
}

type generateCodeRequest struct {
	SOPMarkdown    string `json:"sop_markdown"`
	HardwareConfig string `json:"hardware_config"`
}

type generateCodeResponse struct {
	Success       bool                    `json:"success"`
	GeneratedCode string                  `json:"generated_code"`
	Attempts      int                     `json:"attempts"`
	Warnings      []string                `json:"warnings"`
	IterationLogs []domain.IterationEvent `json:"iteration_logs"`
	Timestamp     string                  `json:"timestamp"`
	Detail        string                  `json:"detail,omitempty"`
}

type simulateRequest struct {
	ProtocolCode string `json:"protocol_code"`
}

type simulateResponse struct {
	Success            bool   `json:"success"`
	RawOutput          string `json:"raw_simulation_output"`
	ErrorMessage       string `json:"error_message"`
	WarningsPresent    bool   `json:"warnings_present"`
	WarningDetails     string `json:"warning_details"`
	FinalStatusMessage string `json:"final_status_message"`
	Timestamp          string `json:"timestamp"`
	Detail             string `json:"detail,omitempty"`
}

type toolsResponse struct {
	Tools []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"tools"`
}

// Health checks service liveness via GET /.
func (c *Client) Health(ctx context.Context) (ports.HealthInfo, error) {
	var resp healthResponse
	if err := c.do(ctx, http.MethodGet, "/", nil, &resp); err != nil {
		return ports.HealthInfo{}, err
	}
	if resp.Status == "" {
		return ports.HealthInfo{}, &domain.MalformedResponseError{Reason: "health response missing status"}
	}
	return ports.HealthInfo{Status: resp.Status, Message: resp.Message}, nil
}

// GenerateSOP asks the service for an SOP markdown document.
func (c *Client) GenerateSOP(ctx context.Context, hardwareConfig, userGoal string) (string, error) {
	req := generateSOPRequest{HardwareConfig: hardwareConfig, UserGoal: userGoal}
	var resp generateSOPResponse
	if err := c.do(ctx, http.MethodPost, "/api/generate-sop", req, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &domain.RequestError{Status: http.StatusOK, Detail: serviceDetail(resp.Detail, "sop generation failed")}
	}
	if resp.SOPMarkdown == "" {
		return "", &domain.MalformedResponseError{Reason: "sop response missing sop_markdown"}
	}
	return resp.SOPMarkdown, nil
}

// GenerateCode asks the service to turn an SOP into protocol code. The
// response delivers the full iteration log in one piece; progress, when
// non-nil, only bookends the call with feedback text.
func (c *Client) GenerateCode(ctx context.Context, sopMarkdown, hardwareConfig string, progress ports.ProgressFunc) (domain.GeneratedArtifact, error) {
	if progress != nil {
		progress("Generating protocol code...")
	}

	req := generateCodeRequest{SOPMarkdown: sopMarkdown, HardwareConfig: hardwareConfig}
	var resp generateCodeResponse
	err := c.do(ctx, http.MethodPost, "/api/generate-protocol-code", req, &resp)
	if err != nil {
		if progress != nil {
			progress("Code generation failed.")
		}
		return domain.GeneratedArtifact{}, err
	}
	if !resp.Success {
		if progress != nil {
			progress("Code generation failed.")
		}
		return domain.GeneratedArtifact{}, &domain.RequestError{Status: http.StatusOK, Detail: serviceDetail(resp.Detail, "code generation failed")}
	}
	if resp.GeneratedCode == "" {
		return domain.GeneratedArtifact{}, &domain.MalformedResponseError{Reason: "code response missing generated_code"}
	}

	if progress != nil {
		progress(fmt.Sprintf("Code generated in %d attempt(s).", resp.Attempts))
	}
	return domain.GeneratedArtifact{
		Code:     resp.GeneratedCode,
		Attempts: resp.Attempts,
		Warnings: resp.Warnings,
		Events:   resp.IterationLogs,
	}, nil
}

// Simulate runs protocol code through the remote simulator.
func (c *Client) Simulate(ctx context.Context, protocolCode string) (domain.SimulationOutcome, error) {
	req := simulateRequest{ProtocolCode: protocolCode}
	var resp simulateResponse
	if err := c.do(ctx, http.MethodPost, "/api/simulate-protocol", req, &resp); err != nil {
		return domain.SimulationOutcome{}, err
	}

	// success:false here is a simulation verdict, not a transport failure;
	// it is still a valid outcome the caller records.
	return domain.SimulationOutcome{
		Succeeded:       resp.Success,
		WarningsPresent: resp.WarningsPresent,
		StatusMessage:   resp.FinalStatusMessage,
		RawLog:          resp.RawOutput,
		ErrorMessage:    resp.ErrorMessage,
		WarningDetail:   resp.WarningDetails,
	}, nil
}

// ListTools enumerates the service's tools.
func (c *Client) ListTools(ctx context.Context) ([]ports.ToolInfo, error) {
	var resp toolsResponse
	if err := c.do(ctx, http.MethodGet, "/api/tools", nil, &resp); err != nil {
		return nil, err
	}
	tools := make([]ports.ToolInfo, 0, len(resp.Tools))
	for _, t := range resp.Tools {
		tools = append(tools, ports.ToolInfo{Name: t.Name, Description: t.Description})
	}
	return tools, nil
}

// do issues one request and decodes the JSON response body into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.RequestError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return &domain.RequestError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.RequestError{Status: resp.StatusCode, Detail: errorDetail(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.MalformedResponseError{Reason: "undecodable response body", Err: err}
	}
	return nil
}

// errorDetail pulls the detail string out of an error body when the server
// sent structured JSON, falling back to the raw text.
func errorDetail(raw []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return strings.TrimSpace(string(raw))
}

func serviceDetail(detail, fallback string) string {
	if detail != "" {
		return detail
	}
	return fallback
}
