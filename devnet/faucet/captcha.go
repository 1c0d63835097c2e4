package faucet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/logging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// CaptchaSolver describes an external service which produces captcha tokens accepted by the faucet. The solving
// protocol is opaque to the rest of the system.
type CaptchaSolver interface {
	// Solve obtains a captcha token for the provided site. Returns the token, or an error if solving fails or
	// the context expires first.
	Solve(ctx context.Context, siteURL string, siteKey string) (string, error)
}

// HTTPSolver talks to a create-task / poll-result captcha solving API.
type HTTPSolver struct {
	// endpoint describes the base URL of the solving service API.
	endpoint string

	// apiKey describes the client key the solving service authenticates requests with.
	apiKey string

	// httpClient describes the underlying HTTP client used to reach the service.
	httpClient *http.Client

	// pollInterval describes how long to wait between task result polls.
	pollInterval time.Duration

	// logger describes the HTTPSolver's log object that can be used to log important events
	logger *logging.Logger
}

// NewHTTPSolver creates a captcha solver client against the provided service endpoint, authenticating with the
// provided API key.
func NewHTTPSolver(endpoint string, apiKey string) *HTTPSolver {
	return &HTTPSolver{
		endpoint:     endpoint,
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		pollInterval: 3 * time.Second,
		logger:       logging.GlobalLogger.NewSubLogger("module", "captcha"),
	}
}

// createTaskRequest describes the payload which registers a solving task with the service.
type createTaskRequest struct {
	ClientKey string      `json:"clientKey"`
	Task      captchaTask `json:"task"`
}

// captchaTask describes the captcha challenge the service is asked to solve.
type captchaTask struct {
	Type       string `json:"type"`
	WebsiteURL string `json:"websiteURL"`
	WebsiteKey string `json:"websiteKey"`
}

// createTaskResponse describes the service's answer to a task registration.
type createTaskResponse struct {
	ErrorID          int    `json:"errorId"`
	ErrorDescription string `json:"errorDescription"`
	TaskID           string `json:"taskId"`
}

// taskResultRequest describes the payload which polls a task's result.
type taskResultRequest struct {
	ClientKey string `json:"clientKey"`
	TaskID    string `json:"taskId"`
}

// taskResultResponse describes the service's answer to a result poll.
type taskResultResponse struct {
	ErrorID          int    `json:"errorId"`
	ErrorDescription string `json:"errorDescription"`
	Status           string `json:"status"`
	Solution         struct {
		Token string `json:"token"`
	} `json:"solution"`
}

// Solve registers a solving task for the provided site and polls the service until a token is produced, the
// service reports an error, or the context expires.
func (s *HTTPSolver) Solve(ctx context.Context, siteURL string, siteKey string) (string, error) {
	// A correlation ID ties the create/poll log lines of one solving attempt together.
	correlationID := uuid.NewString()[:8]

	var created createTaskResponse
	err := s.post(ctx, "/createTask", &createTaskRequest{
		ClientKey: s.apiKey,
		Task: captchaTask{
			Type:       "TurnstileTaskProxyless",
			WebsiteURL: siteURL,
			WebsiteKey: siteKey,
		},
	}, &created)
	if err != nil {
		return "", err
	}
	if created.ErrorID != 0 {
		return "", errors.Errorf("captcha solver rejected task: %s", created.ErrorDescription)
	}

	s.logger.Debug("captcha task ", created.TaskID, " registered", logging.StructuredLogInfo{"correlationId": correlationID})

	// Poll for the solution until the context expires.
	for {
		select {
		case <-ctx.Done():
			return "", errors.WithStack(ctx.Err())
		case <-time.After(s.pollInterval):
		}

		var result taskResultResponse
		err = s.post(ctx, "/getTaskResult", &taskResultRequest{ClientKey: s.apiKey, TaskID: created.TaskID}, &result)
		if err != nil {
			return "", err
		}
		if result.ErrorID != 0 {
			return "", errors.Errorf("captcha solver failed task: %s", result.ErrorDescription)
		}
		if result.Status == "ready" {
			s.logger.Debug("captcha task ", created.TaskID, " solved", logging.StructuredLogInfo{"correlationId": correlationID})
			return result.Solution.Token, nil
		}
	}
}

// post sends a JSON payload to the provided service path and decodes the JSON response into out.
func (s *HTTPSolver) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.WithStack(fmt.Errorf("captcha solver returned status %d for %s", resp.StatusCode, path))
	}
	return errors.WithStack(json.NewDecoder(resp.Body).Decode(out))
}
