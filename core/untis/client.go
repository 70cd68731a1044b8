package untis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"untis-notifier/core/utils"

	"go.uber.org/zap"
)

const (
	rpcPath      = "/WebUntis/jsonrpc.do"
	absencesPath = "/WebUntis/api/classreg/absences/students"
	homeworkPath = "/WebUntis/api/homeworks/lessons"
	examsPath    = "/WebUntis/api/exams"
)

// Client talks to one school's WebUntis instance. Every call opens its own
// session and closes it afterwards, so a Client is safe for concurrent use.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a client for the configured school.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout()
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Transport: transport, Timeout: timeout},
		logger: logger,
	}
}

// session is one authenticated login.
type session struct {
	ID         string `json:"sessionId"`
	PersonID   int    `json:"personId"`
	PersonType int    `json:"personType"`
	KlasseID   int    `json:"klasseId"`
}

func (c *Client) cookie(s *session) string {
	school := base64.StdEncoding.EncodeToString([]byte(c.cfg.School))
	return fmt.Sprintf("JSESSIONID=%s; schoolname=\"_%s\"", s.ID, school)
}

type rpcRequest struct {
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	JSONRPC string `json:"jsonrpc"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// RPCError is a JSON-RPC level failure reported by WebUntis.
type RPCError struct {
	Method  string
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("untis %s failed (%d): %s", e.Method, e.Code, e.Message)
}

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("untis %s returned status %d: %s", e.Path, e.Status, e.Body)
}

func (c *Client) rpc(ctx context.Context, s *session, method string, params any, out any) error {
	body, err := json.Marshal(rpcRequest{
		ID:      strconv.FormatInt(time.Now().UnixNano(), 10),
		Method:  method,
		Params:  params,
		JSONRPC: "2.0",
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	endpoint := c.cfg.BaseURL() + rpcPath + "?school=" + url.QueryEscape(c.cfg.School)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s != nil {
		req.Header.Set("Cookie", c.cookie(s))
	}

	var resp rpcResponse
	if err := c.do(req, rpcPath, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return &RPCError{Method: method, Code: resp.Error.Code, Message: resp.Error.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}

// rest performs an authenticated GET against the JSON API and decodes its "data" envelope.
func (c *Client) rest(ctx context.Context, s *session, path string, query url.Values, out any) error {
	endpoint := c.cfg.BaseURL() + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cookie", c.cookie(s))

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.do(req, path, &envelope); err != nil {
		return err
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("untis %s returned no data", path)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(req *http.Request, path string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Path: path, Status: resp.StatusCode, Body: string(data)}
	}

	c.logger.Debug("Untis response", zap.String("path", path), zap.Int("bytes", len(data)))

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", path, err)
	}
	return nil
}

func (c *Client) login(ctx context.Context) (*session, error) {
	params := map[string]string{
		"user":     c.cfg.Username,
		"password": c.cfg.Password,
		"client":   c.cfg.Client,
	}

	var s session
	if err := c.rpc(ctx, nil, "authenticate", params, &s); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if s.ID == "" {
		return nil, fmt.Errorf("login failed: no session id returned")
	}
	return &s, nil
}

func (c *Client) logout(ctx context.Context, s *session) {
	if err := c.rpc(ctx, s, "logout", map[string]any{}, nil); err != nil {
		c.logger.Warn("Untis logout failed", zap.Error(err))
	}
}

// withSession logs in, runs fn, and logs out again regardless of fn's result.
func (c *Client) withSession(ctx context.Context, fn func(s *session) error) error {
	s, err := c.login(ctx)
	if err != nil {
		return err
	}
	defer c.logout(ctx, s)
	return fn(s)
}

func dateParam(t time.Time) string {
	return strconv.Itoa(utils.EncodeDate(t))
}

// Timetable returns the logged-in user's own lessons between start and end inclusive.
func (c *Client) Timetable(ctx context.Context, start, end time.Time) ([]Lesson, error) {
	var lessons []Lesson
	err := c.withSession(ctx, func(s *session) error {
		fields := []string{"id", "name", "longname", "externalkey"}
		params := map[string]any{
			"options": map[string]any{
				"id": time.Now().UnixMilli(),
				"element": map[string]int{
					"id":   s.PersonID,
					"type": s.PersonType,
				},
				"startDate":        utils.EncodeDate(start),
				"endDate":          utils.EncodeDate(end),
				"showLsText":       true,
				"showStudentgroup": true,
				"showLsNumber":     true,
				"showSubstText":    true,
				"showInfo":         true,
				"showBooking":      true,
				"klasseFields":     fields,
				"roomFields":       fields,
				"subjectFields":    fields,
				"teacherFields":    fields,
			},
		}
		return c.rpc(ctx, s, "getTimetable", params, &lessons)
	})
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

// Absences returns the student's absences between start and end.
func (c *Client) Absences(ctx context.Context, start, end time.Time) ([]Absence, error) {
	var result struct {
		Absences []Absence `json:"absences"`
	}
	err := c.withSession(ctx, func(s *session) error {
		query := url.Values{
			"startDate":      {dateParam(start)},
			"endDate":        {dateParam(end)},
			"studentId":      {strconv.Itoa(s.PersonID)},
			"excuseStatusId": {"-1"},
		}
		return c.rest(ctx, s, absencesPath, query, &result)
	})
	if err != nil {
		return nil, err
	}
	return result.Absences, nil
}

// Homework returns the homework assignments between start and end together
// with the lessons they belong to.
func (c *Client) Homework(ctx context.Context, start, end time.Time) (*HomeworkResult, error) {
	var result HomeworkResult
	err := c.withSession(ctx, func(s *session) error {
		query := url.Values{
			"startDate": {dateParam(start)},
			"endDate":   {dateParam(end)},
		}
		return c.rest(ctx, s, homeworkPath, query, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Exams returns the exams between start and end.
func (c *Client) Exams(ctx context.Context, start, end time.Time) ([]Exam, error) {
	var result struct {
		Exams []Exam `json:"exams"`
	}
	err := c.withSession(ctx, func(s *session) error {
		query := url.Values{
			"startDate":  {dateParam(start)},
			"endDate":    {dateParam(end)},
			"studentId":  {strconv.Itoa(s.PersonID)},
			"klasseId":   {"-1"},
			"withGrades": {"true"},
		}
		return c.rest(ctx, s, examsPath, query, &result)
	})
	if err != nil {
		return nil, err
	}
	return result.Exams, nil
}
