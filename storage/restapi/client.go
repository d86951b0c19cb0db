// Package restapi is the client of the school records REST API.
package restapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
)

const (
	HeaderRequestID = "X-Request-ID"

	logAPIError     = "API Error"
	logRequestError = "API Request Error"
)

// Client talks to the API; it is safe for concurrent use.
// Failed requests are never retried.
type Client struct {
	baseURL      *url.URL
	http         *http.Client
	logger       core.Logger
	defaultLimit int
}

func NewClient(conf *core.Config, logger core.Logger) (*Client, error) {
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(conf, "conf"),
		vala.IsNotNil(logger, "logger"),
	).Check(); err != nil {
		return nil, err
	}
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(conf.API.BaseURL, "api.baseURL"),
		vala.GreaterThan(int(conf.API.Timeout), 0, "api.timeout"),
	).Check(); err != nil {
		return nil, err
	}

	base, err := url.Parse(strings.TrimRight(conf.API.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing api.baseURL")
	}
	return &Client{
		baseURL:      base,
		http:         &http.Client{Timeout: conf.API.Timeout},
		logger:       logger,
		defaultLimit: conf.API.DefaultLimit,
	}, nil
}

func (c *Client) Students() *StudentRepository {
	return &StudentRepository{resource[student.Student, student.NewStudent, student.UpdateStudent]{c, studentsPath}}
}

func (c *Client) Subjects() *SubjectRepository {
	return &SubjectRepository{resource[subject.Subject, subject.NewSubject, subject.UpdateSubject]{c, subjectsPath}}
}

func (c *Client) Exams() *ExamRepository {
	return &ExamRepository{resource[exam.Exam, exam.NewExam, exam.UpdateExam]{c, examsPath}}
}

func (c *Client) Grades() *GradeRepository {
	return &GradeRepository{resource[grade.Grade, grade.NewGrade, grade.UpdateGrade]{c, gradesPath}}
}

func (c *Client) url(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()
	return u.String()
}

func (c *Client) pageQuery(page core.Page) url.Values {
	page = page.Clean(c.defaultLimit)
	q := make(url.Values, 2)
	q.Set("skip", strconv.Itoa(page.Skip))
	q.Set("limit", strconv.Itoa(page.Limit))
	return q
}

// do sends a request and decodes the JSON response into out (if not nil).
// A non-2xx response is returned as an *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := sonic.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		err = errors.Wrapf(err, "%s %s", method, path)
		c.logger.Error(logRequestError, err, map[string]interface{}{"requestID": reqID})
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrapf(err, "reading response of %s %s", method, path)
		c.logger.Error(logRequestError, err, map[string]interface{}{"requestID": reqID})
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, method, path, data)
		c.logger.Error(logAPIError, apiErr, map[string]interface{}{
			"requestID": reqID,
			"body":      string(data),
		})
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding response of %s %s", method, path)
	}
	return nil
}

func itemPath(resource string, id int) string {
	return fmt.Sprintf("%s%d", resource, id)
}

// Timeout is the request timeout in use.
func (c *Client) Timeout() time.Duration { return c.http.Timeout }
