package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
)

const (
	opGetNotifications = "get_notifications"
	opGetSuccess       = "get_success"
	opGetError         = "get_error"
	opPostSuccess      = "post_success"
	opPostError        = "post_error"

	// QueryKeyIDIn фильтр по набору id через запятую
	QueryKeyIDIn = "id__in"

	headerRequestID = "X-Request-ID"
)

// Client клиент для работы с API контроллера (шаблоны уведомлений организации)
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	metrics    MetricsCollector
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL, token string, timeout time.Duration, metrics MetricsCollector) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
	}
}

// GetNotifications получает страницу шаблонов уведомлений организации
func (c *Client) GetNotifications(ctx context.Context, orgID int64, params domain.QueryParams) (*ListResponse[domain.NotificationTemplate], error) {
	return getList[domain.NotificationTemplate](ctx, c, opGetNotifications, c.orgURL(orgID, "notification_templates"), params.Values())
}

// GetSuccess получает шаблоны, привязанные к оповещениям об успехе, среди idIn
func (c *Client) GetSuccess(ctx context.Context, orgID int64, idIn string) (*ListResponse[domain.TemplateRef], error) {
	return getList[domain.TemplateRef](ctx, c, opGetSuccess, c.orgURL(orgID, "notification_templates_success"), url.Values{QueryKeyIDIn: {idIn}})
}

// GetError получает шаблоны, привязанные к оповещениям об ошибке, среди idIn
func (c *Client) GetError(ctx context.Context, orgID int64, idIn string) (*ListResponse[domain.TemplateRef], error) {
	return getList[domain.TemplateRef](ctx, c, opGetError, c.orgURL(orgID, "notification_templates_error"), url.Values{QueryKeyIDIn: {idIn}})
}

// PostSuccess привязывает (или отвязывает) шаблон к оповещениям об успехе
func (c *Client) PostSuccess(ctx context.Context, orgID int64, req AssociationRequest) error {
	return c.post(ctx, opPostSuccess, c.orgURL(orgID, "notification_templates_success"), req)
}

// PostError привязывает (или отвязывает) шаблон к оповещениям об ошибке
func (c *Client) PostError(ctx context.Context, orgID int64, req AssociationRequest) error {
	return c.post(ctx, opPostError, c.orgURL(orgID, "notification_templates_error"), req)
}

func (c *Client) orgURL(orgID int64, collection string) string {
	return fmt.Sprintf("%s/api/v2/organizations/%d/%s/", c.baseURL, orgID, collection)
}

// getList выполняет GET запрос и декодирует страницу результатов
func getList[T any](ctx context.Context, c *Client, op, endpoint string, query url.Values) (result *ListResponse[T], err error) {
	start := time.Now()
	defer func() {
		c.observe(op, start, err)
	}()

	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - failed to execute request: %v", ErrInternal, op, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(op, resp, http.StatusOK); err != nil {
		return nil, err
	}

	var list ListResponse[T]
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: %s - failed to decode response: %v", ErrInvalidResponse, op, err)
	}

	return &list, nil
}

// post выполняет POST запрос на привязку/отвязку
func (c *Client) post(ctx context.Context, op, endpoint string, body AssociationRequest) (err error) {
	start := time.Now()
	defer func() {
		c.observe(op, start, err)
	}()

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %s - failed to marshal request: %v", ErrInternal, op, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s - failed to execute request: %v", ErrInternal, op, err)
	}
	defer resp.Body.Close()

	return checkStatus(op, resp, http.StatusOK, http.StatusCreated, http.StatusNoContent)
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, uuid.New().String())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

func (c *Client) observe(op string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveUpstream(op, time.Since(start).Seconds(), err)
}

// checkStatus сопоставляет статус-код ответа с ошибками клиента
func checkStatus(op string, resp *http.Response, accepted ...int) error {
	for _, code := range accepted {
		if resp.StatusCode == code {
			return nil
		}
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s - status %d", ErrUnauthorized, op, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s - unexpected status code %d: %s", ErrInvalidResponse, op, resp.StatusCode, string(body))
	}
}
