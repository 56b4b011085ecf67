// Package client - HTTP-клиент API страховых предложений, которым пользуется фронтенд.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/linemk/travel-insurance/internal/domain/models"
)

const (
	// MsgSomethingWrong - ответ с ошибкой в JSON, но без detail
	MsgSomethingWrong = "Что-то пошло не так"
	// MsgServerError - тело ответа с ошибкой не удалось разобрать
	MsgServerError = "Ошибка сервера"
)

// APIError - не-2xx ответ API
type APIError struct {
	Status int
	// Detail - поле detail из тела ответа, пусто если его не было
	Detail  string
	message string
}

func (e *APIError) Error() string {
	return e.message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

// WithHTTPClient подменяет http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken задаёт admin-токен для изменяющих запросов
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	const op = "client.do"

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" && method != http.MethodGet {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %s %s: %w", op, method, path, err)
	}
	defer resp.Body.Close()

	return handleResponse(resp, out)
}

// handleResponse превращает не-2xx ответ в *APIError, иначе декодирует тело в out
func handleResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}

		var errBody struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
			apiErr.message = MsgServerError
			return apiErr
		}
		apiErr.Detail = errBody.Detail
		apiErr.message = errBody.Detail
		if apiErr.message == "" {
			apiErr.message = MsgSomethingWrong
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client.handleResponse: failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) GetOffers(ctx context.Context) ([]models.Offer, error) {
	var offers []models.Offer
	if err := c.do(ctx, http.MethodGet, "/offers", nil, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (c *Client) GetOfferByID(ctx context.Context, id int64) (*models.Offer, error) {
	var offer models.Offer
	if err := c.do(ctx, http.MethodGet, "/offers/"+strconv.FormatInt(id, 10), nil, &offer); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (c *Client) FilterOffers(ctx context.Context, f models.OfferFilter) ([]models.Offer, error) {
	path := "/offers/filter"
	if q := f.Query(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	var offers []models.Offer
	if err := c.do(ctx, http.MethodGet, path, nil, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (c *Client) CreateOffer(ctx context.Context, in models.OfferInput) (*models.Offer, error) {
	var offer models.Offer
	if err := c.do(ctx, http.MethodPost, "/offers", in, &offer); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (c *Client) UpdateOffer(ctx context.Context, id int64, in models.OfferInput) (*models.Offer, error) {
	var offer models.Offer
	if err := c.do(ctx, http.MethodPut, "/offers/"+strconv.FormatInt(id, 10), in, &offer); err != nil {
		return nil, err
	}
	return &offer, nil
}

// DeleteOffer удаляет предложение; тело ответа не используется
func (c *Client) DeleteOffer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/offers/"+strconv.FormatInt(id, 10), nil, nil)
}
