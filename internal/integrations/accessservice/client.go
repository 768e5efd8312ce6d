package accessservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// Client клиент сервиса доступов (роли и руководимые отделы пользователя)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса доступов
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUserAccess получает роли пользователя
func (c *Client) GetUserAccess(ctx context.Context, userID int64) (*UserAccess, error) {
	url := fmt.Sprintf("%s/internal/users/%d/access", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var access UserAccess
	if err := json.NewDecoder(resp.Body).Decode(&access); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &access, nil
}

// GetActor получает участника запроса с graceful degradation.
// При недоступности сервиса возвращает участника без ролей вместе с ErrServiceDegraded:
// ему остаются только операции над собственными бронированиями и расписанием.
func (c *Client) GetActor(ctx context.Context, userID int64) (*domain.Actor, error) {
	access, err := c.GetUserAccess(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.log.Info("No access record for user_id=%d", userID)
			return nil, err
		}

		c.log.Error("AccessService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return &domain.Actor{UserID: userID}, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	return &domain.Actor{
		UserID:         userID,
		Roles:          access.Roles,
		LedDepartments: access.LedDepartments,
	}, nil
}
