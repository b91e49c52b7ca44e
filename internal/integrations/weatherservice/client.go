package weatherservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с погодным сервисом
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента погодного сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCurrent получает текущую погоду для координат
func (c *Client) GetCurrent(ctx context.Context, latitude, longitude float64) (*Weather, error) {
	url := fmt.Sprintf("%s/v1/current?lat=%f&lng=%f", c.baseURL, latitude, longitude)

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

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var weather Weather
	if err := json.NewDecoder(resp.Body).Decode(&weather); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &weather, nil
}

// GetCurrentWithGracefulDegradation получает погоду с graceful degradation.
// При недоступности сервиса возвращает ErrServiceDegraded, симуляция в этом
// случае использует нейтральные значения вместо ошибки наружу.
func (c *Client) GetCurrentWithGracefulDegradation(ctx context.Context, latitude, longitude float64) (*Weather, error) {
	weather, err := c.GetCurrent(ctx, latitude, longitude)
	if err != nil {
		c.log.Error("WeatherService unavailable, applying graceful degradation for lat=%f lng=%f: %v",
			latitude, longitude, err)
		return nil, fmt.Errorf("%w: lat=%f, lng=%f, error=%v", ErrServiceDegraded, latitude, longitude, err)
	}

	return weather, nil
}
