package videosdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/sagarmamodia/RemediX/config"
)

// ErrRoomUnavailable is returned when the provider cannot create or delete a
// room. Rooms are provisioned post-commit, so callers surface this without
// touching the reservation itself.
var ErrRoomUnavailable = errors.New("videosdk: room service unavailable")

const tokenExpiry = 120 * time.Minute

// Client provisions video rooms and signs participant tokens for them.
type Client struct {
	baseURL    string
	apiKey     string
	secret     string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(cfg config.VideoSDKConfig, log *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		secret:  cfg.Secret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Token signs a short-lived join token for the video provider.
func (c *Client) Token() (string, error) {
	if c.apiKey == "" || c.secret == "" {
		return "", errors.New("videosdk: api key and secret are required")
	}

	claims := jwtlib.MapClaims{
		"apikey":      c.apiKey,
		"permissions": []string{"allow_join"},
		"version":     2,
		"exp":         time.Now().Add(tokenExpiry).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.secret))
}

type createRoomResponse struct {
	RoomID string `json:"roomId"`
}

// CreateRoom provisions a new room and returns its id.
func (c *Client) CreateRoom(ctx context.Context) (string, error) {
	token, err := c.Token()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/rooms", nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrRoomUnavailable, err)
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRoomUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status %d: %s", ErrRoomUnavailable, resp.StatusCode, string(raw))
	}

	var result createRoomResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrRoomUnavailable, err)
	}
	if result.RoomID == "" {
		return "", fmt.Errorf("%w: empty room id", ErrRoomUnavailable)
	}

	return result.RoomID, nil
}

// DeactivateRoom releases a room once its consultation completes.
func (c *Client) DeactivateRoom(ctx context.Context, roomID string) error {
	token, err := c.Token()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/rooms/deactivate", nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrRoomUnavailable, err)
	}
	q := req.URL.Query()
	q.Set("roomId", roomID)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRoomUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.log.Warnf("Failed to deactivate room %s: status=%d body=%s", roomID, resp.StatusCode, string(raw))
		return fmt.Errorf("%w: unexpected status %d", ErrRoomUnavailable, resp.StatusCode)
	}
	return nil
}
