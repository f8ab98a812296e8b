package authservice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client клиент внешнего сервиса аутентификации.
// Сервис владеет пользователями и токенами; мы только проверяем bearer-токен
// и получаем личность (id, имя, табельный номер, признак администратора).
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger

	// Опциональный кеш проверенных токенов
	cache       *redis.Client
	identityTTL time.Duration
}

// NewClient создает новый экземпляр клиента сервиса аутентификации
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithCache включает кеширование проверенных токенов в Redis.
// Недоступность кеша не ломает проверку - запрос уходит в сервис напрямую.
func (c *Client) WithCache(cache *redis.Client, ttl time.Duration) *Client {
	c.cache = cache
	c.identityTTL = ttl
	return c
}

// VerifyToken проверяет bearer-токен и возвращает личность пользователя
func (c *Client) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrTokenInvalid
	}

	if identity := c.cacheGet(ctx, token); identity != nil {
		return identity, nil
	}

	url := fmt.Sprintf("%s/internal/auth/verify", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrTokenInvalid
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.cacheSet(ctx, token, &identity)

	return &identity, nil
}

// cacheGet пытается достать личность из кеша.
// Любая ошибка кеша - повод сходить в сервис, а не падать.
func (c *Client) cacheGet(ctx context.Context, token string) *Identity {
	if c.cache == nil {
		return nil
	}

	data, err := c.cache.Get(ctx, cacheKey(token)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("authservice: identity cache unavailable, falling back to direct verify: %v", err)
		}
		return nil
	}

	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		c.log.Warn("authservice: corrupt identity cache entry, ignoring: %v", err)
		return nil
	}

	return &identity
}

// cacheSet кладет личность в кеш с TTL
func (c *Client) cacheSet(ctx context.Context, token string, identity *Identity) {
	if c.cache == nil {
		return
	}

	data, err := json.Marshal(identity)
	if err != nil {
		return
	}

	if err := c.cache.Set(ctx, cacheKey(token), data, c.identityTTL).Err(); err != nil {
		c.log.Warn("authservice: failed to cache identity: %v", err)
	}
}

// cacheKey ключ кеша по токену.
// Храним хеш, а не сам токен, чтобы не светить токены в Redis.
func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:identity:" + hex.EncodeToString(sum[:])
}
