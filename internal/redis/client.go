package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// Session is the identity attached to one issued token.
type Session struct {
	UserID    string    `json:"user_id"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// SetSession stores a session under its token ID and indexes it per user so
// a credential reset can revoke every live session of that user.
func (c *Client) SetSession(tokenID string, session *Session, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := c.rdb.Set(ctx, "session:"+tokenID, jsonData, ttl).Err(); err != nil {
		return err
	}
	if err := c.rdb.SAdd(ctx, "user_sessions:"+session.UserID, tokenID).Err(); err != nil {
		return err
	}
	return c.rdb.Expire(ctx, "user_sessions:"+session.UserID, ttl).Err()
}

func (c *Client) GetSession(tokenID string) (*Session, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "session:"+tokenID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(tokenID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "session:"+tokenID).Err()
}

// RevokeUserSessions drops every live session of the given user.
func (c *Client) RevokeUserSessions(userID string) error {
	ctx := context.Background()
	tokenIDs, err := c.rdb.SMembers(ctx, "user_sessions:"+userID).Result()
	if err != nil {
		return fmt.Errorf("failed to list user sessions: %w", err)
	}

	for _, tokenID := range tokenIDs {
		if err := c.rdb.Del(ctx, "session:"+tokenID).Err(); err != nil {
			return err
		}
	}
	return c.rdb.Del(ctx, "user_sessions:"+userID).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
