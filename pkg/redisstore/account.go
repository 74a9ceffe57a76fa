package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Account records are cached as the marshalled bytes the caller hands over;
// this package does not know the record shape.

func accountKey(email string) string {
	return fmt.Sprintf("account:%v", email)
}

func (c *Client) GetAccount(ctx context.Context, email string) ([]byte, error) {
	res, err := c.rdb.Get(ctx, accountKey(email)).Bytes()
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) SetAccount(ctx context.Context, email string, data []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, accountKey(email), data, ttl).Err()
}

func (c *Client) DelAccount(ctx context.Context, email string) error {
	return c.rdb.Del(ctx, accountKey(email)).Err()
}
