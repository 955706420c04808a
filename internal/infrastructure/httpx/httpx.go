package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	infraconfig "cryptomarkets-service/internal/infrastructure/config"
	"cryptomarkets-service/internal/infrastructure/metrics"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// ErrRetriesExhausted is returned once a bounded policy has used all of its attempts.
var ErrRetriesExhausted = errors.New("httpx: retries exhausted")

// StatusError reports a non-200 upstream response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d", e.Code) }

// RetryPolicy controls how DoJSON retries failed attempts.
//
// With Forever set the client waits Delay between attempts and only stops on
// success or context cancellation. Otherwise it backs off exponentially from
// InitialInterval up to MaxInterval and gives up after MaxAttempts attempts.
type RetryPolicy struct {
	Forever         bool
	MaxAttempts     int
	Delay           time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     infraconfig.DefaultMaxAttempts,
		Delay:           infraconfig.DefaultRetryDelay,
		InitialInterval: time.Second,
		MaxInterval:     infraconfig.DefaultRetryDelay,
	}
}

func (p RetryPolicy) backOff() backoff.BackOff {
	if p.Forever {
		d := p.Delay
		if d <= 0 {
			d = infraconfig.DefaultRetryDelay
		}
		return backoff.NewConstantBackOff(d)
	}
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = infraconfig.DefaultMaxAttempts
	}
	exp := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		exp.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		exp.MaxInterval = p.MaxInterval
	}
	exp.MaxElapsedTime = 0
	return backoff.WithMaxRetries(exp, uint64(attempts-1))
}

type Client struct {
	HTTP           *http.Client
	Token          string
	Retry          RetryPolicy
	AttemptTimeout time.Duration
	Log            *zap.Logger
}

// DoJSON sends req until a 200 response is decoded into out, retrying any
// other status, transport failure or malformed body according to c.Retry.
// Each attempt gets its own AttemptTimeout.
func (c *Client) DoJSON(ctx context.Context, req *http.Request, out any) error {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if c.HTTP == nil {
		c.HTTP = http.DefaultClient
	}
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("url", req.URL.String()))

	attempt := 0
	op := func() error {
		attempt++
		err := c.do(ctx, req, out)
		if err != nil {
			metrics.FetchAttempts.WithLabelValues("error").Inc()
			return err
		}
		metrics.FetchAttempts.WithLabelValues("ok").Inc()
		return nil
	}
	notify := func(err error, next time.Duration) {
		log.Warn("fetch.retry",
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", next),
			zap.Error(err),
		)
	}

	err := backoff.RetryNotify(op, backoff.WithContext(c.Retry.backOff(), ctx), notify)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("httpx: attempt %d: %w", attempt, ctxErr)
	}
	log.Error("fetch.gave_up", zap.Int("attempts", attempt), zap.Error(err))
	return fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempt, err)
}

func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	timeout := c.AttemptTimeout
	if timeout <= 0 {
		timeout = infraconfig.DefaultAttemptTimeout
	}
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.HTTP.Do(req.Clone(actx))
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
