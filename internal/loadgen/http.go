package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/okian/phonebook/pkg/logger"
)

const workerChannelMultiplier = 2

// HTTPClient wraps http.Client for the phonebook endpoints.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(cfg *Config) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Health returns nil when /healthz answers 200.
func (c *HTTPClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// Add posts one contact as form data and returns the response status.
func (c *HTTPClient) Add(ctx context.Context, contact Contact) (int, error) {
	form := url.Values{"name": {contact.Name}, "phone_number": {contact.PhoneNumber}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/phonebook",
		strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post contact: %w", err)
	}
	defer drain(resp)
	return resp.StatusCode, nil
}

// List fetches the whole phonebook.
func (c *HTTPClient) List(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/phonebook", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list phonebook: %w", err)
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list phonebook: status %d", resp.StatusCode)
	}

	var body struct {
		Phonebook map[string]string `json:"phonebook"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode phonebook: %w", err)
	}
	return body.Phonebook, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	if err := resp.Body.Close(); err != nil {
		logger.Get().Debug(context.Background(), "failed to close response body", logger.Error(err))
	}
}

// submitContacts posts contacts through a pool of workers and returns the
// ones the service accepted.
func submitContacts(ctx context.Context, client *HTTPClient, workers int, contacts []Contact, stats *Stats) []Contact {
	log := logger.Get()
	log.Info(ctx, "submitting contacts",
		logger.Int("contacts", len(contacts)), logger.Int("workers", workers))

	var (
		submitted  int64
		successful int64
		failed     int64
		mu         sync.Mutex
		accepted   = make([]Contact, 0, len(contacts))
	)

	jobs := make(chan Contact, workers*workerChannelMultiplier)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for contact := range jobs {
				atomic.AddInt64(&submitted, 1)
				status, err := client.Add(ctx, contact)
				if err != nil || status != http.StatusOK {
					atomic.AddInt64(&failed, 1)
					log.Debug(ctx, "contact rejected",
						logger.String("name", contact.Name), logger.Int("status", status), logger.Any("error", err))
					continue
				}
				atomic.AddInt64(&successful, 1)
				mu.Lock()
				accepted = append(accepted, contact)
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, contact := range contacts {
			select {
			case <-ctx.Done():
				return
			case jobs <- contact:
			}
		}
	}()
	wg.Wait()

	stats.Submitted += int(atomic.LoadInt64(&submitted))
	stats.Successful += int(atomic.LoadInt64(&successful))
	stats.Failed += int(atomic.LoadInt64(&failed))

	log.Info(ctx, "submission round completed",
		logger.Int("successful", int(successful)), logger.Int("failed", int(failed)))
	return accepted
}
