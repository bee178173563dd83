package loadgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/okian/phonebook/internal/adapters/http/api"
	service "github.com/okian/phonebook/internal/app"
	"github.com/okian/phonebook/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newPhonebookServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	svc := service.New()
	require.NoError(t, svc.Start(ctx))
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	srv := api.NewServer(svc, svc)
	srv.Register(ctx, mux)
	ts := httptest.NewServer(srv.Handler(mux, []string{"*"}))
	t.Cleanup(ts.Close)
	return ts
}

func testConfig(url string) *Config {
	return &Config{
		BaseURL:     url,
		NumContacts: 50,
		Overwrites:  10,
		Workers:     4,
		Timeout:     5 * time.Second,
	}
}

func TestConfigValidate(t *testing.T) {
	valid := testConfig("http://localhost:5999")
	assert.NoError(t, valid.Validate())

	cases := map[string]func(c *Config){
		"empty url":           func(c *Config) { c.BaseURL = " " },
		"no contacts":         func(c *Config) { c.NumContacts = 0 },
		"too many overwrites": func(c *Config) { c.Overwrites = c.NumContacts + 1 },
		"negative overwrites": func(c *Config) { c.Overwrites = -1 },
		"no workers":          func(c *Config) { c.Workers = 0 },
		"no timeout":          func(c *Config) { c.Timeout = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := testConfig("http://localhost:5999")
			mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

func TestGenerateContacts(t *testing.T) {
	contacts, err := generateContacts(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, contacts, 100)

	phoneShape := regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	seen := make(map[string]struct{}, len(contacts))
	for _, c := range contacts {
		assert.True(t, strings.HasPrefix(c.Name, namePrefix))
		assert.Regexp(t, phoneShape, c.PhoneNumber)
		seen[c.Name] = struct{}{}
	}
	assert.Len(t, seen, 100, "names must be unique")
}

func TestGenerateContactsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := generateContacts(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateOverwrites(t *testing.T) {
	contacts, err := generateContacts(context.Background(), 5)
	require.NoError(t, err)

	overwrites, err := generateOverwrites(contacts, 3)
	require.NoError(t, err)
	require.Len(t, overwrites, 3)
	for i, o := range overwrites {
		assert.Equal(t, contacts[i].Name, o.Name)
		assert.NotEqual(t, contacts[i].PhoneNumber, o.PhoneNumber)
	}

	all, err := generateOverwrites(contacts, 50)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestExpectedBookLastWriteWins(t *testing.T) {
	want := expectedBook(
		[]Contact{{Name: "a", PhoneNumber: "1"}, {Name: "b", PhoneNumber: "2"}},
		[]Contact{{Name: "a", PhoneNumber: "3"}},
	)
	assert.Equal(t, map[string]string{"a": "3", "b": "2"}, want)
}

func TestVerifyBook(t *testing.T) {
	ctx := context.Background()
	want := map[string]string{"a": "1", "b": "2", "c": "3"}

	t.Run("matching book with extra entries", func(t *testing.T) {
		stats := &Stats{}
		got := map[string]string{"a": "1", "b": "2", "c": "3", "John": "657-532-1112"}
		assert.NoError(t, verifyBook(ctx, want, got, stats))
		assert.Equal(t, 3, stats.Verified)
		assert.Equal(t, 4, stats.Listed)
	})

	t.Run("missing and mismatched entries", func(t *testing.T) {
		stats := &Stats{}
		got := map[string]string{"a": "1", "b": "9"}
		err := verifyBook(ctx, want, got, stats)
		assert.ErrorIs(t, err, ErrVerification)
		assert.Equal(t, 1, stats.Verified)
		assert.Equal(t, 1, stats.Mismatched)
		assert.Equal(t, 1, stats.Missing)
	})
}

func TestRunAgainstPhonebook(t *testing.T) {
	ts := newPhonebookServer(t)
	cfg := testConfig(ts.URL)
	cfg.ReportFile = filepath.Join(t.TempDir(), "reports", "run.yaml")

	stats, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 60, stats.Generated)
	assert.Equal(t, 60, stats.Submitted)
	assert.Equal(t, 60, stats.Successful)
	assert.Zero(t, stats.Failed)
	assert.Equal(t, 10, stats.Overwritten)
	assert.Equal(t, 50, stats.Verified)
	// 50 generated names plus the seeded entry.
	assert.Equal(t, 51, stats.Listed)

	data, err := os.ReadFile(cfg.ReportFile)
	require.NoError(t, err)
	var report Report
	require.NoError(t, yaml.Unmarshal(data, &report))
	assert.Equal(t, ts.URL, report.BaseURL)
	assert.Equal(t, 60, report.Stats.Successful)
	assert.InDelta(t, 100.0, report.SuccessRate, 0.001)
}

func TestRunUnhealthyService(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	stats, err := Run(context.Background(), testConfig(ts.URL))
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, ErrUnhealthy)
}

func TestRunDetectsLostWrites(t *testing.T) {
	// A service that acknowledges every add but only keeps the first one.
	var (
		mu   sync.Mutex
		book = map[string]string{}
	)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {})
	mux.HandleFunc("POST /phonebook", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		if len(book) == 0 {
			book[r.PostFormValue("name")] = r.PostFormValue("phone_number")
		}
		mu.Unlock()
		_, _ = w.Write([]byte("{}"))
	})
	mux.HandleFunc("GET /phonebook", func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"phonebook": book})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	cfg := testConfig(ts.URL)
	cfg.Overwrites = 0
	stats, err := Run(context.Background(), cfg)
	require.ErrorIs(t, err, ErrVerification)
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.Verified)
	assert.Equal(t, 49, stats.Missing)
}

func TestRunCountsRejectedAdds(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {})
	mux.HandleFunc("POST /phonebook", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	mux.HandleFunc("GET /phonebook", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"phonebook":{}}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	stats, err := Run(context.Background(), testConfig(ts.URL))
	require.NoError(t, err, "rejected adds are not expected in the book")
	assert.Equal(t, 60, stats.Failed)
	assert.Zero(t, stats.Successful)
	assert.Zero(t, stats.Verified)
}
