package jsonplaceholder

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"postfeed/internal/core/posts"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, append([]Option{WithRateLimit(0, 0)}, opts...)...)
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		wantErr     bool
		errContains string
		wantBase    string
	}{
		{name: "public api", baseURL: DefaultBaseURL, wantBase: DefaultBaseURL},
		{name: "trailing slash trimmed", baseURL: "http://localhost:8081/", wantBase: "http://localhost:8081"},
		{name: "empty", baseURL: "  ", wantErr: true, errContains: "baseURL is required"},
		{name: "bad scheme", baseURL: "ftp://example.com", wantErr: true, errContains: "scheme must be http or https"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBase, client.BaseURL())
		})
	}
}

func TestListPosts_Request(t *testing.T) {
	var gotMethod, gotPath, gotLimit, gotAccept, gotUA, gotRequestID string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("_limit")
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"userId":1,"id":1,"title":"first","body":"one"},{"userId":1,"id":2,"title":"second","body":"two"}]`))
	}, WithUserAgent("postfeed-test"))

	result, err := client.ListPosts(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/posts", gotPath)
	assert.Equal(t, "10", gotLimit)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "postfeed-test", gotUA)
	_, parseErr := uuid.Parse(gotRequestID)
	assert.NoError(t, parseErr, "X-Request-ID should be a UUID")

	require.Len(t, result, 2)
	assert.Equal(t, posts.Post{UserID: 1, ID: 1, Title: "first", Body: "one"}, result[0])
	assert.Equal(t, "second", result[1].Title)
}

func TestListPosts_TruncatesToLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Server ignores _limit
		_ = json.NewEncoder(w).Encode([]posts.Post{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}})
	})

	result, err := client.ListPosts(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, 1, result[0].ID)
	assert.Equal(t, 2, result[1].ID)
}

func TestListPosts_InvalidLimit(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	for _, limit := range []int{0, -1} {
		_, err := client.ListPosts(context.Background(), limit)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidLimit)
	}
	assert.False(t, called, "no request should be sent for an invalid limit")
}

func TestCreatePost_Request(t *testing.T) {
	var gotMethod, gotPath, gotAccept, gotContentType string
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"title":"t","body":"b","id":101}`))
	})

	created, err := client.CreatePost(context.Background(), posts.Draft{Title: "t", Body: "b"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/posts", gotPath)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]any{"title": "t", "body": "b"}, gotBody, "userId should be omitted when zero")

	assert.Equal(t, 101, created.ID)
	assert.Equal(t, "t", created.Title)
	assert.Equal(t, "b", created.Body)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		call       func(c *Client) error
		check      func(t *testing.T, err error)
		wantStatus int
	}{
		{
			name: "404 is an HTTPError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusNotFound)
			},
			check: func(t *testing.T, err error) {
				assert.True(t, IsHTTPError(err))
				assert.False(t, IsNetworkError(err))
				assert.Contains(t, err.Error(), "nope")
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "500 is an HTTPError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			check: func(t *testing.T, err error) {
				assert.True(t, IsHTTPError(err))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "malformed JSON is a ParseError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not":"an array"`))
			},
			check: func(t *testing.T, err error) {
				assert.True(t, IsParseError(err))
				assert.False(t, IsHTTPError(err))
			},
		},
		{
			name: "wrong shape is a ParseError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":1}`))
			},
			check: func(t *testing.T, err error) {
				assert.True(t, IsParseError(err))
			},
		},
		{
			name: "created post with null body is a ParseError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`null`))
			},
			call: func(c *Client) error {
				_, err := c.CreatePost(context.Background(), posts.Draft{Title: "t", Body: "b"})
				return err
			},
			check: func(t *testing.T, err error) {
				assert.True(t, IsParseError(err))
				assert.ErrorIs(t, err, errEmptyPost)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			call := tt.call
			if call == nil {
				call = func(c *Client) error {
					_, err := c.ListPosts(context.Background(), 5)
					return err
				}
			}
			err := call(client)
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, tt.wantStatus, StatusCode(err))
		})
	}
}

func TestClient_HTTPErrorBodyIsCapped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 5000)))
	})

	_, err := client.CreatePost(context.Background(), posts.Draft{Title: "t"})
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Len(t, httpErr.Body, maxErrorBody)
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewClient(baseURL, WithRateLimit(0, 0))
	require.NoError(t, err)

	_, err = client.ListPosts(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.Equal(t, 0, StatusCode(err))
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListPosts(ctx, 10)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := client.ListPosts(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestClient_RateLimitWaitHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}, WithRateLimit(0.001, 1))

	// First request consumes the only token
	_, err := client.ListPosts(context.Background(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = client.ListPosts(ctx, 1)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestNewClient_HTTPClientOptions(t *testing.T) {
	t.Run("caller's client is not modified", func(t *testing.T) {
		shared := &http.Client{}
		c, err := NewClient("http://example.com", WithHTTPClient(shared), WithTimeout(time.Second))
		require.NoError(t, err)

		assert.Equal(t, time.Duration(0), shared.Timeout)
		assert.NotSame(t, shared, c.httpClient)
		assert.Equal(t, time.Second, c.httpClient.Timeout)
	})

	t.Run("timeout survives either option order", func(t *testing.T) {
		c, err := NewClient("http://example.com", WithTimeout(2*time.Second), WithHTTPClient(&http.Client{}))
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, c.httpClient.Timeout)
	})

	t.Run("custom client keeps its own timeout", func(t *testing.T) {
		c, err := NewClient("http://example.com", WithHTTPClient(&http.Client{Timeout: 5 * time.Second}))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	})

	t.Run("default timeout", func(t *testing.T) {
		c, err := NewClient("http://example.com")
		require.NoError(t, err)
		assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
	})

	t.Run("nil client is ignored", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}, WithHTTPClient(nil))

		require.NotNil(t, client.httpClient)
		_, err := client.ListPosts(context.Background(), 1)
		assert.NoError(t, err)
	})
}

func TestWithRateLimit_ZeroBurstStillAllowsRequests(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}, WithRateLimit(100, 0))

	require.NotNil(t, client.limiter)
	assert.Equal(t, 1, client.limiter.Burst())

	_, err := client.ListPosts(context.Background(), 1)
	assert.NoError(t, err)
}
