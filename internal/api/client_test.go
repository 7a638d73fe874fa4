package api

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/analogio/analog-cli/internal/testutil"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient()
	testutil.AssertNil(t, err)
	testutil.AssertTrue(t, client.httpClient != nil)
	testutil.AssertEqual(t, client.baseURL, BaseURL)
	testutil.AssertEqual(t, client.retries, defaultRetries)
	testutil.AssertTrue(t, client.cache == nil)
}

func TestNewClient_Options(t *testing.T) {
	hc := &http.Client{}
	mc := &mockCache{data: map[string][]byte{}}
	client, err := NewClient(
		WithHTTPClient(hc),
		WithTimeout(3*time.Second),
		WithBaseURL("http://localhost:9999/api"),
		WithCache(mc),
		WithRetries(5, time.Second),
		WithUserAgent("analog-cli/test"),
	)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, client.httpClient, hc)
	testutil.AssertEqual(t, hc.Timeout, 3*time.Second)
	testutil.AssertEqual(t, client.baseURL, "http://localhost:9999/api")
	testutil.AssertEqual(t, client.retries, 5)
	testutil.AssertEqual(t, client.retryBackoff, time.Second)
	testutil.AssertEqual(t, client.userAgent, "analog-cli/test")
}

func TestNewClient_NegativeRetries(t *testing.T) {
	client, err := NewClient(WithRetries(-3, 0))
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, client.retries, 0)
	testutil.AssertEqual(t, client.retryBackoff, defaultRetryBackoff)
}

func TestMaxRetryWait(t *testing.T) {
	testutil.AssertEqual(t, MaxRetryWait(0, 0), time.Duration(0))
	testutil.AssertEqual(t, MaxRetryWait(-1, 0), time.Duration(0))

	// 250ms and 375ms, each stretched by the randomization factor
	testutil.AssertEqual(t, MaxRetryWait(2, 0), 375*time.Millisecond+562500*time.Microsecond)
	testutil.AssertEqual(t, MaxRetryWait(1, time.Second), 1500*time.Millisecond)
}

func TestClient_Timezone(t *testing.T) {
	client, err := NewClient()
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, client.Timezone().String(), "Europe/Copenhagen")
}

func TestFetchOpenStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "open", body: testutil.SampleOpenResponse, want: true},
		{name: "closed", body: testutil.SampleClosedResponse, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := testutil.NewRouteServer(map[string]string{EndpointOpen: tt.body})
			defer ms.Close()

			open, err := newTestClient(ms.URL).FetchOpenStatus(context.Background())
			testutil.AssertNil(t, err)
			testutil.AssertEqual(t, open, tt.want)
		})
	}
}

func TestFetchOpenStatus_Headers(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{EndpointOpen: testutil.SampleOpenResponse})
	defer ms.Close()

	_, err := newTestClient(ms.URL).FetchOpenStatus(context.Background())
	testutil.AssertNil(t, err)

	req := ms.LastRequest()
	testutil.AssertEqual(t, req.Method, http.MethodGet)
	testutil.AssertEqual(t, req.Header.Get("Accept"), "application/json")
	testutil.AssertEqual(t, req.Header.Get("User-Agent"), defaultUserAgent)
	testutil.AssertEqual(t, len(req.Header.Get("X-Correlation-ID")), 36)
}

func TestFetchOpenStatus_Malformed(t *testing.T) {
	for _, body := range []string{testutil.SampleMalformedOpenResponse, `{}`, `not json`} {
		ms := testutil.NewRouteServer(map[string]string{EndpointOpen: body})

		_, err := newTestClient(ms.URL).FetchOpenStatus(context.Background())
		ms.Close()

		testutil.AssertError(t, err)
		testutil.AssertTrue(t, errors.Is(err, ErrInvalidResponse))
	}
}

func TestFetchOpenStatus_NeverCached(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{EndpointOpen: testutil.SampleOpenResponse})
	defer ms.Close()

	mc := &mockCache{data: map[string][]byte{}}
	client := newTestClient(ms.URL, WithCache(mc))

	for range 2 {
		_, err := client.FetchOpenStatus(context.Background())
		testutil.AssertNil(t, err)
	}
	testutil.AssertEqual(t, ms.RequestCount(), 2)
	testutil.AssertEqual(t, len(mc.data), 0)
}

func TestFetchWeeklySchedule(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{EndpointShifts: testutil.SampleShiftsResponse})
	defer ms.Close()

	schedule, err := newTestClient(ms.URL).FetchWeeklySchedule(context.Background())
	testutil.AssertNil(t, err)
	testutil.AssertTrue(t, schedule.Equal(testutil.SampleSchedule()))
}

func TestFetchWeeklySchedule_Empty(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{EndpointShifts: testutil.SampleEmptyShiftsResponse})
	defer ms.Close()

	schedule, err := newTestClient(ms.URL).FetchWeeklySchedule(context.Background())
	testutil.AssertNil(t, err)
	testutil.AssertTrue(t, schedule != nil)
	testutil.AssertEqual(t, len(schedule), 0)
}

func TestFetchWeeklySchedule_InvalidShift(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{EndpointShifts: testutil.SampleInvalidShiftsResponse})
	defer ms.Close()

	_, err := newTestClient(ms.URL).FetchWeeklySchedule(context.Background())
	testutil.AssertError(t, err)
	testutil.AssertTrue(t, errors.Is(err, ErrInvalidResponse))
}

func TestFetchWeeklySchedule_Cached(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{EndpointShifts: testutil.SampleShiftsResponse})
	defer ms.Close()

	mc := &mockCache{data: map[string][]byte{}}
	client := newTestClient(ms.URL, WithCache(mc))

	for range 3 {
		_, err := client.FetchWeeklySchedule(context.Background())
		testutil.AssertNil(t, err)
	}
	testutil.AssertEqual(t, ms.RequestCount(), 1)
}

func TestDoRequest_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ms := testutil.NewMockServer(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(testutil.SampleClosedResponse))
	})
	defer ms.Close()

	open, err := newTestClient(ms.URL).FetchOpenStatus(context.Background())
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, open, false)
	testutil.AssertEqual(t, ms.RequestCount(), 3)
}

func TestDoRequest_GivesUpAfterRetries(t *testing.T) {
	ms := testutil.NewMockServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer ms.Close()

	_, err := newTestClient(ms.URL).FetchOpenStatus(context.Background())
	testutil.AssertError(t, err)
	testutil.AssertTrue(t, errors.Is(err, ErrServerError))
	testutil.AssertTrue(t, errors.Is(err, ErrNetworkFailure))
	testutil.AssertEqual(t, ms.RequestCount(), defaultRetries+1)
}

func TestDoRequest_ClientErrorIsNotRetried(t *testing.T) {
	ms := testutil.NewMockServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer ms.Close()

	_, err := newTestClient(ms.URL).FetchOpenStatus(context.Background())
	testutil.AssertTrue(t, errors.Is(err, ErrNotFound))
	testutil.AssertEqual(t, ms.RequestCount(), 1)

	var apiErr *APIError
	testutil.AssertTrue(t, errors.As(err, &apiErr))
	testutil.AssertEqual(t, apiErr.Endpoint, EndpointOpen)
}

func TestDoRequest_ContextCancelled(t *testing.T) {
	ms := testutil.NewMockServer(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(testutil.SampleOpenResponse))
	})
	defer ms.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(ms.URL).FetchOpenStatus(ctx)
	testutil.AssertError(t, err)
	testutil.AssertTrue(t, errors.Is(err, ErrNetworkFailure))
}

func TestDoRequest_Timeout(t *testing.T) {
	ms := testutil.NewMockServer(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(testutil.SampleOpenResponse))
	})
	defer ms.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestClient(ms.URL).FetchOpenStatus(ctx)
	testutil.AssertTrue(t, errors.Is(err, ErrTimeout))
	testutil.AssertTrue(t, errors.Is(err, context.DeadlineExceeded))
	testutil.AssertEqual(t, ms.RequestCount(), 1)
}

func TestExtractEndpoint(t *testing.T) {
	testutil.AssertEqual(t, extractEndpoint("https://cafeanalog.dk/api/open"), "/api/open")
	testutil.AssertEqual(t, extractEndpoint("://bad"), "://bad")
}

// Mock cache implementation for testing
type mockCache struct {
	data map[string][]byte
}

func (m *mockCache) Get(key string) ([]byte, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *mockCache) Set(key string, value []byte) error {
	m.data[key] = value
	return nil
}

// newTestClient points a client at baseURL with fast retries
func newTestClient(baseURL string, opts ...ClientOption) *Client {
	opts = append([]ClientOption{WithBaseURL(baseURL), WithRetries(defaultRetries, time.Millisecond)}, opts...)
	client, _ := NewClient(opts...)
	return client
}
