package testutil

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	AssertNil(t, err)
	resp, err := http.DefaultClient.Do(req) //nolint:gosec // URL is from httptest.Server (localhost)
	AssertNil(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	AssertNil(t, err)
	return resp.StatusCode, string(body)
}

func TestMockServer(t *testing.T) {
	ms := NewMockServer(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(SampleOpenResponse))
	})
	defer ms.Close()

	code, body := get(t, ms.URL+"/open")
	AssertEqual(t, code, http.StatusOK)
	AssertEqual(t, body, SampleOpenResponse)

	AssertEqual(t, ms.RequestCount(), 1)
	last := ms.LastRequest()
	AssertTrue(t, last != nil)
	AssertEqual(t, last.URL.Path, "/open")
}

func TestMockServer_ConcurrentRequests(t *testing.T) {
	ms := NewMockServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	defer ms.Close()

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Get(ms.URL) //nolint:gosec,noctx // URL is from httptest.Server (localhost)
			if err != nil {
				t.Error(err)
				return
			}
			_ = resp.Body.Close()
		}()
	}
	wg.Wait()

	AssertEqual(t, ms.RequestCount(), 5)
}

func TestMockServer_Reset(t *testing.T) {
	ms := NewMockServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	defer ms.Close()

	get(t, ms.URL)
	AssertEqual(t, ms.RequestCount(), 1)

	ms.Reset()
	AssertEqual(t, ms.RequestCount(), 0)
	AssertTrue(t, ms.LastRequest() == nil)
}

func TestRouteServer(t *testing.T) {
	ms := NewRouteServer(map[string]string{"/shifts": SampleEmptyShiftsResponse})
	defer ms.Close()

	code, body := get(t, ms.URL+"/shifts")
	AssertEqual(t, code, http.StatusOK)
	AssertEqual(t, body, SampleEmptyShiftsResponse)

	code, _ = get(t, ms.URL+"/missing")
	AssertEqual(t, code, http.StatusNotFound)
}
