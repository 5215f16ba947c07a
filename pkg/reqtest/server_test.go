package reqtest

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServer_StartStop(t *testing.T) {
	api := New(t)
	assert.Empty(t, api.URL())

	api.Mock("GET", "/v2/currencies").WithBody("ok").Reply()
	url := api.Start()
	assert.True(t, strings.HasPrefix(url, "http://"))
	assert.Equal(t, url, api.Start(), "Start is idempotent")

	resp, body := get(t, url+"/v2/currencies")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ok", body)

	api.Stop()
	api.Stop()
}

func TestServer_JSONAndPathParams(t *testing.T) {
	api := New(t)
	api.Mock("GET", "/v2/request/{requestId}").
		RespondJSON(map[string]any{"hasBeenPaid": true}).
		WithHeader("X-Request-Id", "srv-1").
		Reply()
	url := api.Start()

	resp, body := get(t, url+"/v2/request/abc")
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "srv-1", resp.Header.Get("X-Request-Id"))
	assert.JSONEq(t, `{"hasBeenPaid":true}`, body)

	api.AssertCalled(t, "GET", "/v2/request/abc")
	api.AssertCalled(t, "GET", "/v2/request/{requestId}")
	api.AssertNotCalled(t, "POST", "/v2/request")
}

func TestServer_Unmatched(t *testing.T) {
	api := New(t)
	url := api.Start()

	resp, body := get(t, url+"/v2/nothing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var env map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Equal(t, float64(404), env["statusCode"])
	assert.Equal(t, "Not Found", env["error"])

	logs := api.Requests()
	require.Len(t, logs, 1)
	assert.Empty(t, logs[0].MatchedID)
}

func TestServer_TimesFallsThrough(t *testing.T) {
	api := New(t)
	api.Mock("GET", "/x").WithStatus(503).Once().Reply()
	api.Mock("GET", "/x").WithBody("second").Reply()
	url := api.Start()

	resp, _ := get(t, url+"/x")
	assert.Equal(t, 503, resp.StatusCode)
	resp, body := get(t, url+"/x")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "second", body)

	api.AssertCalledTimes(t, "GET", "/x", 2)
}

func TestServer_QueryAndHeaderMatchers(t *testing.T) {
	api := New(t)
	api.Mock("GET", "/v2/currencies").WithQueryParam("network", "sepolia").WithBody("sepolia").Reply()
	api.Mock("GET", "/v2/currencies").WithRequestHeader("x-api-key", "k").WithBody("keyed").Reply()
	url := api.Start()

	_, body := get(t, url+"/v2/currencies?network=sepolia")
	assert.Equal(t, "sepolia", body)

	req, _ := http.NewRequest(http.MethodGet, url+"/v2/currencies", nil)
	req.Header.Set("x-api-key", "k")
	resp, err := api.Client().Do(req)
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "keyed", string(data))
}

func TestServer_RequestLogAssertions(t *testing.T) {
	api := New(t)
	api.Mock("POST", "/v2/request").RespondCreated(map[string]string{"requestId": "r1"}).Reply()
	url := api.Start()

	req, _ := http.NewRequest(http.MethodPost, url+"/v2/request?dry=1", strings.NewReader(`{"amount":"10","customerInfo":{"email":"a@b.c"}}`))
	req.Header.Set("x-api-key", "secret")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	log := api.LastRequest(t, "POST", "/v2/request")
	log.AssertJSONBody(t, map[string]any{"amount": "10", "customerInfo": map[string]any{"email": "a@b.c"}})
	log.AssertHeader(t, "X-Api-Key", "secret")
	log.AssertNoHeader(t, "x-client-id")
	log.AssertQueryParam(t, "dry", "1")
	log.AssertJSONField(t, "customerInfo.email", "a@b.c")
	assert.Nil(t, log.JSONField("missing.field"))

	api.LastRequest(t, "POST", "/v2/request").AssertJSONField(t, "amount", "10")
}

func TestServer_Reset(t *testing.T) {
	api := New(t)
	api.Mock("GET", "/x").Reply()
	url := api.Start()
	get(t, url+"/x")

	api.Reset()
	assert.Empty(t, api.Requests())
	resp, _ := get(t, url+"/x")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Delay(t *testing.T) {
	api := New(t)
	api.Mock("GET", "/slow").WithDelay(50 * time.Millisecond).Reply()
	url := api.Start()

	start := time.Now()
	get(t, url+"/slow")
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestBuilder_Errors(t *testing.T) {
	b := New(t).Mock("GET", "/x").WithJSON(make(chan int))
	assert.Error(t, b.Err())
}

func TestMatchesPath(t *testing.T) {
	tests := []struct {
		actual, expected string
		want             bool
	}{
		{"/v2/request/abc", "/v2/request/abc", true},
		{"/v2/request/abc", "/v2/request/{id}", true},
		{"/v2/request/abc/pay", "/v2/request/{id}/pay", true},
		{"/v2/request/abc/pay", "/v2/request/{id}", false},
		{"/v2/request/", "/v2/request/{id}", false},
		{"/v2/payer", "/v2/request", false},
	}
	for _, tt := range tests {
		t.Run(tt.actual+"~"+tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesPath(tt.actual, tt.expected))
		})
	}
}
