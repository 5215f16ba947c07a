// Package reqtest runs a fake Request API for tests.
//
// A Server answers calls from a table of mocks configured with a fluent
// builder, records every request it receives, and offers assertions over
// that log:
//
//	func TestGetStatus(t *testing.T) {
//	    api := reqtest.New(t)
//	    api.Mock("GET", "/v2/request/{requestId}").
//	        RespondJSON(map[string]any{"hasBeenPaid": true}).
//	        Reply()
//	    baseURL := api.Start()
//
//	    c, _ := client.New(client.WithTransportOptions(transport.WithBaseURL(baseURL)))
//	    status, err := c.Requests.GetStatus(ctx, "req-1")
//	    ...
//	    api.AssertCalledTimes(t, "GET", "/v2/request/req-1", 1)
//	}
//
// Mocks are matched in registration order. Path segments written as {name}
// match any value. A mock limited with Times stops matching once used up and
// later mocks for the same path take over. Unmatched calls get a 404 with
// the API's error envelope.
//
// The server is stopped automatically when the test ends.
package reqtest
