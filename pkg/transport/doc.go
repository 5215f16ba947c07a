// Package transport sends Request API calls over HTTP.
//
// A Client turns a *Request into an HTTP call against the API base URL,
// adds authentication headers, decodes the JSON body and maps non-2xx
// responses to *APIError. It performs no retries.
//
//	c := transport.New(
//	    transport.WithAPIKey(os.Getenv("REQUEST_API_KEY")),
//	    transport.WithTimeout(10*time.Second),
//	)
//	res, err := c.Request(ctx, &transport.Request{
//	    OperationID: "RequestControllerV2_getRequestStatus_v2",
//	    Method:      http.MethodGet,
//	    Path:        "/v2/request/" + url.PathEscape(id),
//	})
//
// Errors can be matched with errors.Is against ErrNotFound,
// ErrUnauthorized, ErrRateLimited and ErrServer.
package transport
