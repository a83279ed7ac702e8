package yandex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// fetchJSON fetches JSON from the specified URI.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func fetchJSON[T any](c *ClientImpl, ctx context.Context, uri string) (*FetchJSONResult[T], error) {
	return fetchJSONWithQuery[T](c, ctx, uri, nil)
}

// fetchJSONWithQuery fetches JSON from the specified URI with the specified query.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func fetchJSONWithQuery[T any](
	c *ClientImpl,
	ctx context.Context,
	uri string,
	query url.Values,
) (*FetchJSONResult[T], error) {
	body, statusCode, err := c.fetchBytes(ctx, uri, query)
	if err != nil {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: statusCode,
		}, err
	}

	var result T
	if err = json.Unmarshal(body, &result); err != nil {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: statusCode,
		}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return &FetchJSONResult[T]{
		Data:       &result,
		StatusCode: statusCode,
	}, nil
}

// fetchBytes performs a GET against the API base URL and returns the raw body.
// Authentication failures are surfaced as ErrAuthRejected, every other non-200
// status as ErrUnexpectedHTTPStatus.
func (c *ClientImpl) fetchBytes(ctx context.Context, uri string, query url.Values) ([]byte, int, error) {
	route, err := url.JoinPath(c.baseURL, uri)
	if err != nil {
		return nil, 0, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, route, http.NoBody)
	if err != nil {
		return nil, 0, err
	}

	if query != nil {
		request.URL.RawQuery = query.Encode()
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, 0, err
	}

	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, response.StatusCode, fmt.Errorf("%w: status %d", ErrAuthRejected, response.StatusCode)
	default:
		return nil, response.StatusCode, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, response.StatusCode, err
	}

	return body, response.StatusCode, nil
}
