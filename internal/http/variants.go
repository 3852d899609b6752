package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

func (c *Client) raw(ctx context.Context, method, path string, body interface{}) (interface{}, error) {
	var out interface{}

	err := c.call(ctx, method, path, body, &out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GetRaw fetches path as an untyped JSON tree.
func (c *Client) GetRaw(ctx context.Context, path string) (interface{}, error) {
	return c.raw(ctx, http.MethodGet, path, nil)
}

// PostRaw posts body and returns the response as an untyped JSON tree.
func (c *Client) PostRaw(ctx context.Context, path string, body interface{}) (interface{}, error) {
	return c.raw(ctx, http.MethodPost, path, body)
}

// PutRaw puts body and returns the response as an untyped JSON tree.
func (c *Client) PutRaw(ctx context.Context, path string, body interface{}) (interface{}, error) {
	return c.raw(ctx, http.MethodPut, path, body)
}

// PatchRaw patches body and returns the response as an untyped JSON tree.
func (c *Client) PatchRaw(ctx context.Context, path string, body interface{}) (interface{}, error) {
	return c.raw(ctx, http.MethodPatch, path, body)
}

// DeleteRaw removes path. An empty success body yields {"status":"deleted"}.
func (c *Client) DeleteRaw(ctx context.Context, path string) (interface{}, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return map[string]interface{}{constants.MarkerStatusKey: constants.StatusDeleted}, nil
	}

	var out interface{}

	err = decodeBody(http.MethodDelete, JoinURL(c.baseURL, path), resp.Body, &out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GetText fetches path and returns the body verbatim.
func (c *Client) GetText(ctx context.Context, path string) (string, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return "", err
	}

	return string(resp.Body), nil
}

// GetBinary fetches path and returns the body bytes.
func (c *Client) GetBinary(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// PostTolerant posts body and accepts a success response that is empty or
// not JSON. Cluster bootstrap answers this way on some versions.
func (c *Client) PostTolerant(ctx context.Context, path string, body interface{}) (interface{}, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		return nil, err
	}

	text := bytes.TrimSpace(resp.Body)
	if len(text) == 0 {
		return map[string]interface{}{constants.MarkerStatusKey: constants.StatusSuccess}, nil
	}

	var out interface{}

	if json.Unmarshal(text, &out) != nil {
		return map[string]interface{}{
			constants.MarkerStatusKey:   constants.StatusSuccess,
			constants.MarkerResponseKey: string(resp.Body),
		}, nil
	}

	return out, nil
}

// PostMultipart uploads data as the file part fieldName and decodes the
// response into out.
func (c *Client) PostMultipart(ctx context.Context, path, fieldName, fileName string, data []byte, out interface{}) error {
	if fieldName == "" {
		return reapi.NewValidationError(reapi.ErrFieldNameRequired)
	}

	if fileName == "" {
		return reapi.NewValidationError(reapi.ErrFileNameRequired)
	}

	var buf bytes.Buffer

	contentType, err := c.encodeMultipart(&buf, path, fieldName, fileName, data)
	if err != nil {
		return err
	}

	resp, err := c.Do(ctx, &Request{
		Method:      http.MethodPost,
		Path:        path,
		RawBody:     buf.Bytes(),
		ContentType: contentType,
	})
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	return decodeBody(http.MethodPost, JoinURL(c.baseURL, path), resp.Body, out)
}

// encodeMultipart writes data as a single-file multipart form into w and
// returns the form's content type. Encoding failures are request errors
// against the upload URL.
func (c *Client) encodeMultipart(w io.Writer, path, fieldName, fileName string, data []byte) (string, error) {
	fail := func(err error) (string, error) {
		return "", &reapi.Error{
			Kind:   reapi.KindRequest,
			Method: http.MethodPost,
			URL:    JoinURL(c.baseURL, path),
			Err:    err,
		}
	}

	writer := multipart.NewWriter(w)

	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return fail(fmt.Errorf("creating form file: %w", err))
	}

	_, err = part.Write(data)
	if err != nil {
		return fail(fmt.Errorf("writing file to form: %w", err))
	}

	err = writer.Close()
	if err != nil {
		return fail(fmt.Errorf("closing multipart writer: %w", err))
	}

	return writer.FormDataContentType(), nil
}
