package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tradeboard/internal/client/models"
	"github.com/dmitrijs2005/tradeboard/internal/client/transport"
)

const maxErrorBody = 64 << 10

// RESTClient talks JSON over HTTP to the listings API rooted at baseURL.
type RESTClient struct {
	baseURL string
	sender  Sender
}

var _ Client = (*RESTClient)(nil)

func NewRESTClient(baseURL string, sender Sender) *RESTClient {
	return &RESTClient{baseURL: strings.TrimRight(baseURL, "/"), sender: sender}
}

func (c *RESTClient) Categories(ctx context.Context) ([]models.Category, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/categories", nil, "")
	if err != nil {
		return nil, err
	}
	resp, err := c.sender.Send(ctx, req, transport.DefaultCheck)
	if err != nil {
		return nil, err
	}

	var out []models.Category
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) ListByCategory(ctx context.Context, category string) ([]models.Listing, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/listings/"+url.PathEscape(category), nil, "")
	if err != nil {
		return nil, err
	}
	resp, err := c.sender.Send(ctx, req, readCheck(category, 0))
	if err != nil {
		return nil, err
	}

	out := []models.Listing{}
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Category == "" {
			out[i].Category = category
		}
	}
	return out, nil
}

func (c *RESTClient) GetByID(ctx context.Context, category string, id int64) (models.Listing, error) {
	req, err := c.newRequest(ctx, http.MethodGet, listingPath("", category, id), nil, "")
	if err != nil {
		return models.Listing{}, err
	}
	resp, err := c.sender.Send(ctx, req, readCheck(category, id))
	if err != nil {
		return models.Listing{}, err
	}

	var l models.Listing
	if err := decodeJSON(resp, &l); err != nil {
		return models.Listing{}, err
	}
	if l.Category == "" {
		l.Category = category
	}
	return l, nil
}

func (c *RESTClient) Create(ctx context.Context, category string, draft models.Draft, credential string) (int64, error) {
	if err := validateCategory(category); err != nil {
		return 0, err
	}
	if err := ValidateDraft(draft); err != nil {
		return 0, err
	}
	if credential == "" {
		return 0, ErrUnauthenticated
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/listings/"+url.PathEscape(category), draft, credential)
	if err != nil {
		return 0, err
	}
	resp, err := c.sender.SendOnce(ctx, req, rejectCheck)
	if err != nil {
		return 0, err
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := decodeJSON(resp, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (c *RESTClient) Update(ctx context.Context, category string, id int64, patch models.Patch, credential string) error {
	if credential == "" {
		return ErrUnauthenticated
	}
	if err := validateCategory(category); err != nil {
		return err
	}
	if err := ValidateDraft(patch); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPut, listingPath("/posts", category, id), patch, credential)
	if err != nil {
		return err
	}
	return c.mutate(ctx, req)
}

func (c *RESTClient) Delete(ctx context.Context, category string, id int64, credential string) error {
	if credential == "" {
		return ErrUnauthenticated
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodDelete, listingPath("/posts", category, id), nil, credential)
	if err != nil {
		return err
	}
	return c.mutate(ctx, req)
}

func (c *RESTClient) ModerateDelete(ctx context.Context, category string, id int64, credential string) error {
	if credential == "" {
		return ErrUnauthenticated
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	body := struct {
		Category string `json:"category"`
		PostID   int64  `json:"post_id"`
	}{category, id}

	req, err := c.newRequest(ctx, http.MethodPost, "/admin/posts/delete", body, credential)
	if err != nil {
		return err
	}
	return c.mutate(ctx, req)
}

func (c *RESTClient) Login(ctx context.Context, email, password string) (models.Session, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", body, "")
	if err != nil {
		return models.Session{}, err
	}
	resp, err := c.sender.SendOnce(ctx, req, rejectCheck)
	if err != nil {
		return models.Session{}, err
	}

	var out struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		return models.Session{}, err
	}
	if out.Token == "" {
		return models.Session{}, &RequestRejectedError{StatusCode: resp.StatusCode, Message: "login response carried no token"}
	}
	return models.Session{User: out.User, Credential: out.Token}, nil
}

func (c *RESTClient) Signup(ctx context.Context, email, password, name string) error {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}{email, password, name}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/signup", body, "")
	if err != nil {
		return err
	}
	resp, err := c.sender.SendOnce(ctx, req, rejectCheck)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

func (c *RESTClient) AdminUsers(ctx context.Context, credential string) ([]models.UserPosts, error) {
	if credential == "" {
		return nil, ErrUnauthenticated
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/admin/users", nil, credential)
	if err != nil {
		return nil, err
	}
	resp, err := c.sender.Send(ctx, req, func(r *http.Response) error {
		if r.StatusCode == http.StatusUnauthorized || r.StatusCode == http.StatusForbidden {
			return transport.Permanent(rejectedFrom(r))
		}
		return transport.DefaultCheck(r)
	})
	if err != nil {
		return nil, err
	}

	var out []models.UserPosts
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/categories", nil, "")
	if err != nil {
		return err
	}
	resp, err := c.sender.SendOnce(ctx, req, transport.DefaultCheck)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// mutate sends req once and requires both a 2xx status and success: true.
func (c *RESTClient) mutate(ctx context.Context, req *http.Request) error {
	resp, err := c.sender.SendOnce(ctx, req, rejectCheck)
	if err != nil {
		return err
	}

	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		return err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "the server did not confirm the change"
		}
		return &RequestRejectedError{StatusCode: resp.StatusCode, Message: msg}
	}
	return nil
}

func (c *RESTClient) newRequest(ctx context.Context, method, path string, body any, credential string) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	return req, nil
}

func listingPath(prefix, category string, id int64) string {
	return prefix + "/" + url.PathEscape(category) + "/" + strconv.FormatInt(id, 10)
}

// readCheck turns 400/404 into a permanent ErrNotFound; everything else
// non-2xx is retried.
func readCheck(category string, id int64) transport.CheckFunc {
	return func(r *http.Response) error {
		switch r.StatusCode {
		case http.StatusNotFound, http.StatusBadRequest:
			if id == 0 {
				return transport.Permanent(fmt.Errorf("%w: category %q", ErrNotFound, category))
			}
			return transport.Permanent(fmt.Errorf("%w: %s/%d", ErrNotFound, category, id))
		}
		return transport.DefaultCheck(r)
	}
}

func rejectCheck(r *http.Response) error {
	if r.StatusCode < 200 || r.StatusCode > 299 {
		return rejectedFrom(r)
	}
	return nil
}

func rejectedFrom(r *http.Response) *RequestRejectedError {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(r.Body, maxErrorBody))
	_ = json.Unmarshal(raw, &body)

	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	return &RequestRejectedError{StatusCode: r.StatusCode, Message: msg}
}

func decodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}
