package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PushoverPresenter 通过 Pushover HTTP API 投递提醒通知
type PushoverPresenter struct {
	apiURL string
	token  string
	user   string
	client *http.Client
}

func NewPushoverPresenter(apiURL, token, user string) *PushoverPresenter {
	return &PushoverPresenter{
		apiURL: apiURL,
		token:  token,
		user:   user,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *PushoverPresenter) Present(ctx context.Context, title, body string) error {
	params := url.Values{}
	params.Set("token", p.token)
	params.Set("user", p.user)
	params.Set("title", title)
	params.Set("message", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL,
		strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("pushover api error: status %s, body %s", resp.Status, string(respBody))
	}

	return nil
}
