package pokeapi

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

const (
	DefaultBaseUrl = "https://pokeapi.co/api/v2/pokemon"
	DefaultTimeout = 10 * time.Second
)

type Client struct {
	baseUrl string
	client  *http.Client
	sugar   *zap.SugaredLogger
}

type Option func(*Client)

func WithBaseUrl(baseUrl string) Option {
	return func(c *Client) {
		if baseUrl != "" {
			c.baseUrl = strings.TrimSuffix(baseUrl, "/")
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

func NewClient(sugar *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		baseUrl: DefaultBaseUrl,
		client:  &http.Client{Timeout: DefaultTimeout},
		sugar:   sugar,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// FetchPokemon returns the raw catalog document for name. Any status other than
// 200 is reported as an HTTPError carrying the code.
func (c *Client) FetchPokemon(ctx context.Context, name string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseUrl, name)
	c.sugar.Infof("Fetching Pokemon %s", url)
	body, status, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if status != http.StatusOK {
		c.sugar.Warnf("Catalog returned status %d for %s", status, url)
		return nil, &HTTPError{StatusCode: status, URL: url}
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decoding %s: response is not valid JSON", url)
	}
	return body, nil
}

// FetchImage downloads and decodes the image at url.
func (c *Client) FetchImage(ctx context.Context, url string) (image.Image, error) {
	c.sugar.Infof("Fetching image %s", url)
	body, status, err := c.get(ctx, url)
	if err != nil {
		return nil, &ImageError{URL: url, Err: err}
	}
	if status != http.StatusOK {
		return nil, &ImageError{URL: url, Err: &HTTPError{StatusCode: status, URL: url}}
	}
	img, format, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, &ImageError{URL: url, Err: err}
	}
	c.sugar.Debugf("Decoded %s image %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}
