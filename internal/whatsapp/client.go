package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fala com a Evolution API (gateway de WhatsApp). Todas as
// respostas são repassadas como JSON bruto — o proxy não interpreta
// além do status.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

type apiResult struct {
	Status int
	Body   json.RawMessage
}

func (r *apiResult) OK() bool {
	return r.Status < 400
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*apiResult, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &apiResult{Status: resp.StatusCode, Body: raw}, nil
}

// CreateInstance registra uma instância e devolve o QR code de pareamento
func (c *Client) CreateInstance(ctx context.Context, name, number string) (json.RawMessage, error) {
	payload := map[string]any{
		"instanceName": name,
		"integration":  "WHATSAPP-BAILEYS",
		"qrcode":       true,
	}
	if number != "" {
		payload["number"] = number
	}

	res, err := c.do(ctx, http.MethodPost, "/instance/create", payload)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return res.Body, fmt.Errorf("evolution api: create instance failed (%d)", res.Status)
	}
	return res.Body, nil
}

func (c *Client) ConnectionState(ctx context.Context, name string) (json.RawMessage, error) {
	res, err := c.do(ctx, http.MethodGet, "/instance/connectionState/"+name, nil)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return res.Body, fmt.Errorf("evolution api: connection state failed (%d)", res.Status)
	}
	return res.Body, nil
}

func (c *Client) Connect(ctx context.Context, name string) (json.RawMessage, error) {
	res, err := c.do(ctx, http.MethodGet, "/instance/connect/"+name, nil)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return res.Body, fmt.Errorf("evolution api: connect failed (%d)", res.Status)
	}
	return res.Body, nil
}

// SendText envia uma mensagem de texto pelo número da instância
func (c *Client) SendText(ctx context.Context, instance, number, text string) (json.RawMessage, error) {
	payload := map[string]any{
		"number": number,
		"text":   text,
	}

	res, err := c.do(ctx, http.MethodPost, "/message/sendText/"+instance, payload)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return res.Body, fmt.Errorf("evolution api: send text failed (%d)", res.Status)
	}
	return res.Body, nil
}

func (c *Client) DeleteInstance(ctx context.Context, name string) error {
	res, err := c.do(ctx, http.MethodDelete, "/instance/delete/"+name, nil)
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("evolution api: delete instance failed (%d)", res.Status)
	}
	return nil
}
