package bucket

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fala com o object storage hospedado (API estilo Supabase Storage).
// O painel só precisa de três coisas: subir arquivo, resolver URL pública e
// apagar por path.
type Client struct {
	baseURL string
	apiKey  string
	bucket  string
	http    *http.Client
}

func NewClient(baseURL, apiKey, bucketName string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		bucket:  bucketName,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sobe o arquivo e devolve a URL pública.
func (c *Client) Upload(path string, data []byte, contentType string) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)

	req, err := http.NewRequest("POST", url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro na conexão com o storage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("❌ ERRO UPLOAD STORAGE (Status %d): %s\n", resp.StatusCode, string(body))
		return "", fmt.Errorf("storage rejeitou upload (status %d)", resp.StatusCode)
	}

	return c.PublicURL(path), nil
}

// PublicURL monta a URL pública do objeto. O bucket é público para leitura;
// só a escrita exige a chave.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path)
}

func (c *Client) Delete(path string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)

	req, err := http.NewRequest("DELETE", url, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro na conexão com o storage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage rejeitou delete (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", "ConfexaBackoffice/1.0")
}
