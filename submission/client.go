package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
	"github.com/infotech-symposium/event-registration/api"
	"github.com/infotech-symposium/event-registration/registration"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client posts registrations to the symposium backend.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a client for the backend at endpoint. A nil httpClient
// gets a default one with a traced transport.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: httpClient,
	}
}

// Register sends one registration and returns the backend's verdict. The
// body is decoded whatever the status code; only a failed request or an
// unreadable body is an error.
func (c *Client) Register(ctx context.Context, reg registration.Registration, termsAccepted bool, requestId uuid.UUID) (api.RegisterResponse, error) {
	body, contentType, err := encodeRegistration(reg, termsAccepted)
	if err != nil {
		return api.RegisterResponse{}, fmt.Errorf("failed to encode registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+api.RegisterPath, body)
	if err != nil {
		return api.RegisterResponse{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(api.RequestIDHeader, requestId.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return api.RegisterResponse{}, fmt.Errorf("failed to send registration: %w", err)
	}
	defer resp.Body.Close()

	var result api.RegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return api.RegisterResponse{}, fmt.Errorf("failed to decode response with status %d: %w", resp.StatusCode, err)
	}

	return result, nil
}

type textPart struct {
	name  string
	value string
}

// encodeRegistration writes the parts in the order the form lays them out.
func encodeRegistration(reg registration.Registration, termsAccepted bool) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	parts := []textPart{
		{api.PartFullName, reg.FullName},
		{api.PartCollege, reg.College},
		{api.PartDepartment, reg.Department},
		{api.PartEmail, reg.Email},
		{api.PartPhone, reg.Phone},
	}
	for _, name := range reg.Events {
		parts = append(parts, textPart{api.PartEvents, name})
	}
	parts = append(parts,
		textPart{api.PartPaperTopic, reg.PaperTopic},
		textPart{api.PartMember2, reg.TeamMembers[0]},
		textPart{api.PartMember3, reg.TeamMembers[1]},
		textPart{api.PartMember4, reg.TeamMembers[2]},
		textPart{api.PartTransactionID, reg.TransactionID},
	)
	if err := writeTexts(mw, parts); err != nil {
		return nil, "", err
	}

	if reg.Receipt != nil {
		if err := writeReceipt(mw, *reg.Receipt); err != nil {
			return nil, "", err
		}
	}

	parts = []textPart{{api.PartNotes, reg.Notes}}
	if termsAccepted {
		parts = append(parts, textPart{api.PartTerms, api.TermsAccepted})
	}
	if err := writeTexts(mw, parts); err != nil {
		return nil, "", err
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return body, mw.FormDataContentType(), nil
}

func writeTexts(mw *multipart.Writer, parts []textPart) error {
	for _, p := range parts {
		if err := writeText(mw, p.name, p.value); err != nil {
			return err
		}
	}
	return nil
}

func writeText(mw *multipart.Writer, name string, value string) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, name))
	h.Set("Content-Type", "text/plain; charset=utf-8")

	w, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, value)
	return err
}

func writeReceipt(mw *multipart.Writer, receipt registration.Receipt) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, api.PartReceipt, receipt.Name))
	h.Set("Content-Type", "application/octet-stream")

	w, err := mw.CreatePart(h)
	if err != nil {
		return err
	}

	content, err := receipt.Open()
	if err != nil {
		return fmt.Errorf("failed to open receipt %q: %w", receipt.Name, err)
	}
	defer content.Close()

	_, err = io.Copy(w, content)
	return err
}
