package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tu-usuario/valet-pro/internal/application/ports"
)

// Verificar en tiempo de compilación que SendGridService implementa Notifier.
var _ ports.Notifier = (*SendGridService)(nil)

const sendgridMailURL = "https://api.sendgrid.com/v3/mail/send"

// SendGridService adaptador que implementa Notifier usando la API REST v3 de
// SendGrid. Usa net/http de la librería estándar de Go; no requiere el SDK
// oficial.
type SendGridService struct {
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
}

// NewSendGridService construye el adaptador.
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewSendGridService(apiKey, fromEmail, fromName string) *SendGridService {
	return &SendGridService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		httpClient: &http.Client{
			// Timeout de red de 15 s; el caller impone además su propio context.
			Timeout: 15 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo SendGrid v3 ────────────────────────────

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgPersonalization struct {
	To      []sgAddress `json:"to"`
	Subject string      `json:"subject"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgMailRequest struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Content          []sgContent         `json:"content"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// SendWelcome envía las credenciales iniciales a un dueño recién creado.
func (s *SendGridService) SendWelcome(ctx context.Context, email, name, tempPassword string) error {
	subject := "Bienvenido a Valet Pro"
	body := fmt.Sprintf(
		"Hola %s,\n\nTu vehículo quedó registrado y te creamos una cuenta para que sigas tus estancias.\n\n"+
			"Usuario: %s\nContraseña temporal: %s\n\nCámbiala en tu primer ingreso.",
		name, email, tempPassword,
	)
	return s.send(ctx, email, name, subject, body)
}

func (s *SendGridService) send(ctx context.Context, toEmail, toName, subject, body string) error {
	if s.apiKey == "" {
		return fmt.Errorf("email: SENDGRID_API_KEY no configurado")
	}

	payload := sgMailRequest{
		Personalizations: []sgPersonalization{{
			To:      []sgAddress{{Email: toEmail, Name: toName}},
			Subject: subject,
		}},
		From:    sgAddress{Email: s.fromEmail, Name: s.fromName},
		Content: []sgContent{{Type: "text/plain", Value: body}},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("email: serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendgridMailURL, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("email: construir request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email: enviar a SendGrid: %w", err)
	}
	defer resp.Body.Close()

	// SendGrid responde 202 Accepted cuando encola el correo.
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("email: SendGrid respondió %d: %s", resp.StatusCode, detail)
	}
	return nil
}
