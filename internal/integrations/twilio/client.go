package twilio

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const whatsappPrefix = "whatsapp:"

// Client отправляет WhatsApp сообщения через Twilio
type Client struct {
	api  MessageAPI
	from string
	log  Logger
}

// NewClient создает клиента с REST API Twilio
func NewClient(accountSID, authToken, from string, log Logger) *Client {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return NewClientWithAPI(rest.Api, from, log)
}

// NewClientWithAPI создает клиента с переданной реализацией API (для тестов)
func NewClientWithAPI(api MessageAPI, from string, log Logger) *Client {
	return &Client{
		api:  api,
		from: withPrefix(from),
		log:  log,
	}
}

// SendWhatsApp отправляет сообщение на номер в международном формате (62812...) и возвращает SID
func (c *Client) SendWhatsApp(ctx context.Context, phone, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	digits := strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if digits == "" {
		return "", ErrInvalidRecipient
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(whatsappPrefix + "+" + digits)
	params.SetFrom(c.from)
	params.SetBody(body)

	resp, err := c.api.CreateMessage(params)
	if err != nil {
		c.log.Error("SendWhatsApp: twilio rejected message to %s: %v", digits, err)
		return "", fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if resp == nil || resp.Sid == nil {
		return "", ErrInvalidResponse
	}

	c.log.Info("SendWhatsApp: message sent to %s, sid=%s", digits, *resp.Sid)
	return *resp.Sid, nil
}

func withPrefix(from string) string {
	from = strings.TrimSpace(from)
	if from == "" || strings.HasPrefix(from, whatsappPrefix) {
		return from
	}
	return whatsappPrefix + from
}
