package paymentgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент платёжного шлюза
type Client struct {
	baseURL     string
	appKey      string
	appSecret   string
	callbackURL string
	httpClient  *http.Client
	log         Logger
}

// NewClient создает новый экземпляр клиента платёжного шлюза
func NewClient(baseURL, appKey, appSecret, callbackURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		appKey:      appKey,
		appSecret:   appSecret,
		callbackURL: callbackURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreatePayment создает платёж и возвращает ссылку для оплаты
func (c *Client) CreatePayment(ctx context.Context, amount float64, invoiceNumber string) (*CreatePaymentResponse, error) {
	body := createPaymentRequest{
		Amount:                fmt.Sprintf("%.2f", amount),
		Currency:              "BDT",
		Intent:                "sale",
		MerchantInvoiceNumber: invoiceNumber,
		CallbackURL:           c.callbackURL,
	}

	var result CreatePaymentResponse
	if err := c.post(ctx, "/checkout/payment/create", body, &result); err != nil {
		return nil, err
	}

	if result.PaymentID == "" || result.RedirectURL == "" {
		return nil, fmt.Errorf("%w: missing paymentID or redirect URL", ErrInvalidResponse)
	}

	c.log.Info("Payment created: payment_id=%s, invoice=%s", result.PaymentID, invoiceNumber)
	return &result, nil
}

// ExecutePayment проводит платёж после возврата пользователя со страницы оплаты
func (c *Client) ExecutePayment(ctx context.Context, paymentID string) (*ExecutePaymentResponse, error) {
	var result ExecutePaymentResponse
	if err := c.post(ctx, "/checkout/payment/execute/"+paymentID, nil, &result); err != nil {
		return nil, err
	}

	if !result.IsCompleted() {
		c.log.Warn("Payment not completed: payment_id=%s, status=%s", paymentID, result.Status)
		return &result, fmt.Errorf("%w: status=%s", ErrPaymentDeclined, result.Status)
	}

	c.log.Info("Payment executed: payment_id=%s, trx_id=%s", paymentID, result.TransactionID)
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-App-Key", c.appKey)
	req.Header.Set("X-App-Secret", c.appSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrPaymentNotFound
	case http.StatusPaymentRequired, http.StatusUnprocessableEntity:
		var gwErr ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&gwErr)
		return fmt.Errorf("%w: %s %s", ErrPaymentDeclined, gwErr.Code, gwErr.Message)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
