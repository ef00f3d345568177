package checkoutControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Gateway creates hosted payment checkouts. The buyer is redirected to
// the returned URL and the gateway reports the outcome on the webhook.
type Gateway interface {
	CreateCheckout(req GatewayCheckoutRequest) (*GatewayCheckout, error)
}

type GatewayCheckoutRequest struct {
	OrderID     string  `json:"order_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
}

type GatewayCheckout struct {
	PaymentURL string `json:"payment_url"`
	Reference  string `json:"reference"`
}

// DisabledGateway rejects every checkout. Used when the deployment has
// no gateway credentials, leaving pay-on-delivery as the only path.
type DisabledGateway struct{}

func (DisabledGateway) CreateCheckout(GatewayCheckoutRequest) (*GatewayCheckout, error) {
	return nil, fmt.Errorf("payment gateway not configured")
}

// gatewayResponse is the wire shape of the create-checkout call.
type gatewayResponse struct {
	Checkout struct {
		Ref string `json:"ref"`
		URL string `json:"url"`
	} `json:"checkout"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// HostedGateway talks to the payment provider's checkout API.
type HostedGateway struct {
	APIURL string
	KeyID  string
	Secret string
	Test   bool
	HTTP   *http.Client
}

// NewHostedGatewayFromEnv reads the gateway configuration. Sandbox/dev
// mode flags checkouts as test transactions on the live endpoint.
func NewHostedGatewayFromEnv() (*HostedGateway, error) {
	apiURL := os.Getenv("GATEWAY_API_URL")
	keyID := os.Getenv("GATEWAY_KEY_ID")
	secret := os.Getenv("GATEWAY_SECRET")
	if apiURL == "" || keyID == "" || secret == "" {
		return nil, fmt.Errorf("gateway configuration missing")
	}

	mode := os.Getenv("GATEWAY_MODE")
	return &HostedGateway{
		APIURL: apiURL,
		KeyID:  keyID,
		Secret: secret,
		Test:   mode == "sandbox" || mode == "dev",
		HTTP:   &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (g *HostedGateway) CreateCheckout(req GatewayCheckoutRequest) (*GatewayCheckout, error) {
	payload := map[string]interface{}{
		"method":  "create",
		"key_id":  g.KeyID,
		"authkey": g.Secret,
		"checkout": map[string]interface{}{
			"reference":   req.OrderID,
			"test":        g.Test,
			"amount":      req.Amount,
			"currency":    req.Currency,
			"description": req.Description,
		},
		"customer": map[string]string{
			"name":  req.Name,
			"email": req.Email,
			"phone": req.Phone,
		},
		"return": map[string]string{
			"authorised": os.Getenv("GATEWAY_SUCCESS_URL"),
			"declined":   os.Getenv("GATEWAY_FAILURE_URL"),
			"cancelled":  os.Getenv("GATEWAY_CANCEL_URL"),
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, g.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway API error (%d): %s", resp.StatusCode, string(body))
	}

	var gwResp gatewayResponse
	if err := json.Unmarshal(body, &gwResp); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %v", err)
	}
	if gwResp.Error != nil {
		return nil, fmt.Errorf("gateway error: %s", gwResp.Error.Message)
	}
	if gwResp.Checkout.URL == "" {
		return nil, fmt.Errorf("gateway returned empty payment URL")
	}

	return &GatewayCheckout{
		PaymentURL: gwResp.Checkout.URL,
		Reference:  gwResp.Checkout.Ref,
	}, nil
}
