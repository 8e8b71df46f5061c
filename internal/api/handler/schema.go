package handler

import "encoding/json"

// --- Request / Response types ---

type itemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity" validate:"gte=0,lte=4294967295"`
}

type addressRequest struct {
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	ZipCode       string `json:"zipCode"`
}

type getQuoteRequest struct {
	Items   []itemRequest   `json:"items"   validate:"dive"`
	Address *addressRequest `json:"address"`
}

// moneyResponse mirrors the Money message: nanos carry the fractional part.
type moneyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Units        int64  `json:"units"`
	Nanos        int32  `json:"nanos"`
}

type getQuoteResponse struct {
	CostUsd moneyResponse `json:"costUsd"`
}

// shipOrderRequest accepts any object. Address and items are only logged, so
// they are decoded best-effort and never reject the request.
type shipOrderRequest struct {
	Address json.RawMessage `json:"address"`
	Items   json.RawMessage `json:"items"`
}

type shipOrderResponse struct {
	TrackingID string `json:"trackingId"`
}
