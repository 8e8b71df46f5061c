package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/shipping-service/internal/core/domain"
	"github.com/99minutos/shipping-service/internal/core/ports"
)

type stubQuoteService struct {
	quoteFn func(ctx context.Context, count uint32) (domain.Quote, error)
}

func (s *stubQuoteService) QuoteForCount(ctx context.Context, count uint32) (domain.Quote, error) {
	return s.quoteFn(ctx, count)
}

type stubShippingService struct {
	last   ports.ShipOrderInput
	result ports.ShipOrderResult
}

func (s *stubShippingService) ShipOrder(_ context.Context, in ports.ShipOrderInput) ports.ShipOrderResult {
	s.last = in
	return s.result
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}

// ---------------------------------------------------------------------------
// GetQuote
// ---------------------------------------------------------------------------

func TestQuoteHandler_GetQuote_Success(t *testing.T) {
	var gotCount uint32
	h := NewQuoteHandler(&stubQuoteService{
		quoteFn: func(_ context.Context, count uint32) (domain.Quote, error) {
			gotCount = count
			return domain.Quote{Units: 12, Subunits: 34}, nil
		},
	})

	c, rec := postJSON(newEcho(), "/get-quote",
		`{"items":[{"productId":"A","quantity":3},{"productId":"B","quantity":2}],"address":{"zipCode":"94043"}}`)
	if err := h.GetQuote(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotCount != 5 {
		t.Errorf("expected item count 5, got %d", gotCount)
	}

	var resp getQuoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := moneyResponse{CurrencyCode: "USD", Units: 12, Nanos: 340_000_000}
	if resp.CostUsd != want {
		t.Errorf("expected %+v, got %+v", want, resp.CostUsd)
	}
}

func TestQuoteHandler_GetQuote_EmptyCart(t *testing.T) {
	gotCount := uint32(99)
	h := NewQuoteHandler(&stubQuoteService{
		quoteFn: func(_ context.Context, count uint32) (domain.Quote, error) {
			gotCount = count
			return domain.Quote{}, nil
		},
	})

	c, rec := postJSON(newEcho(), "/get-quote", `{"items":[]}`)
	if err := h.GetQuote(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || gotCount != 0 {
		t.Fatalf("expected 200 with count 0, got %d / %d", rec.Code, gotCount)
	}
}

func TestQuoteHandler_GetQuote_ServiceUnavailable(t *testing.T) {
	h := NewQuoteHandler(&stubQuoteService{
		quoteFn: func(context.Context, uint32) (domain.Quote, error) {
			return domain.Quote{}, domain.ErrQuoteUnavailable
		},
	})

	c, _ := postJSON(newEcho(), "/get-quote", `{"items":[{"quantity":1}]}`)
	err := h.GetQuote(c)
	if !errors.Is(err, domain.ErrQuoteUnavailable) {
		t.Fatalf("expected ErrQuoteUnavailable to reach the error handler, got %v", err)
	}
}

func TestQuoteHandler_GetQuote_InvalidInput(t *testing.T) {
	h := NewQuoteHandler(&stubQuoteService{
		quoteFn: func(context.Context, uint32) (domain.Quote, error) {
			t.Fatalf("should not be called")
			return domain.Quote{}, nil
		},
	})

	cases := map[string]string{
		"malformed json":    `{"items":`,
		"negative quantity": `{"items":[{"quantity":-1}]}`,
		"quantity too big":  `{"items":[{"quantity":4294967296}]}`,
		"total overflows":   `{"items":[{"quantity":4294967295},{"quantity":1}]}`,
	}
	for name, body := range cases {
		c, _ := postJSON(newEcho(), "/get-quote", body)
		if code := httpCode(t, h.GetQuote(c)); code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, code)
		}
	}
}

func TestItemCount(t *testing.T) {
	n, ok := itemCount([]itemRequest{{Quantity: 1}, {Quantity: 0}, {Quantity: 41}})
	if !ok || n != 42 {
		t.Errorf("expected 42, got %d (%v)", n, ok)
	}
	if _, ok := itemCount([]itemRequest{{Quantity: 1 << 32}}); ok {
		t.Error("expected overflow to be reported")
	}
}

// ---------------------------------------------------------------------------
// ShipOrder
// ---------------------------------------------------------------------------

func TestShippingHandler_ShipOrder_EmptyBody(t *testing.T) {
	svc := &stubShippingService{result: ports.ShipOrderResult{TrackingID: "trk-1"}}
	h := NewShippingHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/ship-order", nil)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)

	if err := h.ShipOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp shipOrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.TrackingID != "trk-1" {
		t.Errorf("expected trackingId trk-1, got %q", resp.TrackingID)
	}
}

func TestShippingHandler_ShipOrder_PassesFields(t *testing.T) {
	svc := &stubShippingService{result: ports.ShipOrderResult{TrackingID: "trk-2", Replayed: true}}
	h := NewShippingHandler(svc)

	c, rec := postJSON(newEcho(), "/ship-order", `{"address":{"zipCode":"06600"},"items":[{"quantity":2},{"quantity":5}]}`)
	c.Request().Header.Set("Idempotency-Key", "abc")

	if err := h.ShipOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := ports.ShipOrderInput{ItemCount: 7, ZipCode: "06600", IdempotencyKey: "abc"}
	if svc.last != want {
		t.Errorf("expected input %+v, got %+v", want, svc.last)
	}
}

func TestShippingHandler_ShipOrder_MalformedFieldsAreIgnored(t *testing.T) {
	cases := []struct {
		body      string
		wantCount uint32
		wantZip   string
	}{
		{`{"items":[{"quantity":-1},{"quantity":4}]}`, 4, ""},
		{`{"items":"x"}`, 0, ""},
		{`{"address":{"zipCode":94043}}`, 0, ""},
		{`{"address":{"zipCode":"94043"},"items":{}}`, 0, "94043"},
		{`{"items":[{"quantity":4294967295},{"quantity":1}]}`, math.MaxUint32, ""},
	}
	for _, tc := range cases {
		svc := &stubShippingService{result: ports.ShipOrderResult{TrackingID: "trk-3"}}
		c, rec := postJSON(newEcho(), "/ship-order", tc.body)

		if err := NewShippingHandler(svc).ShipOrder(c); err != nil {
			t.Fatalf("body %s: handler error: %v", tc.body, err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("body %s: expected 200, got %d", tc.body, rec.Code)
		}
		if svc.last.ItemCount != tc.wantCount || svc.last.ZipCode != tc.wantZip {
			t.Errorf("body %s: expected count=%d zip=%q, got %+v", tc.body, tc.wantCount, tc.wantZip, svc.last)
		}
	}
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

func TestReadiness(t *testing.T) {
	cases := []struct {
		name   string
		checks map[string]DependencyCheck
		want   int
	}{
		{"no deps", nil, http.StatusOK},
		{"redis ok", map[string]DependencyCheck{"redis": func(context.Context) error { return nil }}, http.StatusOK},
		{"redis down", map[string]DependencyCheck{"redis": func(context.Context) error { return errors.New("refused") }}, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
		if err := NewReadinessHandler(tc.checks).Readiness(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.name, err)
		}
		if rec.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, rec.Code)
		}
	}
}
