package handler

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/shipping-service/internal/api/metrics"
	"github.com/99minutos/shipping-service/internal/core/ports"
	"github.com/99minutos/shipping-service/pkg/logger"
)

// ShippingHandler handles HTTP requests for shipping orders.
type ShippingHandler struct {
	service ports.ShippingService
}

func NewShippingHandler(service ports.ShippingService) *ShippingHandler {
	return &ShippingHandler{service: service}
}

// ShipOrder handles POST /ship-order.
//
// @Summary      Ship an order and obtain its tracking id
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string            false  "Replays the tracking id of an earlier call with the same key"
// @Param        body             body      shipOrderRequest  false  "Order placeholder"
// @Success      200              {object}  shipOrderResponse
// @Router       /ship-order [post]
func (h *ShippingHandler) ShipOrder(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	var req shipOrderRequest
	if err := c.Bind(&req); err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable ship order payload")
	}

	in := ports.ShipOrderInput{
		ItemCount:      req.itemCount(),
		ZipCode:        req.zipCode(),
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	}
	log.Info().
		Uint32("item_count", in.ItemCount).
		Str("zip_code", in.ZipCode).
		Msg("processing ship order request")

	result := h.service.ShipOrder(ctx, in)

	outcome := "created"
	if result.Replayed {
		outcome = "replayed"
	}
	metrics.ShipmentsTotal.WithLabelValues(outcome).Inc()

	return c.JSON(http.StatusOK, shipOrderResponse{TrackingID: string(result.TrackingID)})
}

// itemCount sums the well-formed, non-negative quantities. A payload that is
// not an item list counts as zero.
func (r shipOrderRequest) itemCount() uint32 {
	var items []itemRequest
	if len(r.Items) == 0 || json.Unmarshal(r.Items, &items) != nil {
		return 0
	}
	var total uint64
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		total += uint64(it.Quantity)
		if total > math.MaxUint32 {
			return math.MaxUint32
		}
	}
	return uint32(total)
}

func (r shipOrderRequest) zipCode() string {
	var addr addressRequest
	if len(r.Address) == 0 || json.Unmarshal(r.Address, &addr) != nil {
		return ""
	}
	return addr.ZipCode
}
