package handler

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/shipping-service/internal/core/domain"
	"github.com/99minutos/shipping-service/internal/core/ports"
	"github.com/99minutos/shipping-service/pkg/logger"
)

// QuoteHandler handles HTTP requests for shipping quotes.
type QuoteHandler struct {
	service ports.QuoteService
}

func NewQuoteHandler(service ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// GetQuote handles POST /get-quote.
//
// @Summary      Quote the shipping cost of a cart
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        body  body      getQuoteRequest  true  "Cart items and optional address"
// @Success      200   {object}  getQuoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /get-quote [post]
func (h *QuoteHandler) GetQuote(c echo.Context) error {
	var req getQuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	count, ok := itemCount(req.Items)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "too many items")
	}

	ctx := c.Request().Context()
	log := logger.FromContext(ctx)
	zip := "none"
	if req.Address != nil {
		zip = req.Address.ZipCode
	}
	log.Info().
		Uint32("item_count", count).
		Bool("has_address", req.Address != nil).
		Str("zip_code", zip).
		Msg("processing shipping quote request")

	q, err := h.service.QuoteForCount(ctx, count)
	if err != nil {
		return err
	}

	log.Info().
		Uint64("quote_dollars", q.Units).
		Uint32("quote_cents", q.Subunits).
		Msg("shipping quote calculated")

	return c.JSON(http.StatusOK, getQuoteResponse{CostUsd: toMoney(q)})
}

// itemCount sums item quantities, reporting false when the total does not
// fit an item count.
func itemCount(items []itemRequest) (uint32, bool) {
	var total uint64
	for _, it := range items {
		total += uint64(it.Quantity)
		if total > math.MaxUint32 {
			return 0, false
		}
	}
	return uint32(total), true
}

func toMoney(q domain.Quote) moneyResponse {
	units, nanos := q.Money()
	return moneyResponse{
		CurrencyCode: domain.CurrencyUSD,
		Units:        units,
		Nanos:        nanos,
	}
}
