package httpgin

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	redisx "github.com/suyay-events/suyay-go/internal/redis"
	postgresrepo "github.com/suyay-events/suyay-go/internal/repository/postgres"
	redisrepo "github.com/suyay-events/suyay-go/internal/repository/redis"
	"github.com/suyay-events/suyay-go/internal/service"
	"github.com/suyay-events/suyay-go/internal/service/purchases"
)

// @Summary  Create purchase (idempotent)
// @Param    req body CreatePurchaseRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} purchases.Result
// @Failure  409 {object} ErrorResponse "idem in progress"
// @Router   /purchases [post]
func handleCreatePurchase(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePurchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		p := principalFrom(c)

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisx.KeyIdemPurchase(p.UserID, idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		items := make([]purchases.Item, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, purchases.Item{
				TicketTypeID: it.TicketTypeID,
				Quantity:     it.Quantity,
			})
		}

		res, err := svcs.Purchases.Create(c.Request.Context(), p, purchases.CreateInput{
			EventID: req.EventID,
			UserID:  req.UserID,
			Items:   items,
		})
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(res)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, res)
	}
}

// @Summary  List purchases
// @Param    user_id  query int false "filter by owner (narrowed for non-admins)"
// @Param    event_id query int false "filter by event"
// @Success  200 {array} domain.Purchase
// @Router   /purchases [get]
func handleListPurchases(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := queryInt64(c, "user_id")
		if !ok {
			return
		}
		eventID, ok := queryInt64(c, "event_id")
		if !ok {
			return
		}

		out, err := svcs.Purchases.List(c.Request.Context(), principalFrom(c), postgresrepo.PurchaseFilter{
			UserID:  userID,
			EventID: eventID,
			Limit:   parseIntDefault(c.Query("limit"), 100),
			Offset:  parseIntDefault(c.Query("offset"), 0),
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Get purchase
// @Param    id path int true "Purchase ID"
// @Success  200 {object} domain.Purchase
// @Failure  404 {object} ErrorResponse
// @Router   /purchases/{id} [get]
func handleGetPurchase(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		p, err := svcs.Purchases.Get(c.Request.Context(), principalFrom(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// @Summary  Get purchase line items
// @Param    id path int true "Purchase ID"
// @Success  200 {array} domain.PurchaseDetail
// @Router   /purchases/{id}/details [get]
func handleGetPurchaseDetails(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		out, err := svcs.Purchases.Details(c.Request.Context(), principalFrom(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
