package httpgin

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	postgresrepo "github.com/suyay-events/suyay-go/internal/repository/postgres"
	"github.com/suyay-events/suyay-go/internal/service"
)

var redemptionCodePattern = regexp.MustCompile(`^[0-9]{12}$`)

// @Summary  Issue ticket for a purchase
// @Param    req body CreateTicketRequest true "payload"
// @Success  201 {object} domain.Ticket
// @Failure  404 {object} ErrorResponse "purchase not found"
// @Failure  403 {object} ErrorResponse
// @Router   /tickets [post]
func handleCreateTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		t, err := svcs.Tickets.Create(c.Request.Context(), principalFrom(c), req.PurchaseID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

// @Summary  List tickets
// @Param    purchase_id query int false "filter by purchase"
// @Param    user_id     query int false "filter by owner (narrowed for non-privileged callers)"
// @Success  200 {array} domain.Ticket
// @Router   /tickets [get]
func handleListTickets(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		purchaseID, ok := queryInt64(c, "purchase_id")
		if !ok {
			return
		}
		userID, ok := queryInt64(c, "user_id")
		if !ok {
			return
		}

		out, err := svcs.Tickets.List(c.Request.Context(), principalFrom(c), postgresrepo.TicketFilter{
			PurchaseID: purchaseID,
			UserID:     userID,
			Limit:      parseIntDefault(c.Query("limit"), 100),
			Offset:     parseIntDefault(c.Query("offset"), 0),
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Get ticket
// @Param    id path int true "Ticket ID"
// @Success  200 {object} domain.Ticket
// @Failure  404 {object} ErrorResponse
// @Router   /tickets/{id} [get]
func handleGetTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		t, err := svcs.Tickets.Get(c.Request.Context(), principalFrom(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// @Summary  Resolve ticket by redemption code (gate scan)
// @Param    code path string true "12-digit redemption code"
// @Success  200 {object} domain.Ticket
// @Failure  404 {object} ErrorResponse "unknown code"
// @Router   /scan/{code} [get]
func handleScanTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		if !redemptionCodePattern.MatchString(code) {
			badRequest(c, "code must be 12 decimal digits")
			return
		}

		t, err := svcs.Tickets.GetByCode(c.Request.Context(), principalFrom(c), code)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// @Summary  Validate ticket at the gate
// @Param    id path int true "Ticket ID"
// @Success  200 {object} domain.Ticket
// @Failure  409 {object} ErrorResponse "already used or expired"
// @Router   /tickets/{id}/validate [patch]
func handleValidateTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		t, err := svcs.Tickets.Validate(c.Request.Context(), principalFrom(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// @Summary  Expire ticket
// @Param    id path int true "Ticket ID"
// @Success  200 {object} domain.Ticket
// @Failure  409 {object} ErrorResponse "already expired"
// @Router   /tickets/{id}/expire [patch]
func handleExpireTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		t, err := svcs.Tickets.Expire(c.Request.Context(), principalFrom(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}
