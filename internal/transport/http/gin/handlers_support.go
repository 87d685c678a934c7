package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/suyay-events/suyay-go/internal/domain"
	"github.com/suyay-events/suyay-go/internal/service"
)

// @Summary  Submit consumer-protection claim (public)
// @Param    req body CreateClaimRequest true "payload"
// @Success  201 {object} domain.Claim
// @Router   /claims [post]
func handleSubmitClaim(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateClaimRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		var amount *decimal.Decimal
		if req.ClaimAmount != nil {
			a, err := decimal.NewFromString(*req.ClaimAmount)
			if err != nil || a.IsNegative() {
				badRequest(c, "invalid claim_amount")
				return
			}
			amount = &a
		}

		claim, err := svcs.Support.SubmitClaim(c.Request.Context(), &domain.Claim{
			FirstNames:         req.FirstNames,
			LastNames:          req.LastNames,
			DocumentType:       req.DocumentType,
			DocumentNumber:     req.DocumentNumber,
			Address:            req.Address,
			DistrictID:         req.DistrictID,
			HomePhone:          req.HomePhone,
			MobilePhone:        req.MobilePhone,
			Email:              req.Email,
			IsMinor:            req.IsMinor,
			ClaimAmount:        amount,
			ServiceType:        req.ServiceType,
			ProductDescription: req.ProductDescription,
			ClaimType:          req.ClaimType,
			ClaimDetail:        req.ClaimDetail,
			CustomerRequest:    req.CustomerRequest,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, claim)
	}
}

// @Summary  List claims (admin)
// @Success  200 {array} domain.Claim
// @Router   /claims [get]
func handleListClaims(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntDefault(c.Query("limit"), 100)
		offset := parseIntDefault(c.Query("offset"), 0)

		out, err := svcs.Support.Claims(c.Request.Context(), principalFrom(c), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Get claim (admin)
// @Param    id path int true "Claim ID"
// @Success  200 {object} domain.Claim
// @Router   /claims/{id} [get]
func handleGetClaim(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		claim, err := svcs.Support.Claim(c.Request.Context(), principalFrom(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, claim)
	}
}

// @Summary  Moderate claim (admin)
// @Param    id  path int true "Claim ID"
// @Param    req body ModerationRequest true "payload"
// @Success  200 {object} domain.Claim
// @Router   /claims/{id} [patch]
func handleModerateClaim(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req ModerationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		claim, err := svcs.Support.ModerateClaim(c.Request.Context(), principalFrom(c), id,
			domain.ModerationStatus(req.Status))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, claim)
	}
}

// @Summary  Submit contact message (public)
// @Param    req body CreateContactRequest true "payload"
// @Success  201 {object} domain.ContactMessage
// @Router   /contact [post]
func handleSubmitContact(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		m, err := svcs.Support.SubmitMessage(c.Request.Context(), &domain.ContactMessage{
			FirstNames: req.FirstNames,
			LastNames:  req.LastNames,
			Email:      req.Email,
			Phone:      req.Phone,
			Subject:    req.Subject,
			Message:    req.Message,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

// @Summary  List contact messages (admin)
// @Success  200 {array} domain.ContactMessage
// @Router   /contact [get]
func handleListContact(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntDefault(c.Query("limit"), 100)
		offset := parseIntDefault(c.Query("offset"), 0)

		out, err := svcs.Support.Messages(c.Request.Context(), principalFrom(c), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Get contact message (admin)
// @Param    id path int true "Message ID"
// @Success  200 {object} domain.ContactMessage
// @Router   /contact/{id} [get]
func handleGetContact(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		m, err := svcs.Support.Message(c.Request.Context(), principalFrom(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

// @Summary  Moderate contact message (admin)
// @Param    id  path int true "Message ID"
// @Param    req body ModerationRequest true "payload"
// @Success  200 {object} domain.ContactMessage
// @Router   /contact/{id} [patch]
func handleModerateContact(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req ModerationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		m, err := svcs.Support.ModerateMessage(c.Request.Context(), principalFrom(c), id,
			domain.ModerationStatus(req.Status))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}
