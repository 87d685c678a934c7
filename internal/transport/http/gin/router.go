package httpgin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/suyay-events/suyay-go/internal/authz"
	redisrepo "github.com/suyay-events/suyay-go/internal/repository/redis"
	"github.com/suyay-events/suyay-go/internal/service"
	"github.com/suyay-events/suyay-go/internal/service/auth"
	"github.com/suyay-events/suyay-go/internal/service/engagement"
	"github.com/suyay-events/suyay-go/internal/service/events"
	"github.com/suyay-events/suyay-go/internal/service/profiles"
	"github.com/suyay-events/suyay-go/internal/service/purchases"
	"github.com/suyay-events/suyay-go/internal/service/support"
	"github.com/suyay-events/suyay-go/internal/service/tickets"
	"github.com/suyay-events/suyay-go/internal/service/users"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	limiter *redisrepo.SlidingWindowLimiter,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.POST("/auth/register", RateLimit(limiter, "register"), handleRegister(svcs))
	r.POST("/auth/login", RateLimit(limiter, "login"), handleLogin(svcs))

	r.GET("/roles", handleListRoles(svcs))
	r.GET("/categories", handleListCategories(svcs))
	r.GET("/departments", handleListDepartments(svcs))
	r.GET("/provinces", handleListProvinces(svcs))
	r.GET("/districts", handleListDistricts(svcs))

	r.GET("/events", handleListEvents(svcs))
	r.GET("/events/:id", handleGetEvent(svcs))
	r.GET("/ticket-types", handleListTicketTypes(svcs))
	r.GET("/ticket-types/:id", handleGetTicketType(svcs))
	r.GET("/ratings", handleListRatings(svcs))

	r.POST("/claims", RateLimit(limiter, "claims"), handleSubmitClaim(svcs))
	r.POST("/contact", RateLimit(limiter, "contact"), handleSubmitContact(svcs))

	// Authenticated API
	api := r.Group("/", AuthRequired(svcs.Auth))
	{
		api.GET("/auth/me", handleMe())

		api.GET("/users", handleListUsers(svcs))
		api.GET("/users/:id", handleGetUser(svcs))
		api.PATCH("/users/:id", handleUpdateUser(svcs))

		api.POST("/organizers", handleCreateOrganizer(svcs))
		api.GET("/organizers", handleListOrganizers(svcs))
		api.GET("/organizers/:id", handleGetOrganizer(svcs))
		api.PATCH("/organizers/:id", handleUpdateOrganizer(svcs))

		api.POST("/verifiers", handleCreateVerifier(svcs))
		api.GET("/verifiers", handleListVerifiers(svcs))
		api.GET("/verifiers/:id", handleGetVerifier(svcs))
		api.PATCH("/verifiers/:id", handleReassignVerifier(svcs))

		api.POST("/events", handleCreateEvent(svcs))
		api.PATCH("/events/:id", handleUpdateEvent(svcs))
		api.DELETE("/events/:id", handleDeleteEvent(svcs))
		api.GET("/events/:id/verifiers", handleListEventVerifiers(svcs))
		api.POST("/events/:id/verifiers", handleAssignEventVerifier(svcs))
		api.DELETE("/event-verifiers/:id", handleRemoveEventVerifier(svcs))

		api.POST("/ticket-types", handleCreateTicketType(svcs))
		api.PATCH("/ticket-types/:id", handleUpdateTicketType(svcs))
		api.DELETE("/ticket-types/:id", handleDeleteTicketType(svcs))

		api.POST("/purchases", handleCreatePurchase(svcs, idem))
		api.GET("/purchases", handleListPurchases(svcs))
		api.GET("/purchases/:id", handleGetPurchase(svcs))
		api.GET("/purchases/:id/details", handleGetPurchaseDetails(svcs))

		api.POST("/tickets", handleCreateTicket(svcs))
		api.GET("/tickets", handleListTickets(svcs))
		api.GET("/tickets/:id", handleGetTicket(svcs))
		api.PATCH("/tickets/:id/validate", handleValidateTicket(svcs))
		api.PATCH("/tickets/:id/expire", handleExpireTicket(svcs))
		api.GET("/scan/:code", handleScanTicket(svcs))

		api.POST("/favorites", handleAddFavorite(svcs))
		api.GET("/favorites", handleListFavorites(svcs))
		api.DELETE("/favorites/:id", handleRemoveFavorite(svcs))

		api.POST("/ratings", handleCreateRating(svcs))

		api.POST("/reports", handleCreateReport(svcs))
		api.GET("/reports", handleListReports(svcs))
		api.GET("/reports/:id", handleGetReport(svcs))
		api.PATCH("/reports/:id", handleModerateReport(svcs))

		api.GET("/claims", handleListClaims(svcs))
		api.GET("/claims/:id", handleGetClaim(svcs))
		api.PATCH("/claims/:id", handleModerateClaim(svcs))

		api.GET("/contact", handleListContact(svcs))
		api.GET("/contact/:id", handleGetContact(svcs))
		api.PATCH("/contact/:id", handleModerateContact(svcs))
	}

	return r
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// queryInt64 returns nil when the query parameter is absent.
func queryInt64(c *gin.Context, name string) (*int64, bool) {
	s := c.Query(name)
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return nil, false
	}
	return &v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// access policy: forbidden only fires on resources that exist
	case errors.Is(err, authz.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not enough permissions"})
	case errors.Is(err, events.ErrOrganizerNotApproved):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	// auth service
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrUnknownRole):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	// not found
	case errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, profiles.ErrOrganizerNotFound),
		errors.Is(err, profiles.ErrVerifierNotFound),
		errors.Is(err, events.ErrEventNotFound),
		errors.Is(err, events.ErrTicketTypeNotFound),
		errors.Is(err, events.ErrOrganizerNotFound),
		errors.Is(err, events.ErrVerifierNotFound),
		errors.Is(err, events.ErrAssignmentNotFound),
		errors.Is(err, purchases.ErrPurchaseNotFound),
		errors.Is(err, purchases.ErrEventNotFound),
		errors.Is(err, purchases.ErrTicketTypeNotFound),
		errors.Is(err, tickets.ErrTicketNotFound),
		errors.Is(err, tickets.ErrPurchaseNotFound),
		errors.Is(err, engagement.ErrEventNotFound),
		errors.Is(err, engagement.ErrFavoriteNotFound),
		errors.Is(err, engagement.ErrReportNotFound),
		errors.Is(err, support.ErrClaimNotFound),
		errors.Is(err, support.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	// conflicts
	case errors.Is(err, profiles.ErrAlreadyOrganizer),
		errors.Is(err, profiles.ErrAlreadyVerifier),
		errors.Is(err, events.ErrVerifierAlreadyAssigned),
		errors.Is(err, engagement.ErrAlreadyFavorite),
		errors.Is(err, engagement.ErrAlreadyRated),
		errors.Is(err, tickets.ErrNotActive),
		errors.Is(err, tickets.ErrAlreadyExpired):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	// validation
	case errors.Is(err, engagement.ErrInvalidScore),
		errors.Is(err, purchases.ErrEmptyPurchase),
		errors.Is(err, purchases.ErrInvalidQuantity),
		errors.Is(err, purchases.ErrTicketTypeMismatch):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	default:
		// includes code-space exhaustion: nothing the client can fix
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
