package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/suyay-events/suyay-go/internal/domain"
	postgresrepo "github.com/suyay-events/suyay-go/internal/repository/postgres"
	"github.com/suyay-events/suyay-go/internal/service"
	"github.com/suyay-events/suyay-go/internal/service/events"
)

// @Summary  List events
// @Param    category_id  query int false "filter by category"
// @Param    organizer_id query int false "filter by organizer"
// @Param    limit  query int false "page size"
// @Param    offset query int false "offset"
// @Success  200 {array} domain.Event
// @Router   /events [get]
func handleListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, ok := queryInt64(c, "category_id")
		if !ok {
			return
		}
		organizerID, ok := queryInt64(c, "organizer_id")
		if !ok {
			return
		}

		out, err := svcs.Events.List(c.Request.Context(), postgresrepo.EventFilter{
			CategoryID:  categoryID,
			OrganizerID: organizerID,
			Limit:       parseIntDefault(c.Query("limit"), 100),
			Offset:      parseIntDefault(c.Query("offset"), 0),
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=15", true)
	}
}

// @Summary  Get event
// @Param    id path int true "Event ID"
// @Success  200 {object} domain.Event
// @Failure  404 {object} ErrorResponse
// @Router   /events/{id} [get]
func handleGetEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		e, err := svcs.Events.Get(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, e, "public, max-age=60", true)
	}
}

// @Summary  Create event
// @Param    req body CreateEventRequest true "payload"
// @Success  201 {object} domain.Event
// @Failure  403 {object} ErrorResponse
// @Router   /events [post]
func handleCreateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		start, err := parseRFC3339(req.StartDate)
		if err != nil {
			badRequest(c, "invalid start_date (RFC3339)")
			return
		}
		end, err := parseRFC3339(req.EndDate)
		if err != nil {
			badRequest(c, "invalid end_date (RFC3339)")
			return
		}
		if !end.After(start) {
			badRequest(c, "end_date must be after start_date")
			return
		}

		e, err := svcs.Events.Create(c.Request.Context(), principalFrom(c), events.CreateInput{
			Title:               req.Title,
			Description:         req.Description,
			StartDate:           start,
			EndDate:             end,
			DistrictID:          req.DistrictID,
			LocationDescription: req.LocationDescription,
			CategoryID:          req.CategoryID,
			OrganizerID:         req.OrganizerID,
			ImageURL:            req.ImageURL,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, e)
	}
}

// @Summary  Update event
// @Param    id  path int true "Event ID"
// @Param    req body UpdateEventRequest true "payload"
// @Success  200 {object} domain.Event
// @Router   /events/{id} [patch]
func handleUpdateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req UpdateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		patch := postgresrepo.EventPatch{
			Title:               req.Title,
			Description:         req.Description,
			StartDate:           req.StartDate,
			EndDate:             req.EndDate,
			DistrictID:          req.DistrictID,
			LocationDescription: req.LocationDescription,
			CategoryID:          req.CategoryID,
			ImageURL:            req.ImageURL,
		}
		if req.Status != nil {
			st := domain.EventStatus(*req.Status)
			switch st {
			case domain.EventActive, domain.EventCancelled, domain.EventFinished:
				patch.Status = &st
			default:
				badRequest(c, "invalid status")
				return
			}
		}

		e, err := svcs.Events.Update(c.Request.Context(), principalFrom(c), id, patch)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

// @Summary  Delete event
// @Param    id path int true "Event ID"
// @Success  204
// @Router   /events/{id} [delete]
func handleDeleteEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Events.Delete(c.Request.Context(), principalFrom(c), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  List event verifier assignments
// @Param    id path int true "Event ID"
// @Success  200 {array} domain.EventVerifier
// @Router   /events/{id}/verifiers [get]
func handleListEventVerifiers(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		out, err := svcs.Events.EventVerifiers(c.Request.Context(), principalFrom(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Assign verifier to event
// @Param    id  path int true "Event ID"
// @Param    req body object true "payload with verifier_id"
// @Success  201 {object} domain.EventVerifier
// @Failure  409 {object} ErrorResponse "already assigned"
// @Router   /events/{id}/verifiers [post]
func handleAssignEventVerifier(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req struct {
			VerifierID int64 `json:"verifier_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		ev, err := svcs.Events.AssignVerifier(c.Request.Context(), principalFrom(c), id, req.VerifierID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, ev)
	}
}

// @Summary  Remove verifier assignment
// @Param    id path int true "Assignment ID"
// @Success  204
// @Router   /event-verifiers/{id} [delete]
func handleRemoveEventVerifier(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Events.RemoveVerifier(c.Request.Context(), principalFrom(c), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  List ticket types
// @Param    event_id query int false "filter by event"
// @Success  200 {array} domain.TicketType
// @Router   /ticket-types [get]
func handleListTicketTypes(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := queryInt64(c, "event_id")
		if !ok {
			return
		}
		out, err := svcs.Events.TicketTypes(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=15", true)
	}
}

// @Summary  Get ticket type
// @Param    id path int true "Ticket type ID"
// @Success  200 {object} domain.TicketType
// @Router   /ticket-types/{id} [get]
func handleGetTicketType(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		tt, err := svcs.Events.TicketType(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, tt, "public, max-age=60", true)
	}
}

// @Summary  Create ticket type
// @Param    req body CreateTicketTypeRequest true "payload"
// @Success  201 {object} domain.TicketType
// @Router   /ticket-types [post]
func handleCreateTicketType(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTicketTypeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		price, err := decimal.NewFromString(req.Price)
		if err != nil || price.IsNegative() {
			badRequest(c, "invalid price")
			return
		}

		tt, err := svcs.Events.CreateTicketType(c.Request.Context(), principalFrom(c), &domain.TicketType{
			EventID:  req.EventID,
			Name:     req.Name,
			Price:    price,
			Capacity: req.Capacity,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, tt)
	}
}

// @Summary  Update ticket type
// @Param    id  path int true "Ticket type ID"
// @Param    req body UpdateTicketTypeRequest true "payload"
// @Success  200 {object} domain.TicketType
// @Router   /ticket-types/{id} [patch]
func handleUpdateTicketType(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req UpdateTicketTypeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if req.Price != nil {
			if p, err := decimal.NewFromString(*req.Price); err != nil || p.IsNegative() {
				badRequest(c, "invalid price")
				return
			}
		}

		tt, err := svcs.Events.UpdateTicketType(c.Request.Context(), principalFrom(c), id, postgresrepo.TicketTypePatch{
			Name:     req.Name,
			Price:    req.Price,
			Capacity: req.Capacity,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, tt)
	}
}

// @Summary  Delete ticket type
// @Param    id path int true "Ticket type ID"
// @Success  204
// @Router   /ticket-types/{id} [delete]
func handleDeleteTicketType(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Events.DeleteTicketType(c.Request.Context(), principalFrom(c), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
