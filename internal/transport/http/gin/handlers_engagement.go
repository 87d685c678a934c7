package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suyay-events/suyay-go/internal/domain"
	"github.com/suyay-events/suyay-go/internal/service"
)

// @Summary  Add favorite
// @Param    req body CreateFavoriteRequest true "payload"
// @Success  201 {object} domain.Favorite
// @Failure  409 {object} ErrorResponse "already a favorite"
// @Router   /favorites [post]
func handleAddFavorite(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateFavoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		f, err := svcs.Engagement.AddFavorite(c.Request.Context(), principalFrom(c), req.UserID, req.EventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, f)
	}
}

// @Summary  List favorites
// @Param    user_id query int false "owner (foreign values are denied for non-admins)"
// @Success  200 {array} domain.Favorite
// @Failure  403 {object} ErrorResponse
// @Router   /favorites [get]
func handleListFavorites(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := queryInt64(c, "user_id")
		if !ok {
			return
		}

		out, err := svcs.Engagement.Favorites(c.Request.Context(), principalFrom(c), userID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Remove favorite
// @Param    id path int true "Favorite ID"
// @Success  204
// @Router   /favorites/{id} [delete]
func handleRemoveFavorite(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Engagement.RemoveFavorite(c.Request.Context(), principalFrom(c), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Rate event
// @Param    req body CreateRatingRequest true "payload"
// @Success  201 {object} domain.Rating
// @Failure  409 {object} ErrorResponse "already rated"
// @Router   /ratings [post]
func handleCreateRating(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRatingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		rt, err := svcs.Engagement.Rate(c.Request.Context(), principalFrom(c), &domain.Rating{
			UserID:  req.UserID,
			EventID: req.EventID,
			Score:   req.Score,
			Comment: req.Comment,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, rt)
	}
}

// @Summary  List ratings
// @Param    event_id query int false "filter by event"
// @Param    user_id  query int false "filter by author"
// @Success  200 {array} domain.Rating
// @Router   /ratings [get]
func handleListRatings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := queryInt64(c, "event_id")
		if !ok {
			return
		}
		userID, ok := queryInt64(c, "user_id")
		if !ok {
			return
		}

		out, err := svcs.Engagement.Ratings(c.Request.Context(), eventID, userID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=15", true)
	}
}

// @Summary  File report
// @Param    req body CreateReportRequest true "payload"
// @Success  201 {object} domain.Report
// @Router   /reports [post]
func handleCreateReport(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		rep, err := svcs.Engagement.CreateReport(c.Request.Context(), principalFrom(c), &domain.Report{
			UserID:      req.UserID,
			ReportType:  req.ReportType,
			Description: req.Description,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, rep)
	}
}

// @Summary  List reports
// @Param    user_id query int false "filter by author (narrowed for non-admins)"
// @Success  200 {array} domain.Report
// @Router   /reports [get]
func handleListReports(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := queryInt64(c, "user_id")
		if !ok {
			return
		}
		limit := parseIntDefault(c.Query("limit"), 100)
		offset := parseIntDefault(c.Query("offset"), 0)

		out, err := svcs.Engagement.Reports(c.Request.Context(), principalFrom(c), userID, limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Get report
// @Param    id path int true "Report ID"
// @Success  200 {object} domain.Report
// @Router   /reports/{id} [get]
func handleGetReport(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		rep, err := svcs.Engagement.Report(c.Request.Context(), principalFrom(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rep)
	}
}

// @Summary  Moderate report (admin)
// @Param    id  path int true "Report ID"
// @Param    req body ModerationRequest true "payload"
// @Success  200 {object} domain.Report
// @Router   /reports/{id} [patch]
func handleModerateReport(svcs *service.Services) gin.HandlerFunc {
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

		rep, err := svcs.Engagement.ModerateReport(c.Request.Context(), principalFrom(c), id,
			domain.ModerationStatus(req.Status))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rep)
	}
}
