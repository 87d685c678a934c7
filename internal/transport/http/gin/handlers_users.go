package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	postgresrepo "github.com/suyay-events/suyay-go/internal/repository/postgres"
	"github.com/suyay-events/suyay-go/internal/service"
	"github.com/suyay-events/suyay-go/internal/service/profiles"
)

// @Summary  List users (admin)
// @Param    limit  query int false "page size"
// @Param    offset query int false "offset"
// @Success  200 {array} domain.User
// @Failure  403 {object} ErrorResponse
// @Router   /users [get]
func handleListUsers(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntDefault(c.Query("limit"), 100)
		offset := parseIntDefault(c.Query("offset"), 0)

		out, err := svcs.Users.List(c.Request.Context(), principalFrom(c), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Get user
// @Param    id path int true "User ID"
// @Success  200 {object} domain.User
// @Failure  404 {object} ErrorResponse
// @Router   /users/{id} [get]
func handleGetUser(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		u, err := svcs.Users.Get(c.Request.Context(), principalFrom(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// @Summary  Update user profile
// @Param    id  path int true "User ID"
// @Param    req body UpdateUserRequest true "payload"
// @Success  200 {object} domain.User
// @Router   /users/{id} [patch]
func handleUpdateUser(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		u, err := svcs.Users.Update(c.Request.Context(), principalFrom(c), id, postgresrepo.UserPatch{
			FirstNames: req.FirstNames,
			LastNames:  req.LastNames,
			AvatarURL:  req.AvatarURL,
			Phone:      req.Phone,
			Gender:     req.Gender,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// @Summary  Create organizer profile
// @Param    req body CreateOrganizerRequest true "payload"
// @Success  201 {object} domain.Organizer
// @Failure  409 {object} ErrorResponse "already an organizer"
// @Router   /organizers [post]
func handleCreateOrganizer(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrganizerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		o, err := svcs.Profiles.CreateOrganizer(c.Request.Context(), principalFrom(c), profiles.OrganizerInput{
			UserID:              req.UserID,
			DocumentType:        req.DocumentType,
			DocumentNumber:      req.DocumentNumber,
			BusinessName:        req.BusinessName,
			TaxID:               req.TaxID,
			WorkCertificateFile: req.WorkCertificateFile,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// @Summary  List organizers (admin)
// @Success  200 {array} domain.Organizer
// @Router   /organizers [get]
func handleListOrganizers(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntDefault(c.Query("limit"), 100)
		offset := parseIntDefault(c.Query("offset"), 0)

		out, err := svcs.Profiles.Organizers(c.Request.Context(), principalFrom(c), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Get organizer
// @Param    id path int true "Organizer ID"
// @Success  200 {object} domain.Organizer
// @Router   /organizers/{id} [get]
func handleGetOrganizer(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		o, err := svcs.Profiles.Organizer(c.Request.Context(), principalFrom(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// @Summary  Update organizer (approval is admin only)
// @Param    id  path int true "Organizer ID"
// @Param    req body UpdateOrganizerRequest true "payload"
// @Success  200 {object} domain.Organizer
// @Router   /organizers/{id} [patch]
func handleUpdateOrganizer(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req UpdateOrganizerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		o, err := svcs.Profiles.UpdateOrganizer(c.Request.Context(), principalFrom(c), id, postgresrepo.OrganizerPatch{
			DocumentType:        req.DocumentType,
			DocumentNumber:      req.DocumentNumber,
			BusinessName:        req.BusinessName,
			TaxID:               req.TaxID,
			WorkCertificateFile: req.WorkCertificateFile,
			IsApproved:          req.IsApproved,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// @Summary  Enroll verifier
// @Param    req body CreateVerifierRequest true "payload"
// @Success  201 {object} domain.Verifier
// @Failure  409 {object} ErrorResponse "already a verifier"
// @Router   /verifiers [post]
func handleCreateVerifier(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateVerifierRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		v, err := svcs.Profiles.CreateVerifier(c.Request.Context(), principalFrom(c), req.UserID, req.OrganizerID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, v)
	}
}

// @Summary  List verifiers (admin)
// @Success  200 {array} domain.Verifier
// @Router   /verifiers [get]
func handleListVerifiers(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntDefault(c.Query("limit"), 100)
		offset := parseIntDefault(c.Query("offset"), 0)

		out, err := svcs.Profiles.Verifiers(c.Request.Context(), principalFrom(c), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Get verifier
// @Param    id path int true "Verifier ID"
// @Success  200 {object} domain.Verifier
// @Router   /verifiers/{id} [get]
func handleGetVerifier(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		v, err := svcs.Profiles.Verifier(c.Request.Context(), principalFrom(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

// @Summary  Reassign verifier to another organizer (admin)
// @Param    id  path int true "Verifier ID"
// @Param    req body ReassignVerifierRequest true "payload"
// @Success  200 {object} domain.Verifier
// @Router   /verifiers/{id} [patch]
func handleReassignVerifier(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req ReassignVerifierRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		v, err := svcs.Profiles.ReassignVerifier(c.Request.Context(), principalFrom(c), id, req.OrganizerID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}
