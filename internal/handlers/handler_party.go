package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/inventory_ledger_app/internal/apperrors"
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
	"github.com/SscSPs/inventory_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// partyHandler handles HTTP requests for one party type. It is registered
// twice, once under /customers and once under /suppliers, with the party
// type fixed by the route rather than the request body.
type partyHandler struct {
	partySvc  portssvc.PartySvcFacade
	partyType domain.PartyType
}

// newPartyHandler creates a new partyHandler bound to one party type.
func newPartyHandler(partySvc portssvc.PartySvcFacade, partyType domain.PartyType) *partyHandler {
	return &partyHandler{
		partySvc:  partySvc,
		partyType: partyType,
	}
}

// registerPartyRoutes registers CRUD routes for one party type under the
// given path segment.
func registerPartyRoutes(rg *gin.RouterGroup, partySvc portssvc.PartySvcFacade, partyType domain.PartyType, path string) {
	h := newPartyHandler(partySvc, partyType)

	parties := rg.Group("/" + path)
	{
		parties.POST("", h.createParty)
		parties.GET("", h.listParties)
		parties.GET("/:partyID", h.getParty)
		parties.PUT("/:partyID", h.updateParty)
		parties.DELETE("/:partyID", h.deactivateParty)
	}
}

// createParty godoc
// @Summary Create a customer or supplier
// @Description Creates a party with zero opening balance
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   party body dto.CreatePartyRequest true "Party details"
// @Success 201 {object} dto.PartyResponse "Created party"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Party code already exists"
// @Router /customers [post]
func (h *partyHandler) createParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createParty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	party, err := h.partySvc.CreateParty(c.Request.Context(), h.partyType, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create party", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create party"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}

// getParty godoc
// @Summary Get a customer or supplier
// @Description Retrieves a party by its ID
// @Tags parties
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Success 200 {object} dto.PartyResponse "Party"
// @Failure 404 {object} map[string]string "Party not found"
// @Router /customers/{partyID} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")

	party, err := h.partySvc.GetPartyByID(c.Request.Context(), partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
			return
		}
		logger.Error("Failed to get party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve party"})
		return
	}

	// A customer route must not serve suppliers and vice versa.
	if party.PartyType != h.partyType {
		c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// listParties godoc
// @Summary List customers or suppliers
// @Description Retrieves a paginated list of parties of one type
// @Tags parties
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListPartiesResponse "One page of parties"
// @Router /customers [get]
func (h *partyHandler) listParties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.partySvc.ListParties(c.Request.Context(), h.partyType, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list parties", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list parties"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateParty godoc
// @Summary Update a customer or supplier
// @Description Updates mutable party fields; the balance cannot be edited here
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Param   party body dto.UpdatePartyRequest true "Fields to update"
// @Success 200 {object} dto.PartyResponse "Updated party"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Party not found"
// @Router /customers/{partyID} [put]
func (h *partyHandler) updateParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")

	var req dto.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	party, err := h.partySvc.UpdateParty(c.Request.Context(), partyID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update party", slog.String("error", err.Error()), slog.String("party_id", partyID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update party"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// deactivateParty godoc
// @Summary Deactivate a customer or supplier
// @Description Marks a party inactive without touching its history
// @Tags parties
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Party not found"
// @Router /customers/{partyID} [delete]
func (h *partyHandler) deactivateParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.partySvc.DeactivateParty(c.Request.Context(), partyID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
			return
		}
		logger.Error("Failed to deactivate party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate party"})
		return
	}

	c.Status(http.StatusNoContent)
}
