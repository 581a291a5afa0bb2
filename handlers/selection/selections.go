package selection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/uniadvisor-api/model"
	"github.com/sahilchouksey/uniadvisor-api/services"
	"github.com/sahilchouksey/uniadvisor-api/services/gateway"
	"github.com/sahilchouksey/uniadvisor-api/utils/cache"
	"github.com/sahilchouksey/uniadvisor-api/utils/middleware"
	"github.com/sahilchouksey/uniadvisor-api/utils/response"
	"github.com/sahilchouksey/uniadvisor-api/utils/validation"
	"gorm.io/gorm"
)

const catalogCacheTTL = 12 * time.Hour

// SelectionHandler handles the university catalog and per-user
// selection state
type SelectionHandler struct {
	db         *gorm.DB
	selections *services.SelectionService
	cache      *cache.RedisCache
	dispatcher *gateway.Dispatcher
	validator  *validation.Validator
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(db *gorm.DB, selections *services.SelectionService, redisCache *cache.RedisCache, dispatcher *gateway.Dispatcher) *SelectionHandler {
	return &SelectionHandler{
		db:         db,
		selections: selections,
		cache:      redisCache,
		dispatcher: dispatcher,
		validator:  validation.NewValidator(),
	}
}

// MutateRequest represents the request body for a selection mutation
type MutateRequest struct {
	UniversityID string `json:"university_id" validate:"required,max=50"`
	Action       string `json:"action" validate:"required,oneof=shortlist lock unlock"`
}

// ListCatalog handles GET /api/v1/universities
func (h *SelectionHandler) ListCatalog(c *fiber.Ctx) error {
	if h.cache != nil {
		var cached []model.University
		if err := h.cache.GetJSON(c.Context(), cache.CatalogKey(), &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	var universities []model.University
	if err := h.db.Where("is_active = ?", true).Order("id ASC").Find(&universities).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch universities")
	}

	if h.cache != nil {
		_ = h.cache.SetJSON(c.Context(), cache.CatalogKey(), universities, catalogCacheTTL)
	}
	return response.Success(c, universities)
}

// ListSelections handles GET /api/v1/universities/selections
func (h *SelectionHandler) ListSelections(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	selections, err := h.selections.List(c.Context(), userID)
	if err != nil {
		return response.ServiceUnavailable(c, "Failed to fetch selections")
	}
	return response.Success(c, selections)
}

// Mutate handles POST /api/v1/universities/selections. The state machine
// validates the transition; an illegal one is rejected with no state
// change.
func (h *SelectionHandler) Mutate(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req MutateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	// Only catalog members can be selected
	var uni model.University
	if err := h.db.Where("id = ? AND is_active = ?", req.UniversityID, true).First(&uni).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found in catalog")
		}
		return response.InternalServerError(c, "Failed to look up university")
	}

	op := services.SelectionOp(req.Action)
	record, err := h.selections.Apply(c.Context(), userID, req.UniversityID, op)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			return response.InvalidTransition(c, err.Error())
		}
		return response.ServiceUnavailable(c, "Failed to apply selection")
	}

	h.invalidateSelections(userID, req.UniversityID)
	return response.Success(c, record)
}

// Remove handles DELETE /api/v1/universities/selections/:id. Only valid
// from the shortlisted state; a locked university must be unlocked first.
func (h *SelectionHandler) Remove(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	universityID := c.Params("id")
	if universityID == "" {
		return response.BadRequest(c, "Missing university id")
	}

	_, err := h.selections.Apply(c.Context(), userID, universityID, services.OpRemove)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			// Distinguish "never selected" from "locked"
			var existing model.Selection
			lookupErr := h.db.Where("user_id = ? AND university_id = ?", userID, universityID).First(&existing).Error
			if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				return response.NotFound(c, "University not found in selection")
			}
			return response.InvalidTransition(c, err.Error())
		}
		return response.ServiceUnavailable(c, "Failed to remove selection")
	}

	h.invalidateSelections(userID, universityID)
	return response.SuccessWithMessage(c, "Selection removed", nil)
}

// invalidateSelections pushes the cache invalidation through the per-id
// dispatch queue so signals for the same university stay ordered even
// when the cache is briefly unreachable.
func (h *SelectionHandler) invalidateSelections(userID uint, universityID string) {
	if h.cache == nil || h.dispatcher == nil {
		return
	}
	key := fmt.Sprintf("%d:%s", userID, universityID)
	h.dispatcher.Enqueue(key, func(ctx context.Context) error {
		return h.cache.Delete(ctx, cache.SelectionsKey(userID))
	}, nil)
}
