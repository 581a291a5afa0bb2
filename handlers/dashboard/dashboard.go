package dashboard

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/uniadvisor-api/model"
	"github.com/sahilchouksey/uniadvisor-api/services"
	"github.com/sahilchouksey/uniadvisor-api/services/gateway"
	"github.com/sahilchouksey/uniadvisor-api/utils/cache"
	"github.com/sahilchouksey/uniadvisor-api/utils/middleware"
	"github.com/sahilchouksey/uniadvisor-api/utils/response"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const selectionsCacheTTL = 5 * time.Minute

// DashboardHandler recomputes the derived advising state on every read:
// profile strength, funnel stage, and the recommended task list.
type DashboardHandler struct {
	db      *gorm.DB
	gateway gateway.Gateway
	cache   *cache.RedisCache
	opts    services.TaskEngineOptions
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *gorm.DB, gw gateway.Gateway, redisCache *cache.RedisCache, opts services.TaskEngineOptions) *DashboardHandler {
	return &DashboardHandler{
		db:      db,
		gateway: gw,
		cache:   redisCache,
		opts:    opts,
	}
}

// DashboardResponse is the derived display state
type DashboardResponse struct {
	ProfileStrength services.ProfileStrength `json:"profile_strength"`
	Stage           int                      `json:"stage"`
	StageLabels     []string                 `json:"stage_labels"`
	Tasks           []model.TaskItem         `json:"tasks"`
	ProfileComplete bool                     `json:"profile_complete"`
}

// Get handles GET /api/v1/dashboard
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}
	id := gateway.Identity{UserID: user.ID}

	profile, err := h.gateway.GetProfile(c.Context(), id)
	if err != nil {
		return response.ServiceUnavailable(c, "Failed to load onboarding profile")
	}

	selections, err := h.loadSelections(c, id)
	if err != nil {
		return response.ServiceUnavailable(c, "Failed to load selections")
	}

	state, prev, err := h.loadTaskState(user.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load task state")
	}

	tasks := services.GenerateTasks(prev, profile, selections, h.opts)
	if err := h.saveTaskState(state, tasks); err != nil {
		return response.InternalServerError(c, "Failed to save task state")
	}

	return response.Success(c, DashboardResponse{
		ProfileStrength: services.ComputeProfileStrength(profile),
		Stage:           services.ComputeStage(selections),
		StageLabels:     services.StageLabels,
		Tasks:           tasks,
		ProfileComplete: user.IsOnboarded,
	})
}

// ToggleTask handles POST /api/v1/dashboard/tasks/:id/toggle. Only the
// standing slot's completion is durable across recomputations unless the
// engine runs in carry-forward mode.
func (h *DashboardHandler) ToggleTask(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	taskID, err := c.ParamsInt("id")
	if err != nil || taskID <= 0 {
		return response.BadRequest(c, "Invalid task id")
	}

	state, tasks, err := h.loadTaskState(user.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load task state")
	}

	found := false
	for i := range tasks {
		if tasks[i].ID == taskID {
			tasks[i].Completed = !tasks[i].Completed
			found = true
			break
		}
	}
	if !found {
		return response.NotFound(c, "Task not found")
	}

	if err := h.saveTaskState(state, tasks); err != nil {
		return response.InternalServerError(c, "Failed to save task state")
	}

	return response.Success(c, tasks)
}

func (h *DashboardHandler) loadSelections(c *fiber.Ctx, id gateway.Identity) ([]model.Selection, error) {
	if h.cache != nil {
		var cached []model.Selection
		if err := h.cache.GetJSON(c.Context(), cache.SelectionsKey(id.UserID), &cached); err == nil {
			return cached, nil
		}
	}

	selections, err := h.gateway.ListSelections(c.Context(), id)
	if err != nil {
		return nil, err
	}
	if h.cache != nil {
		_ = h.cache.SetJSON(c.Context(), cache.SelectionsKey(id.UserID), selections, selectionsCacheTTL)
	}
	return selections, nil
}

func (h *DashboardHandler) loadTaskState(userID uint) (*model.TaskState, []model.TaskItem, error) {
	var state model.TaskState
	err := h.db.Where("user_id = ?", userID).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.TaskState{UserID: userID}, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var tasks []model.TaskItem
	if len(state.Snapshot) > 0 {
		if err := json.Unmarshal(state.Snapshot, &tasks); err != nil {
			// A corrupt snapshot falls back to a fresh list
			tasks = nil
		}
	}
	// The dedicated column is authoritative for the standing slot
	for i := range tasks {
		if tasks[i].ID == model.StandingTaskID {
			tasks[i].Completed = state.ResearchCompleted
		}
	}
	return &state, tasks, nil
}

func (h *DashboardHandler) saveTaskState(state *model.TaskState, tasks []model.TaskItem) error {
	snapshot, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	state.Snapshot = datatypes.JSON(snapshot)
	for _, t := range tasks {
		if t.ID == model.StandingTaskID {
			state.ResearchCompleted = t.Completed
			break
		}
	}
	return h.db.Save(state).Error
}
