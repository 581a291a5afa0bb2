package onboarding

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/uniadvisor-api/model"
	"github.com/sahilchouksey/uniadvisor-api/services/gateway"
	"github.com/sahilchouksey/uniadvisor-api/utils/middleware"
	"github.com/sahilchouksey/uniadvisor-api/utils/response"
	"github.com/sahilchouksey/uniadvisor-api/utils/validation"
	"gorm.io/gorm"
)

// OnboardingHandler handles onboarding profile requests
type OnboardingHandler struct {
	db        *gorm.DB
	gateway   gateway.Gateway
	validator *validation.Validator
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(db *gorm.DB, gw gateway.Gateway) *OnboardingHandler {
	return &OnboardingHandler{
		db:        db,
		gateway:   gw,
		validator: validation.NewValidator(),
	}
}

// UpsertRequest is a step-wise partial save: only fields present in the
// body are applied. Enum membership is enforced by model.Validate; the
// tags here cover shapes and year bands.
type UpsertRequest struct {
	CurrentEducationLevel *model.EducationLevel `json:"current_education_level"`
	DegreeMajor           *string               `json:"degree_major" validate:"omitempty,max=200"`
	GraduationYear        *int                  `json:"graduation_year" validate:"omitempty,gte=1950,lte=2100"`
	GPAOrPercentage       *string               `json:"gpa_or_percentage" validate:"omitempty,max=50"`

	IntendedDegree     *model.IntendedDegree `json:"intended_degree"`
	FieldOfStudy       *string               `json:"field_of_study" validate:"omitempty,max=200"`
	TargetIntakeYear   *int                  `json:"target_intake_year" validate:"omitempty,gte=1950,lte=2100"`
	PreferredCountries *string               `json:"preferred_countries" validate:"omitempty,max=500"`

	BudgetRangePerYear *model.BudgetRange `json:"budget_range_per_year"`
	FundingPlan        *model.FundingPlan `json:"funding_plan"`

	IeltsToeflStatus *model.ExamStatus `json:"ielts_toefl_status"`
	IeltsToeflScore  *string           `json:"ielts_toefl_score" validate:"omitempty,max=20"`
	GreGmatStatus    *model.ExamStatus `json:"gre_gmat_status"`
	GreGmatScore     *string           `json:"gre_gmat_score" validate:"omitempty,max=20"`
	SOPStatus        *model.SOPStatus  `json:"sop_status"`
}

// Get handles GET /api/v1/onboarding. Returns null data if never saved.
func (h *OnboardingHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	profile, err := h.gateway.GetProfile(c.Context(), gateway.Identity{UserID: userID})
	if err != nil {
		return response.ServiceUnavailable(c, "Failed to load onboarding profile")
	}

	return response.Success(c, profile)
}

// Upsert handles PUT /api/v1/onboarding. The profile row is created
// implicitly on the first partial save and the user is marked onboarded.
func (h *OnboardingHandler) Upsert(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req UpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	id := gateway.Identity{UserID: user.ID}
	profile, err := h.gateway.GetProfile(c.Context(), id)
	if err != nil {
		return response.ServiceUnavailable(c, "Failed to load onboarding profile")
	}
	if profile == nil {
		profile = &model.Onboarding{
			UserID:           user.ID,
			IeltsToeflStatus: model.ExamNotTaken,
			GreGmatStatus:    model.ExamNotTaken,
			SOPStatus:        model.SOPNotStarted,
		}
	}

	applyRequest(profile, &req)

	// Closed enums are enforced here; invalid values never reach the store
	if err := profile.Validate(); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.gateway.SaveProfile(c.Context(), id, profile); err != nil {
		return response.ServiceUnavailable(c, "Failed to save onboarding profile")
	}

	if !user.IsOnboarded {
		if err := h.db.Model(user).Update("is_onboarded", true).Error; err != nil {
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, profile)
}

func applyRequest(profile *model.Onboarding, req *UpsertRequest) {
	if req.CurrentEducationLevel != nil {
		profile.CurrentEducationLevel = req.CurrentEducationLevel
	}
	if req.DegreeMajor != nil {
		profile.DegreeMajor = req.DegreeMajor
	}
	if req.GraduationYear != nil {
		profile.GraduationYear = req.GraduationYear
	}
	if req.GPAOrPercentage != nil {
		profile.GPAOrPercentage = req.GPAOrPercentage
	}
	if req.IntendedDegree != nil {
		profile.IntendedDegree = req.IntendedDegree
	}
	if req.FieldOfStudy != nil {
		profile.FieldOfStudy = req.FieldOfStudy
	}
	if req.TargetIntakeYear != nil {
		profile.TargetIntakeYear = req.TargetIntakeYear
	}
	if req.PreferredCountries != nil {
		profile.PreferredCountries = req.PreferredCountries
	}
	if req.BudgetRangePerYear != nil {
		profile.BudgetRangePerYear = req.BudgetRangePerYear
	}
	if req.FundingPlan != nil {
		profile.FundingPlan = req.FundingPlan
	}
	if req.IeltsToeflStatus != nil {
		profile.IeltsToeflStatus = *req.IeltsToeflStatus
	}
	if req.IeltsToeflScore != nil {
		profile.IeltsToeflScore = req.IeltsToeflScore
	}
	if req.GreGmatStatus != nil {
		profile.GreGmatStatus = *req.GreGmatStatus
	}
	if req.GreGmatScore != nil {
		profile.GreGmatScore = req.GreGmatScore
	}
	if req.SOPStatus != nil {
		profile.SOPStatus = *req.SOPStatus
	}
}
