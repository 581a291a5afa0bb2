package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// EducationLevel is the user's current education level
type EducationLevel string

const (
	EducationHighSchool EducationLevel = "High School"
	EducationBachelors  EducationLevel = "Bachelor's"
	EducationMasters    EducationLevel = "Master's"
	EducationOther      EducationLevel = "Other"
)

// IntendedDegree is the degree the user wants to pursue abroad
type IntendedDegree string

const (
	DegreeBachelors IntendedDegree = "Bachelor's"
	DegreeMasters   IntendedDegree = "Master's"
	DegreeMBA       IntendedDegree = "MBA"
	DegreePhD       IntendedDegree = "PhD"
)

// BudgetRange is the yearly budget band
type BudgetRange string

const (
	BudgetUnder10k BudgetRange = "Under $10,000"
	Budget10to30k  BudgetRange = "$10,000 - $30,000"
	Budget30to60k  BudgetRange = "$30,000 - $60,000"
	BudgetOver60k  BudgetRange = "$60,000+"
)

// FundingPlan describes how the user plans to pay
type FundingPlan string

const (
	FundingSelf        FundingPlan = "Self-funded"
	FundingScholarship FundingPlan = "Scholarship-dependent"
	FundingLoan        FundingPlan = "Loan-dependent"
)

// ExamStatus tracks a standardized exam (IELTS/TOEFL or GRE/GMAT)
type ExamStatus string

const (
	ExamNotTaken  ExamStatus = "not_taken"
	ExamTaken     ExamStatus = "taken"
	ExamScheduled ExamStatus = "scheduled"
)

// SOPStatus tracks the Statement of Purpose
type SOPStatus string

const (
	SOPNotStarted SOPStatus = "Not started"
	SOPDraft      SOPStatus = "Draft"
	SOPReady      SOPStatus = "Ready"
)

// Onboarding is the onboarding profile for a user. One row per user,
// created implicitly on the first partial save and never deleted.
// Covers: Academic Background, Study Goal, Budget, Exams & Readiness.
type Onboarding struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	// A. Academic Background
	CurrentEducationLevel *EducationLevel `gorm:"type:varchar(100)" json:"current_education_level"`
	DegreeMajor           *string         `gorm:"type:varchar(200)" json:"degree_major"`
	GraduationYear        *int            `json:"graduation_year"`
	GPAOrPercentage       *string         `gorm:"type:varchar(50)" json:"gpa_or_percentage"`

	// B. Study Goal
	IntendedDegree     *IntendedDegree `gorm:"type:varchar(50)" json:"intended_degree"`
	FieldOfStudy       *string         `gorm:"type:varchar(200)" json:"field_of_study"`
	TargetIntakeYear   *int            `json:"target_intake_year"`
	PreferredCountries *string         `gorm:"type:text" json:"preferred_countries"` // comma-separated

	// C. Budget
	BudgetRangePerYear *BudgetRange `gorm:"type:varchar(100)" json:"budget_range_per_year"`
	FundingPlan        *FundingPlan `gorm:"type:varchar(50)" json:"funding_plan"`

	// D. Exams & Readiness
	// A score is meaningful only while its paired status is "taken";
	// BeforeSave clears it otherwise.
	IeltsToeflStatus ExamStatus `gorm:"type:varchar(50);default:'not_taken'" json:"ielts_toefl_status"`
	IeltsToeflScore  *string    `gorm:"type:varchar(20)" json:"ielts_toefl_score"`
	GreGmatStatus    ExamStatus `gorm:"type:varchar(50);default:'not_taken'" json:"gre_gmat_status"`
	GreGmatScore     *string    `gorm:"type:varchar(20)" json:"gre_gmat_score"`
	SOPStatus        SOPStatus  `gorm:"type:varchar(50);default:'Not started'" json:"sop_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Onboarding
func (Onboarding) TableName() string {
	return "user_onboarding"
}

// Normalize enforces the score/status pairing: a score survives a write
// only while its paired status is "taken".
func (o *Onboarding) Normalize() {
	if o.IeltsToeflStatus != ExamTaken {
		o.IeltsToeflScore = nil
	}
	if o.GreGmatStatus != ExamTaken {
		o.GreGmatScore = nil
	}
}

// BeforeSave normalizes the row so the invariant holds on every persisted write
func (o *Onboarding) BeforeSave(tx *gorm.DB) error {
	o.Normalize()
	return nil
}

const (
	// GraduationYearMin and friends bound the accepted year fields.
	GraduationYearMin = 1950
	GraduationYearMax = 2100
)

// Validate rejects values outside the closed enum sets and year bands.
// Free strings are not accepted where an enum is expected.
func (o *Onboarding) Validate() error {
	if o.CurrentEducationLevel != nil {
		switch *o.CurrentEducationLevel {
		case EducationHighSchool, EducationBachelors, EducationMasters, EducationOther:
		default:
			return fmt.Errorf("invalid current_education_level %q", *o.CurrentEducationLevel)
		}
	}
	if o.IntendedDegree != nil {
		switch *o.IntendedDegree {
		case DegreeBachelors, DegreeMasters, DegreeMBA, DegreePhD:
		default:
			return fmt.Errorf("invalid intended_degree %q", *o.IntendedDegree)
		}
	}
	if o.BudgetRangePerYear != nil {
		switch *o.BudgetRangePerYear {
		case BudgetUnder10k, Budget10to30k, Budget30to60k, BudgetOver60k:
		default:
			return fmt.Errorf("invalid budget_range_per_year %q", *o.BudgetRangePerYear)
		}
	}
	if o.FundingPlan != nil {
		switch *o.FundingPlan {
		case FundingSelf, FundingScholarship, FundingLoan:
		default:
			return fmt.Errorf("invalid funding_plan %q", *o.FundingPlan)
		}
	}
	if err := validateExamStatus("ielts_toefl_status", o.IeltsToeflStatus); err != nil {
		return err
	}
	if err := validateExamStatus("gre_gmat_status", o.GreGmatStatus); err != nil {
		return err
	}
	switch o.SOPStatus {
	case SOPNotStarted, SOPDraft, SOPReady:
	default:
		return fmt.Errorf("invalid sop_status %q", o.SOPStatus)
	}
	if o.GraduationYear != nil && (*o.GraduationYear < GraduationYearMin || *o.GraduationYear > GraduationYearMax) {
		return fmt.Errorf("graduation_year %d out of range", *o.GraduationYear)
	}
	if o.TargetIntakeYear != nil && (*o.TargetIntakeYear < GraduationYearMin || *o.TargetIntakeYear > GraduationYearMax) {
		return fmt.Errorf("target_intake_year %d out of range", *o.TargetIntakeYear)
	}
	return nil
}

func validateExamStatus(field string, s ExamStatus) error {
	switch s {
	case ExamNotTaken, ExamTaken, ExamScheduled:
		return nil
	default:
		return fmt.Errorf("invalid %s %q", field, s)
	}
}
