package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestNormalizeClearsScoresUnlessTaken(t *testing.T) {
	tests := []struct {
		name       string
		status     ExamStatus
		wantScore  bool
	}{
		{"taken keeps score", ExamTaken, true},
		{"not_taken clears score", ExamNotTaken, false},
		{"scheduled clears score", ExamScheduled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Onboarding{
				IeltsToeflStatus: tt.status,
				IeltsToeflScore:  strPtr("7.5"),
				GreGmatStatus:    tt.status,
				GreGmatScore:     strPtr("320"),
				SOPStatus:        SOPNotStarted,
			}
			o.Normalize()
			if tt.wantScore {
				require.NotNil(t, o.IeltsToeflScore)
				require.NotNil(t, o.GreGmatScore)
				assert.Equal(t, "7.5", *o.IeltsToeflScore)
				assert.Equal(t, "320", *o.GreGmatScore)
			} else {
				assert.Nil(t, o.IeltsToeflScore)
				assert.Nil(t, o.GreGmatScore)
			}
		})
	}
}

func TestValidateRejectsUnknownEnumValues(t *testing.T) {
	base := func() *Onboarding {
		return &Onboarding{
			IeltsToeflStatus: ExamNotTaken,
			GreGmatStatus:    ExamNotTaken,
			SOPStatus:        SOPNotStarted,
		}
	}

	o := base()
	require.NoError(t, o.Validate())

	o = base()
	lvl := EducationLevel("Kindergarten")
	o.CurrentEducationLevel = &lvl
	assert.Error(t, o.Validate())

	o = base()
	deg := IntendedDegree("Diploma")
	o.IntendedDegree = &deg
	assert.Error(t, o.Validate())

	o = base()
	o.IeltsToeflStatus = ExamStatus("maybe")
	assert.Error(t, o.Validate())

	o = base()
	o.SOPStatus = SOPStatus("Done")
	assert.Error(t, o.Validate())

	o = base()
	budget := BudgetRange("free")
	o.BudgetRangePerYear = &budget
	assert.Error(t, o.Validate())
}

func TestValidateYearBands(t *testing.T) {
	o := &Onboarding{
		IeltsToeflStatus: ExamNotTaken,
		GreGmatStatus:    ExamNotTaken,
		SOPStatus:        SOPNotStarted,
		GraduationYear:   intPtr(2024),
		TargetIntakeYear: intPtr(2027),
	}
	require.NoError(t, o.Validate())

	o.GraduationYear = intPtr(1800)
	assert.Error(t, o.Validate())

	o.GraduationYear = intPtr(2024)
	o.TargetIntakeYear = intPtr(3000)
	assert.Error(t, o.Validate())
}
