package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "tutorhub/internal/errors"
	"tutorhub/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestProfileService_Update_Tutor(t *testing.T) {
	tutor := Caller{ID: 2, Role: model.RoleTutor}

	t.Run("applies bio, rate and subject replacement", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		profileRepo := new(MockProfileRepository)
		subjectRepo := new(MockSubjectRepository)

		profile := &model.TutorProfile{ID: 1, UserID: 2, Bio: "old", HourlyRate: 100}
		found := []model.Subject{{ID: 1, Name: "Math"}, {ID: 2, Name: "Physics"}}

		// id 99 does not exist and silently drops out of the set
		subjectRepo.On("FindByIDs", mock.Anything, []uint{1, 2, 99}).Return(found, nil)
		profileRepo.On("WithTransaction", mock.Anything).Return(nil)
		profileRepo.On("FindTutorProfile", mock.Anything, uint(2)).Return(profile, nil)
		profileRepo.On("SaveTutorProfile", mock.Anything, mock.MatchedBy(func(p *model.TutorProfile) bool {
			return p.Bio == "new bio" && p.HourlyRate == 500
		})).Return(nil)
		profileRepo.On("ReplaceSubjects", mock.Anything, profile, found).Return(nil)

		userRepo.On("FindForProfile", mock.Anything, uint(2)).Return(&model.User{
			ID:           2,
			Role:         model.RoleTutor,
			TutorProfile: profile,
		}, nil)

		svc := NewProfileService(userRepo, profileRepo, subjectRepo)
		subjects := []uint{1, 2, 99}
		result, err := svc.Update(context.Background(), tutor, ProfileUpdate{
			Bio:        strPtr("new bio"),
			HourlyRate: intPtr(500),
			Subjects:   &subjects,
		})

		assert.NoError(t, err)
		assert.NotNil(t, result)
		profileRepo.AssertExpectations(t)
		subjectRepo.AssertExpectations(t)
	})

	t.Run("negative hourly rate rejected", func(t *testing.T) {
		svc := NewProfileService(new(MockUserRepository), new(MockProfileRepository), new(MockSubjectRepository))
		_, err := svc.Update(context.Background(), tutor, ProfileUpdate{HourlyRate: intPtr(-1)})

		var ve *apperrors.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "hourly_rate", ve.Field)
	})

	t.Run("grade_level is ignored for tutors", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		profileRepo := new(MockProfileRepository)

		profile := &model.TutorProfile{ID: 1, UserID: 2}
		profileRepo.On("WithTransaction", mock.Anything).Return(nil)
		profileRepo.On("FindTutorProfile", mock.Anything, uint(2)).Return(profile, nil)
		profileRepo.On("SaveTutorProfile", mock.Anything, profile).Return(nil)
		userRepo.On("FindForProfile", mock.Anything, uint(2)).Return(&model.User{ID: 2, Role: model.RoleTutor, TutorProfile: profile}, nil)

		svc := NewProfileService(userRepo, profileRepo, new(MockSubjectRepository))
		_, err := svc.Update(context.Background(), tutor, ProfileUpdate{GradeLevel: strPtr("11")})

		assert.NoError(t, err)
		profileRepo.AssertNotCalled(t, "FindStudentProfile", mock.Anything, mock.Anything)
	})
}

func TestProfileService_Update_Student(t *testing.T) {
	student := Caller{ID: 1, Role: model.RoleStudent}

	t.Run("applies grade level", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		profileRepo := new(MockProfileRepository)

		profile := &model.StudentProfile{ID: 1, UserID: 1, GradeLevel: "10"}
		profileRepo.On("FindStudentProfile", mock.Anything, uint(1)).Return(profile, nil)
		profileRepo.On("SaveStudentProfile", mock.Anything, mock.MatchedBy(func(p *model.StudentProfile) bool {
			return p.GradeLevel == "11"
		})).Return(nil)
		userRepo.On("FindForProfile", mock.Anything, uint(1)).Return(&model.User{
			ID:             1,
			Role:           model.RoleStudent,
			StudentProfile: profile,
		}, nil)

		svc := NewProfileService(userRepo, profileRepo, new(MockSubjectRepository))
		result, err := svc.Update(context.Background(), student, ProfileUpdate{GradeLevel: strPtr("11")})

		assert.NoError(t, err)
		assert.Equal(t, "11", result.StudentProfile.GradeLevel)
		profileRepo.AssertExpectations(t)
	})

	t.Run("tutor fields are ignored for students", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		profileRepo := new(MockProfileRepository)
		userRepo.On("FindForProfile", mock.Anything, uint(1)).Return(&model.User{
			ID:             1,
			Role:           model.RoleStudent,
			StudentProfile: &model.StudentProfile{UserID: 1},
		}, nil)

		svc := NewProfileService(userRepo, profileRepo, new(MockSubjectRepository))
		subjects := []uint{1}
		_, err := svc.Update(context.Background(), student, ProfileUpdate{
			Bio:      strPtr("sneaky bio"),
			Subjects: &subjects,
		})

		assert.NoError(t, err)
		profileRepo.AssertNotCalled(t, "FindTutorProfile", mock.Anything, mock.Anything)
		profileRepo.AssertNotCalled(t, "ReplaceSubjects", mock.Anything, mock.Anything, mock.Anything)
	})
}
