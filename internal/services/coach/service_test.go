package coach

import (
	"context"
	"testing"

	apperr "fluidit/internal/errors"
	"fluidit/internal/models"
	"fluidit/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCoachRepo struct {
	mock.Mock
}

func (m *mockCoachRepo) CreateProfile(profile *models.CoachProfile) error {
	return m.Called(profile).Error(0)
}

func (m *mockCoachRepo) GetProfileByUserID(userID uint) (*models.CoachProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CoachProfile), args.Error(1)
}

func (m *mockCoachRepo) UpdateProfile(profile *models.CoachProfile) error {
	return m.Called(profile).Error(0)
}

func (m *mockCoachRepo) ListApproved(limit, offset int) ([]models.CoachProfile, int64, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]models.CoachProfile), args.Get(1).(int64), args.Error(2)
}

type mockUserRepo struct {
	mock.Mock
	repositories.UserRepository
}

func (m *mockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Update(user *models.User) error { return m.Called(user).Error(0) }

func TestService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("first application goes to pending", func(t *testing.T) {
		coaches := new(mockCoachRepo)
		svc := NewService(coaches, new(mockUserRepo))
		coaches.On("GetProfileByUserID", uint(1)).Return(nil, apperr.ErrNotFound)
		coaches.On("CreateProfile", mock.MatchedBy(func(p *models.CoachProfile) bool {
			return p.Status == models.CoachStatusPending && p.Specialty == "savings"
		})).Return(nil)

		profile, err := svc.Apply(ctx, 1, "I coach drivers on money", "savings")

		require.NoError(t, err)
		assert.Equal(t, models.CoachStatusPending, profile.Status)
	})

	t.Run("duplicate application conflicts", func(t *testing.T) {
		coaches := new(mockCoachRepo)
		svc := NewService(coaches, new(mockUserRepo))
		coaches.On("GetProfileByUserID", uint(1)).
			Return(&models.CoachProfile{UserID: 1, Status: models.CoachStatusPending}, nil)

		_, err := svc.Apply(ctx, 1, "bio", "specialty")

		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("rejected applicant may re-apply", func(t *testing.T) {
		coaches := new(mockCoachRepo)
		svc := NewService(coaches, new(mockUserRepo))
		coaches.On("GetProfileByUserID", uint(1)).
			Return(&models.CoachProfile{UserID: 1, Status: models.CoachStatusRejected}, nil)
		coaches.On("UpdateProfile", mock.MatchedBy(func(p *models.CoachProfile) bool {
			return p.Status == models.CoachStatusPending && p.Bio == "better bio"
		})).Return(nil)

		profile, err := svc.Apply(ctx, 1, "better bio", "budgeting")

		require.NoError(t, err)
		assert.Equal(t, models.CoachStatusPending, profile.Status)
	})

	t.Run("blank fields are rejected", func(t *testing.T) {
		svc := NewService(new(mockCoachRepo), new(mockUserRepo))
		_, err := svc.Apply(ctx, 1, "  ", "specialty")
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestService_Review(t *testing.T) {
	ctx := context.Background()

	t.Run("approval promotes the user to coach", func(t *testing.T) {
		coaches := new(mockCoachRepo)
		users := new(mockUserRepo)
		svc := NewService(coaches, users)
		coaches.On("GetProfileByUserID", uint(1)).
			Return(&models.CoachProfile{UserID: 1, Status: models.CoachStatusPending}, nil)
		coaches.On("UpdateProfile", mock.Anything).Return(nil)
		users.On("GetByID", uint(1)).Return(&models.User{Role: models.RoleUser}, nil)
		users.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleCoach
		})).Return(nil)

		profile, err := svc.Review(ctx, 1, true)

		require.NoError(t, err)
		assert.Equal(t, models.CoachStatusApproved, profile.Status)
		users.AssertExpectations(t)
	})

	t.Run("rejection leaves the role alone", func(t *testing.T) {
		coaches := new(mockCoachRepo)
		users := new(mockUserRepo)
		svc := NewService(coaches, users)
		coaches.On("GetProfileByUserID", uint(1)).
			Return(&models.CoachProfile{UserID: 1, Status: models.CoachStatusPending}, nil)
		coaches.On("UpdateProfile", mock.Anything).Return(nil)

		profile, err := svc.Review(ctx, 1, false)

		require.NoError(t, err)
		assert.Equal(t, models.CoachStatusRejected, profile.Status)
		users.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("reviewing twice conflicts", func(t *testing.T) {
		coaches := new(mockCoachRepo)
		svc := NewService(coaches, new(mockUserRepo))
		coaches.On("GetProfileByUserID", uint(1)).
			Return(&models.CoachProfile{UserID: 1, Status: models.CoachStatusApproved}, nil)

		_, err := svc.Review(ctx, 1, true)

		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestService_ListApproved(t *testing.T) {
	coaches := new(mockCoachRepo)
	users := new(mockUserRepo)
	svc := NewService(coaches, users)

	coaches.On("ListApproved", 10, 0).Return([]models.CoachProfile{
		{UserID: 1, Bio: "bio one", Specialty: "savings", Status: models.CoachStatusApproved},
		{UserID: 2, Bio: "bio two", Specialty: "debt", Status: models.CoachStatusApproved},
	}, int64(2), nil)
	users.On("GetByID", uint(1)).Return(&models.User{Name: "Ade"}, nil)
	users.On("GetByID", uint(2)).Return(&models.User{Name: "Bisi"}, nil)

	entries, total, err := svc.ListApproved(context.Background(), 10, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ade", entries[0].Name)
	assert.Equal(t, "debt", entries[1].Specialty)
}
