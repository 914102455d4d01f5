package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/apperrors"
	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	repo *UserRepository
	ctx  context.Context
	now  time.Time
}

func (s *UserRepositoryTestSuite) SetupTest() {
	s.repo = NewUserRepository()
	s.ctx = context.Background()
	s.now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func (s *UserRepositoryTestSuite) seed(userName, email string) domain.User {
	u := domain.User{
		UserID:       uuid.NewString(),
		UserName:     userName,
		Email:        email,
		FullName:     "Test " + userName,
		PasswordHash: "hash",
		Avatar:       "https://cdn.example.com/a.png",
		CreatedAt:    s.now,
		UpdatedAt:    s.now,
	}
	s.Require().NoError(s.repo.SaveUser(s.ctx, u))
	return u
}

func (s *UserRepositoryTestSuite) TestSaveAndFind() {
	u := s.seed("alice", "a@x.com")

	byID, err := s.repo.FindUserByID(s.ctx, u.UserID)
	s.Require().NoError(err)
	s.Equal(u, *byID)

	byName, err := s.repo.FindUserByUsernameOrEmail(s.ctx, "ALICE", "")
	s.Require().NoError(err)
	s.Equal(u.UserID, byName.UserID)

	byEmail, err := s.repo.FindUserByUsernameOrEmail(s.ctx, "", "A@X.COM")
	s.Require().NoError(err)
	s.Equal(u.UserID, byEmail.UserID)
}

func (s *UserRepositoryTestSuite) TestFind_NotFound() {
	_, err := s.repo.FindUserByID(s.ctx, uuid.NewString())
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.repo.FindUserByUsernameOrEmail(s.ctx, "nobody", "nobody@x.com")
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.repo.FindUserByUsernameOrEmail(s.ctx, "", "")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *UserRepositoryTestSuite) TestSave_DuplicateIsCaseInsensitive() {
	s.seed("alice", "a@x.com")

	err := s.repo.SaveUser(s.ctx, domain.User{UserID: uuid.NewString(), UserName: "bob", Email: "A@X.com"})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	err = s.repo.SaveUser(s.ctx, domain.User{UserID: uuid.NewString(), UserName: "Alice", Email: "other@x.com"})
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserRepositoryTestSuite) TestReturnedUserIsACopy() {
	u := s.seed("alice", "a@x.com")
	s.Require().NoError(s.repo.SetRefreshToken(s.ctx, u.UserID, "digest", s.now.Add(time.Hour)))

	got, err := s.repo.FindUserByID(s.ctx, u.UserID)
	s.Require().NoError(err)
	got.FullName = "mutated"
	*got.RefreshTokenExpiresAt = time.Time{}

	again, err := s.repo.FindUserByID(s.ctx, u.UserID)
	s.Require().NoError(err)
	s.Equal(u.FullName, again.FullName)
	s.Equal(s.now.Add(time.Hour), *again.RefreshTokenExpiresAt)
}

func (s *UserRepositoryTestSuite) TestRefreshTokenLifecycle() {
	u := s.seed("alice", "a@x.com")
	exp := s.now.Add(time.Hour)

	s.Require().NoError(s.repo.SetRefreshToken(s.ctx, u.UserID, "one", exp))
	s.Require().NoError(s.repo.RotateRefreshToken(s.ctx, u.UserID, "one", "two", exp))
	s.ErrorIs(s.repo.RotateRefreshToken(s.ctx, u.UserID, "one", "three", exp), apperrors.ErrStaleWrite)

	got, err := s.repo.FindUserByID(s.ctx, u.UserID)
	s.Require().NoError(err)
	s.Equal("two", got.RefreshTokenHash)

	s.Require().NoError(s.repo.ClearRefreshToken(s.ctx, u.UserID))
	s.Require().NoError(s.repo.ClearRefreshToken(s.ctx, u.UserID), "clearing twice is fine")
	s.ErrorIs(s.repo.RotateRefreshToken(s.ctx, u.UserID, "", "x", exp), apperrors.ErrStaleWrite)
	s.ErrorIs(s.repo.ClearRefreshToken(s.ctx, uuid.NewString()), apperrors.ErrNotFound)
	s.ErrorIs(s.repo.RotateRefreshToken(s.ctx, uuid.NewString(), "two", "x", exp), apperrors.ErrStaleWrite)
}

func (s *UserRepositoryTestSuite) TestRotate_OnlyOneConcurrentWinner() {
	u := s.seed("alice", "a@x.com")
	exp := s.now.Add(time.Hour)
	s.Require().NoError(s.repo.SetRefreshToken(s.ctx, u.UserID, "start", exp))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.repo.RotateRefreshToken(s.ctx, u.UserID, "start", uuid.NewString(), exp); err == nil {
				atomic.AddInt32(&wins, 1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), wins)
}

func (s *UserRepositoryTestSuite) TestUpdatePassword() {
	u := s.seed("alice", "a@x.com")
	s.Require().NoError(s.repo.SetRefreshToken(s.ctx, u.UserID, "digest", s.now.Add(time.Hour)))

	s.Require().NoError(s.repo.UpdatePassword(s.ctx, u.UserID, "new-hash", false, s.now.Add(time.Minute)))
	got, _ := s.repo.FindUserByID(s.ctx, u.UserID)
	s.Equal("new-hash", got.PasswordHash)
	s.Equal("digest", got.RefreshTokenHash)

	s.Require().NoError(s.repo.UpdatePassword(s.ctx, u.UserID, "newer-hash", true, s.now.Add(2*time.Minute)))
	got, _ = s.repo.FindUserByID(s.ctx, u.UserID)
	s.Equal("newer-hash", got.PasswordHash)
	s.Empty(got.RefreshTokenHash)
	s.Nil(got.RefreshTokenExpiresAt)
	s.Equal(s.now.Add(2*time.Minute), got.UpdatedAt)
}

func (s *UserRepositoryTestSuite) TestUpdateAccountDetails() {
	alice := s.seed("alice", "a@x.com")
	s.seed("bob", "b@x.com")

	s.ErrorIs(s.repo.UpdateAccountDetails(s.ctx, alice.UserID, "Alice", "B@x.com", s.now), apperrors.ErrDuplicate)
	s.Require().NoError(s.repo.UpdateAccountDetails(s.ctx, alice.UserID, "Alice Liddell", "a@x.com", s.now))
	s.ErrorIs(s.repo.UpdateAccountDetails(s.ctx, uuid.NewString(), "x", "x@x.com", s.now), apperrors.ErrNotFound)

	got, _ := s.repo.FindUserByID(s.ctx, alice.UserID)
	s.Equal("Alice Liddell", got.FullName)
}

func (s *UserRepositoryTestSuite) TestUpdateImages() {
	u := s.seed("alice", "a@x.com")

	s.Require().NoError(s.repo.UpdateAvatar(s.ctx, u.UserID, "https://cdn/avatar2.png", s.now))
	s.Require().NoError(s.repo.UpdateCoverImage(s.ctx, u.UserID, "https://cdn/cover.png", s.now))

	got, _ := s.repo.FindUserByID(s.ctx, u.UserID)
	s.Equal("https://cdn/avatar2.png", got.Avatar)
	s.Equal("https://cdn/cover.png", got.CoverImage)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
