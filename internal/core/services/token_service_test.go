package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/apperrors"
	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
	portssvc "github.com/SscSPs/user_accounts_backend/internal/core/ports/services"
	"github.com/SscSPs/user_accounts_backend/internal/core/services"
	"github.com/SscSPs/user_accounts_backend/internal/platform/config"
	"github.com/stretchr/testify/suite"
)

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "access-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenSecret: "refresh-secret",
		RefreshTokenExpiry: 24 * time.Hour,
		JWTIssuer:          "test-issuer",
	}
}

type TokenServiceTestSuite struct {
	suite.Suite
	now     time.Time
	service portssvc.TokenSvcFacade
	user    *domain.User
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.now = time.Now().Truncate(time.Second)
	suite.service = services.NewTokenService(testConfig(), services.WithTokenClock(func() time.Time { return suite.now }))
	suite.user = &domain.User{UserID: "0b7c1c0e-8d1e-4d53-9a43-4c1a7b1f0a11", UserName: "alice", Email: "a@x.com"}
}

func (suite *TokenServiceTestSuite) TestAccessToken_RoundTrip() {
	ctx := context.Background()

	token, expiresAt, err := suite.service.IssueAccessToken(ctx, suite.user)
	suite.Require().NoError(err)
	suite.Equal(suite.now.Add(15*time.Minute).Unix(), expiresAt.Unix())

	claims, err := suite.service.VerifyAccessToken(ctx, token)
	suite.Require().NoError(err)
	suite.Equal(suite.user.UserID, claims.UserID)
	suite.Equal("alice", claims.UserName)
	suite.Equal("a@x.com", claims.Email)
}

func (suite *TokenServiceTestSuite) TestRefreshToken_RoundTripAndUniqueness() {
	ctx := context.Background()

	first, expiresAt, err := suite.service.IssueRefreshToken(ctx, suite.user)
	suite.Require().NoError(err)
	suite.Equal(suite.now.Add(24*time.Hour).Unix(), expiresAt.Unix())

	second, _, err := suite.service.IssueRefreshToken(ctx, suite.user)
	suite.Require().NoError(err)
	suite.NotEqual(first, second, "tokens issued in the same second must differ")

	claims, err := suite.service.VerifyRefreshToken(ctx, first)
	suite.Require().NoError(err)
	suite.Equal(suite.user.UserID, claims.UserID)
	suite.NotEmpty(claims.TokenID)
}

func (suite *TokenServiceTestSuite) TestSecretsAreNotInterchangeable() {
	ctx := context.Background()

	access, _, err := suite.service.IssueAccessToken(ctx, suite.user)
	suite.Require().NoError(err)
	refresh, _, err := suite.service.IssueRefreshToken(ctx, suite.user)
	suite.Require().NoError(err)

	_, err = suite.service.VerifyRefreshToken(ctx, access)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)

	_, err = suite.service.VerifyAccessToken(ctx, refresh)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

func (suite *TokenServiceTestSuite) TestExpiredTokensAreRejected() {
	ctx := context.Background()

	access, _, err := suite.service.IssueAccessToken(ctx, suite.user)
	suite.Require().NoError(err)
	refresh, _, err := suite.service.IssueRefreshToken(ctx, suite.user)
	suite.Require().NoError(err)

	suite.now = suite.now.Add(16 * time.Minute)
	_, err = suite.service.VerifyAccessToken(ctx, access)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
	_, err = suite.service.VerifyRefreshToken(ctx, refresh)
	suite.NoError(err, "refresh token outlives the access token")

	suite.now = suite.now.Add(24 * time.Hour)
	_, err = suite.service.VerifyRefreshToken(ctx, refresh)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

func (suite *TokenServiceTestSuite) TestForeignIssuerIsRejected() {
	ctx := context.Background()
	cfg := testConfig()
	cfg.JWTIssuer = "someone-else"
	other := services.NewTokenService(cfg)

	token, _, err := other.IssueRefreshToken(ctx, suite.user)
	suite.Require().NoError(err)

	_, err = suite.service.VerifyRefreshToken(ctx, token)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

func (suite *TokenServiceTestSuite) TestGarbageIsRejected() {
	_, err := suite.service.VerifyAccessToken(context.Background(), "not.a.token")
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
	_, err = suite.service.VerifyRefreshToken(context.Background(), "")
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
