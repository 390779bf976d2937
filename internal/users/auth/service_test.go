// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subgquiz/subg-api/internal/platform/sec"
	"github.com/subgquiz/subg-api/internal/subscription"
	"github.com/subgquiz/subg-api/internal/users/auth"
)

// # Test Doubles

type fakeUserRepo struct {
	usersByEmail map[string]*auth.User
	lastLoginIDs []string
}

func (repo *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range repo.usersByEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, errors.New("not found")
}

func (repo *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := repo.usersByEmail[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return user, nil
}

func (repo *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	repo.usersByEmail[user.Email] = user
	return nil
}

func (repo *fakeUserRepo) Update(_ context.Context, _ *auth.User) error { return nil }

func (repo *fakeUserRepo) UpdatePassword(_ context.Context, _, _ string) error { return nil }

func (repo *fakeUserRepo) UpdateSubscription(_ context.Context, _, _, _, _ string) error {
	return nil
}

func (repo *fakeUserRepo) TouchLastLogin(_ context.Context, userID string) error {
	repo.lastLoginIDs = append(repo.lastLoginIDs, userID)
	return nil
}

func (repo *fakeUserRepo) SoftDelete(_ context.Context, _ string) error { return nil }

type fakeSessionRepo struct {
	created []*auth.Session
}

func (repo *fakeSessionRepo) Create(_ context.Context, session *auth.Session) error {
	repo.created = append(repo.created, session)
	return nil
}

func (repo *fakeSessionRepo) FindByTokenHash(_ context.Context, _ string) (*auth.Session, error) {
	return nil, errors.New("not found")
}

func (repo *fakeSessionRepo) Revoke(_ context.Context, _ string) error { return nil }

func (repo *fakeSessionRepo) RevokeAll(_ context.Context, _ string) error { return nil }

func (repo *fakeSessionRepo) DeleteExpired(_ context.Context) error { return nil }

// fakeProfileWriter records slot writes and can be flipped to fail them all.
type fakeProfileWriter struct {
	saved   map[string]subscription.Profile
	failing bool
}

func (writer *fakeProfileWriter) Save(_ context.Context, studentID string, profile subscription.Profile, _ time.Duration) error {
	if writer.failing {
		return errors.New("redis unreachable")
	}
	if writer.saved == nil {
		writer.saved = map[string]subscription.Profile{}
	}
	writer.saved[studentID] = profile
	return nil
}

func (writer *fakeProfileWriter) Delete(_ context.Context, _ string) error { return nil }

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(_ string, _ sec.Role, _ bool, _ time.Duration) (string, error) {
	return "signed-access-token", nil
}

// # Fixtures

func newLoginFixture(t *testing.T, writer *fakeProfileWriter) (*auth.Service, *fakeSessionRepo) {
	t.Helper()

	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)

	users := &fakeUserRepo{usersByEmail: map[string]*auth.User{
		"student@subgquiz.com": {
			ID:                 "student-1",
			Email:              "student@subgquiz.com",
			PasswordHash:       hash,
			Role:               sec.RoleStudent,
			IsActive:           true,
			SubscriptionStatus: subscription.StatusActive,
			SubscriptionPlan:   "PREMIUM",
			SubscriptionExpiry: "2026-12-31",
		},
	}}
	sessions := &fakeSessionRepo{}

	return auth.NewService(users, sessions, writer, fakeTokenProvider{}, nil), sessions
}

// # Login

/*
TestLogin_MirrorsSubscriptionProfile verifies that a successful login copies
the account's subscription columns into the profile slot the guards read.
*/
func TestLogin_MirrorsSubscriptionProfile(t *testing.T) {
	writer := &fakeProfileWriter{}
	service, sessions := newLoginFixture(t, writer)

	loginSession, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "student@subgquiz.com",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-access-token", loginSession.AccessToken)
	assert.Len(t, sessions.created, 1)
	assert.Equal(t, subscription.Profile{
		SubscriptionStatus: subscription.StatusActive,
		SubscriptionPlan:   "PREMIUM",
		SubscriptionExpiry: "2026-12-31",
	}, writer.saved["student-1"])
}

/*
TestLogin_ProfileMirrorFailureIsNotFatal verifies that an unreachable profile
slot does not break login. The entitlement layer degrades to the free tier
until the next successful mirror; the student still gets their tokens.
*/
func TestLogin_ProfileMirrorFailureIsNotFatal(t *testing.T) {
	writer := &fakeProfileWriter{failing: true}
	service, sessions := newLoginFixture(t, writer)

	loginSession, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "student@subgquiz.com",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-access-token", loginSession.AccessToken)
	assert.NotEmpty(t, loginSession.RefreshToken)
	assert.Len(t, sessions.created, 1)
}

func TestLogin_RejectsWrongPassword(t *testing.T) {
	service, _ := newLoginFixture(t, &fakeProfileWriter{})

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "student@subgquiz.com",
		Password: "wrong horse",
	})

	assert.Error(t, err)
}
