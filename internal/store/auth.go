package store

import (
	"context"
	"strings"

	"squad/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Authenticate looks up a user by email and makes it the session user.
// Credential verification is delegated to the external identity provider;
// the password parameter is accepted for interface compatibility and never
// checked locally.
func (s *Store) Authenticate(ctx context.Context, email, _ string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Users {
		if strings.EqualFold(s.state.Users[i].Email, email) {
			s.state.Users[i].IsOnline = true
			s.state.CurrentUserID = s.state.Users[i].ID
			user := cloneUser(s.state.Users[i])
			s.persist(ctx, "authenticate")
			s.recordUser(ctx, user)
			return user, nil
		}
	}
	return models.User{}, models.NewNotFoundError("user", email)
}

// Register creates a new user and makes it the session user. Email and
// username uniqueness are re-validated here so no partial state can be
// created by a caller that skipped its own check.
func (s *Store) Register(ctx context.Context, email, password, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Users {
		if strings.EqualFold(s.state.Users[i].Email, email) {
			return models.User{}, models.NewDuplicateIdentityError("email", email)
		}
		if strings.EqualFold(s.state.Users[i].Username, username) {
			return models.User{}, models.NewDuplicateIdentityError("username", username)
		}
	}

	// Hashed for the relational mirror's benefit; never verified locally.
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, models.NewInternalError(err)
	}

	user := models.User{
		ID:           s.newID(),
		Email:        email,
		Username:     username,
		DisplayName:  username,
		Password:     string(hashed),
		ProfileColor: models.DefaultProfileColor,
		Interests:    []string{},
		IsOnline:     true,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}
	s.state.Users = append(s.state.Users, user)
	s.state.CurrentUserID = user.ID

	s.persist(ctx, "register")
	s.recordUser(ctx, user)
	return cloneUser(user), nil
}

// Logout clears the session user pointer. All other collections persist
// across logout.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentUserID == "" {
		return
	}
	s.state.CurrentUserID = ""
	s.persist(ctx, "logout")
}

// CurrentUser dereferences the session pointer into the users collection.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.CurrentUserID == "" {
		return models.User{}, false
	}
	i := s.userIndex(s.state.CurrentUserID)
	if i < 0 {
		return models.User{}, false
	}
	return cloneUser(s.state.Users[i]), true
}

// ReconcileIdentity matches an externally authenticated identity against
// the users collection by id, creating a local record when none exists.
// The created record gets the default display name and a username derived
// from the email local-part.
func (s *Store) ReconcileIdentity(ctx context.Context, id, email string, metadata map[string]string) (models.User, error) {
	if id == "" {
		return models.User{}, models.NewValidationError("Provider identity id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.userIndex(id); i >= 0 {
		s.state.Users[i].IsOnline = true
		s.state.CurrentUserID = id
		user := cloneUser(s.state.Users[i])
		s.persist(ctx, "reconcile_identity")
		s.recordUser(ctx, user)
		return user, nil
	}

	username := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		username = email[:at]
	}
	displayName := metadata["full_name"]
	if displayName == "" {
		displayName = models.DefaultDisplayName
	}

	user := models.User{
		ID:           id,
		Email:        email,
		Username:     username,
		DisplayName:  displayName,
		Avatar:       metadata["avatar_url"],
		ProfileColor: models.DefaultProfileColor,
		Interests:    []string{},
		IsOnline:     true,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}
	s.state.Users = append(s.state.Users, user)
	s.state.CurrentUserID = user.ID

	s.persist(ctx, "reconcile_identity")
	s.recordUser(ctx, user)
	return cloneUser(user), nil
}
