package store

import (
	"context"
	"strings"

	"squad/internal/models"
)

// GetUser returns the user with the given id.
func (s *Store) GetUser(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.userIndex(id)
	if i < 0 {
		return models.User{}, models.NewNotFoundError("user", id)
	}
	return cloneUser(s.state.Users[i]), nil
}

// ListUsers returns all users.
func (s *Store) ListUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.state.Users))
	for i, u := range s.state.Users {
		out[i] = cloneUser(u)
	}
	return out
}

// SearchUsers returns users whose username, display name, or any interest
// contains the query, case-insensitively.
func (s *Store) SearchUsers(query string) []models.User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.User
	for _, u := range s.state.Users {
		if userMatches(u, q) {
			out = append(out, cloneUser(u))
		}
	}
	return out
}

func userMatches(u models.User, q string) bool {
	if strings.Contains(strings.ToLower(u.Username), q) {
		return true
	}
	if strings.Contains(strings.ToLower(u.DisplayName), q) {
		return true
	}
	for _, interest := range u.Interests {
		if strings.Contains(strings.ToLower(interest), q) {
			return true
		}
	}
	return false
}

// UpdateUser merges the non-nil fields of upd into the matching record.
func (s *Store) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndex(id)
	if i < 0 {
		return models.User{}, models.NewNotFoundError("user", id)
	}

	u := &s.state.Users[i]
	if upd.Username != nil {
		for j := range s.state.Users {
			if j != i && strings.EqualFold(s.state.Users[j].Username, *upd.Username) {
				return models.User{}, models.NewDuplicateIdentityError("username", *upd.Username)
			}
		}
		u.Username = *upd.Username
	}
	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.ProfileColor != nil {
		u.ProfileColor = *upd.ProfileColor
	}
	if upd.Interests != nil {
		u.Interests = append([]string(nil), (*upd.Interests)...)
	}
	if upd.NowStatus != nil {
		if !models.ValidNowStatusType(upd.NowStatus.Type) {
			return models.User{}, models.NewValidationError("Invalid now status type")
		}
		ns := *upd.NowStatus
		u.NowStatus = &ns
	}
	u.UpdatedAt = s.now()

	user := cloneUser(*u)
	s.persist(ctx, "update_user")
	s.recordUser(ctx, user)
	return user, nil
}

// SetNowStatus sets the user's now status.
func (s *Store) SetNowStatus(ctx context.Context, userID string, status models.NowStatus) (models.User, error) {
	if !models.ValidNowStatusType(status.Type) {
		return models.User{}, models.NewValidationError("Invalid now status type")
	}
	return s.UpdateUser(ctx, userID, models.UserUpdate{NowStatus: &status})
}

// ClearNowStatus removes the user's now status.
func (s *Store) ClearNowStatus(ctx context.Context, userID string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndex(userID)
	if i < 0 {
		return models.User{}, models.NewNotFoundError("user", userID)
	}
	s.state.Users[i].NowStatus = nil
	s.state.Users[i].UpdatedAt = s.now()

	user := cloneUser(s.state.Users[i])
	s.persist(ctx, "clear_now_status")
	s.recordUser(ctx, user)
	return user, nil
}
