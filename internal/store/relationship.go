package store

import (
	"squad/internal/models"
)

// FriendStatusBetween classifies the relationship from the viewer's side:
// none when no record exists, friend when accepted, pending when the viewer
// sent a still-undecided request, follower when the subject did. A rejected
// record resolves to none but stays in the collection.
func (s *Store) FriendStatusBetween(viewerID, subjectID string) models.FriendStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return friendStatusLocked(s.state.FriendRequests, viewerID, subjectID)
}

func friendStatusLocked(requests []models.FriendRequest, viewerID, subjectID string) models.FriendStatus {
	if viewerID == "" || subjectID == "" {
		return models.FriendStatusNone
	}
	for _, r := range requests {
		if !r.Involves(viewerID, subjectID) {
			continue
		}
		switch r.Status {
		case models.FriendRequestAccepted:
			return models.FriendStatusFriend
		case models.FriendRequestPending:
			if r.FromUserID == viewerID {
				return models.FriendStatusPending
			}
			return models.FriendStatusFollower
		default:
			return models.FriendStatusNone
		}
	}
	return models.FriendStatusNone
}

// Friends returns the users connected to userID through accepted requests.
func (s *Store) Friends(userID string) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.friendsLocked(userID)
}

func (s *Store) friendsLocked(userID string) []models.User {
	var out []models.User
	for _, r := range s.state.FriendRequests {
		if r.Status != models.FriendRequestAccepted {
			continue
		}
		if r.FromUserID != userID && r.ToUserID != userID {
			continue
		}
		if i := s.userIndex(r.OtherParty(userID)); i >= 0 {
			out = append(out, cloneUser(s.state.Users[i]))
		}
	}
	return out
}

// Followers returns users with a pending request targeting userID.
func (s *Store) Followers(userID string) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.User
	for _, r := range s.state.FriendRequests {
		if r.Status != models.FriendRequestPending || r.ToUserID != userID {
			continue
		}
		if i := s.userIndex(r.FromUserID); i >= 0 {
			out = append(out, cloneUser(s.state.Users[i]))
		}
	}
	return out
}

// friendIDSetLocked returns the set of userID's friends' ids.
// Callers must hold the lock.
func (s *Store) friendIDSetLocked(userID string) map[string]bool {
	set := make(map[string]bool)
	for _, r := range s.state.FriendRequests {
		if r.Status != models.FriendRequestAccepted {
			continue
		}
		if r.FromUserID == userID {
			set[r.ToUserID] = true
		} else if r.ToUserID == userID {
			set[r.FromUserID] = true
		}
	}
	return set
}
