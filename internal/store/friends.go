package store

import (
	"context"

	"squad/internal/models"
)

// SendFriendRequest creates a pending request from fromID to toID. If any
// request already exists for the unordered pair, in either direction and in
// any status, the existing record is returned with a conflict error —
// rejected requests are terminal and keep blocking re-requests.
func (s *Store) SendFriendRequest(ctx context.Context, fromID, toID string) (models.FriendRequest, error) {
	if fromID == "" {
		return models.FriendRequest{}, models.NewUnauthenticatedError("sendFriendRequest")
	}
	if fromID == toID {
		return models.FriendRequest{}, models.NewValidationError("Cannot send friend request to yourself")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userIndex(toID) < 0 {
		return models.FriendRequest{}, models.NewNotFoundError("user", toID)
	}

	for _, r := range s.state.FriendRequests {
		if r.Involves(fromID, toID) {
			return r, models.NewConflictError("A friend request already exists between these users")
		}
	}

	request := models.FriendRequest{
		ID:         s.newID(),
		FromUserID: fromID,
		ToUserID:   toID,
		Status:     models.FriendRequestPending,
		CreatedAt:  s.now(),
	}
	s.state.FriendRequests = append(s.state.FriendRequests, request)

	s.persist(ctx, "send_friend_request")
	s.recordFriendRequest(ctx, request)
	return request, nil
}

// GetFriendRequest returns the request with the given id.
func (s *Store) GetFriendRequest(id string) (models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.state.FriendRequests {
		if r.ID == id {
			return r, nil
		}
	}
	return models.FriendRequest{}, models.NewNotFoundError("friend request", id)
}

// SetFriendRequestStatus transitions a pending request to accepted or
// rejected. Only the addressee may decide, and both outcomes are terminal.
// There is no side effect on any reciprocal record.
func (s *Store) SetFriendRequestStatus(ctx context.Context, actorID, requestID string, status models.FriendRequestStatus) (models.FriendRequest, error) {
	if actorID == "" {
		return models.FriendRequest{}, models.NewUnauthenticatedError("setFriendRequestStatus")
	}
	if status != models.FriendRequestAccepted && status != models.FriendRequestRejected {
		return models.FriendRequest{}, models.NewValidationError("Status must be accepted or rejected")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.FriendRequests {
		r := &s.state.FriendRequests[i]
		if r.ID != requestID {
			continue
		}
		if r.ToUserID != actorID {
			return models.FriendRequest{}, models.NewUnauthorizedError("You can only decide friend requests sent to you")
		}
		if r.Status != models.FriendRequestPending {
			return models.FriendRequest{}, models.NewConflictError("Friend request is not pending")
		}
		r.Status = status

		request := *r
		s.persist(ctx, "set_friend_request_status")
		s.recordFriendRequest(ctx, request)
		return request, nil
	}
	return models.FriendRequest{}, models.NewNotFoundError("friend request", requestID)
}
