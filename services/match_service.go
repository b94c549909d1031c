package services

import (
	"context"
	"errors"
	"time"

	"rendezvous_server/metrics"
	"rendezvous_server/models"

	"github.com/charmbracelet/log"
)

// maxTransitionAttempts bounds the re-read/re-apply loop of a pair transition.
const maxTransitionAttempts = 5

// MatchService owns the like/unlike/match transitions between parties.
type MatchService struct {
	Store    PartyStore
	Profiles *ProfileService
	Notifier *NotificationService
	Metrics  metrics.Metrics
}

type LikeResult struct {
	Matched bool `json:"isMatch"`
}

type UnlikeResult struct {
	MatchRemoved bool `json:"matchRemoved"`
}

// backoff waits a little longer after each stale attempt.
func backoff(ctx context.Context, attempt int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(attempt) * 5 * time.Millisecond):
		return nil
	}
}

func inconsistent(op, actorID, targetID string) *Error {
	return newError(KindInternalInconsistency, "%s %s -> %s did not converge after %d attempts", op, actorID, targetID, maxTransitionAttempts)
}

// Like records that actor likes target. When target already liked actor the
// pair becomes a match and both sides are notified; otherwise target receives
// a like notification.
func (s *MatchService) Like(ctx context.Context, actorID, targetID string) (*LikeResult, error) {
	if err := validatePair(actorID, targetID); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxTransitionAttempts; attempt++ {
		actor, err := s.Profiles.Party(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if _, err := s.Profiles.CheckActive(ctx, targetID); err != nil {
			return nil, err
		}
		if actor.HasLiked(targetID) {
			return nil, newError(KindInvalidState, "you already liked %s", targetID)
		}

		mutual := actor.IsLikedBy(targetID)
		err = s.Store.ApplyLike(ctx, actorID, targetID, mutual)
		if errors.Is(err, ErrStaleState) {
			s.Metrics.IncTransitionRetries()
			log.Debug("Like snapshot went stale, retrying", "actor", actorID, "target", targetID, "attempt", attempt)
			if err := backoff(ctx, attempt); err != nil {
				return nil, internalError(err, "like %s -> %s interrupted", actorID, targetID)
			}
			continue
		}
		if err != nil {
			return nil, internalError(err, "failed to apply like %s -> %s", actorID, targetID)
		}

		s.Metrics.IncLikes()
		if !mutual {
			log.Info("Party liked", "actor", actorID, "target", targetID)
			if _, err := s.Notifier.Notify(ctx, actorID, targetID, models.NotificationKindLike); err != nil {
				return nil, err
			}
			return &LikeResult{Matched: false}, nil
		}

		s.Metrics.IncMatches()
		log.Info("Parties matched", "actor", actorID, "target", targetID)
		if _, err := s.Notifier.Notify(ctx, targetID, actorID, models.NotificationKindMatch); err != nil {
			return nil, err
		}
		if _, err := s.Notifier.Notify(ctx, actorID, targetID, models.NotificationKindMatch); err != nil {
			return nil, err
		}
		return &LikeResult{Matched: true}, nil
	}

	return nil, inconsistent("like", actorID, targetID)
}

// Unlike withdraws actor's like of target, removing the match in both
// directions if there was one. No notification is sent.
func (s *MatchService) Unlike(ctx context.Context, actorID, targetID string) (*UnlikeResult, error) {
	if err := validatePair(actorID, targetID); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxTransitionAttempts; attempt++ {
		actor, err := s.Profiles.Party(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if !actor.HasLiked(targetID) {
			return nil, newError(KindInvalidState, "you have not liked %s", targetID)
		}

		matched := actor.IsMatchedWith(targetID)
		err = s.Store.ApplyUnlike(ctx, actorID, targetID, matched)
		if errors.Is(err, ErrStaleState) {
			s.Metrics.IncTransitionRetries()
			log.Debug("Unlike snapshot went stale, retrying", "actor", actorID, "target", targetID, "attempt", attempt)
			if err := backoff(ctx, attempt); err != nil {
				return nil, internalError(err, "unlike %s -> %s interrupted", actorID, targetID)
			}
			continue
		}
		if err != nil {
			return nil, internalError(err, "failed to apply unlike %s -> %s", actorID, targetID)
		}

		s.Metrics.IncUnlikes()
		if matched {
			s.Metrics.IncMatchesRemoved()
		}
		log.Info("Party unliked", "actor", actorID, "target", targetID, "matchRemoved", matched)
		return &UnlikeResult{MatchRemoved: matched}, nil
	}

	return nil, inconsistent("unlike", actorID, targetID)
}

// ListLikedMe returns the active parties who liked self.
func (s *MatchService) ListLikedMe(ctx context.Context, selfID string) ([]models.PartyInfo, error) {
	self, err := s.Profiles.Party(ctx, selfID)
	if err != nil {
		return nil, err
	}
	return s.Profiles.ActiveInfos(ctx, self.LikedBy)
}

// ListMatches returns the active parties matched with self.
func (s *MatchService) ListMatches(ctx context.Context, selfID string) ([]models.PartyInfo, error) {
	self, err := s.Profiles.Party(ctx, selfID)
	if err != nil {
		return nil, err
	}
	return s.Profiles.ActiveInfos(ctx, self.Matches)
}
