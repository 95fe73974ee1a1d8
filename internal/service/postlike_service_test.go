package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"campusanon/internal/model"
)

type likeFixture struct {
	svc           *PostLikeService
	likes         *memLikeStore
	posts         *memPostStore
	users         *memUserStore
	notifications *memNotificationStore
}

func newLikeFixture(t *testing.T) *likeFixture {
	t.Helper()
	f := &likeFixture{
		likes:         newMemLikeStore(),
		posts:         newMemPostStore(),
		users:         newMemUserStore(),
		notifications: &memNotificationStore{},
	}
	f.svc = NewPostLikeService(f.likes, f.posts, f.users, f.notifications, zap.NewNop())
	return f
}

func TestToggleLikeRoundTrip(t *testing.T) {
	f := newLikeFixture(t)
	user := f.users.add(&model.User{EmailHash: "l", Username: "u"})
	post := f.posts.add(&model.Post{CommunityID: 1, AuthorID: 42, Content: "x"})

	liked, count, err := f.svc.Toggle(context.Background(), user.ID, post.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !liked || count != 1 {
		t.Errorf("first toggle liked=%v count=%d, want true/1", liked, count)
	}

	liked, count, err = f.svc.Toggle(context.Background(), user.ID, post.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if liked || count != 0 {
		t.Errorf("second toggle liked=%v count=%d, want false/0", liked, count)
	}
}

func TestToggleLikeNotifiesAuthorOnce(t *testing.T) {
	f := newLikeFixture(t)
	user := f.users.add(&model.User{EmailHash: "l", Username: "u"})
	post := f.posts.add(&model.Post{CommunityID: 1, AuthorID: 42, Content: "x"})

	if _, _, err := f.svc.Toggle(context.Background(), user.ID, post.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, _, err := f.svc.Toggle(context.Background(), user.ID, post.ID); err != nil {
		t.Fatalf("unlike: %v", err)
	}

	// only the like notifies; the unlike is silent
	if len(f.notifications.created) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.notifications.created))
	}
	if f.notifications.created[0].Verb != model.VerbLike {
		t.Errorf("verb %q", f.notifications.created[0].Verb)
	}
}

func TestToggleLikeOwnPostSkipsNotification(t *testing.T) {
	f := newLikeFixture(t)
	author := f.users.add(&model.User{EmailHash: "a", Username: "u"})
	post := f.posts.add(&model.Post{CommunityID: 1, AuthorID: author.ID, Content: "x"})

	if _, _, err := f.svc.Toggle(context.Background(), author.ID, post.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if len(f.notifications.created) != 0 {
		t.Errorf("liking your own post must not notify")
	}
}

func TestToggleLikeMissingPost(t *testing.T) {
	f := newLikeFixture(t)
	user := f.users.add(&model.User{EmailHash: "l", Username: "u"})

	_, _, err := f.svc.Toggle(context.Background(), user.ID, 404)
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestToggleLikeBannedUser(t *testing.T) {
	f := newLikeFixture(t)
	user := f.users.add(&model.User{EmailHash: "l", Username: "u", Banned: true})
	post := f.posts.add(&model.Post{CommunityID: 1, AuthorID: 42, Content: "x"})

	_, _, err := f.svc.Toggle(context.Background(), user.ID, post.ID)
	if !errors.Is(err, ErrUserBanned) {
		t.Fatalf("expected ErrUserBanned, got %v", err)
	}
}
