package service

import (
	"context"
	"errors"
	"testing"

	"campusanon/internal/model"
)

type postFixture struct {
	svc         *PostService
	posts       *memPostStore
	communities *memCommunityStore
	users       *memUserStore
	limiter     *stubLimiter
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	year := 2
	branch := "COMP"
	f := &postFixture{
		posts: newMemPostStore(),
		communities: &memCommunityStore{
			communities: []*model.Community{
				{ID: 1, Name: "SY COMP", Slug: "2-comp", Year: &year, Branch: &branch},
			},
		},
		users:   newMemUserStore(),
		limiter: &stubLimiter{},
	}
	f.svc = NewPostService(f.posts, f.communities, f.users, f.limiter)
	return f
}

func TestCreatePostAssignsAlias(t *testing.T) {
	f := newPostFixture(t)
	author := f.users.add(&model.User{EmailHash: "a", Username: "u"})

	post, err := f.svc.Create(context.Background(), author.ID, 1, "first post")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.Alias == "" {
		t.Errorf("post needs an alias")
	}
	if post.AuthorID != author.ID {
		t.Errorf("author %d, want %d", post.AuthorID, author.ID)
	}
	if len(f.limiter.calls) != 1 || f.limiter.calls[0] != ActionCreatePost {
		t.Errorf("limiter calls %v", f.limiter.calls)
	}
}

func TestCreatePostAliasesAreIndependent(t *testing.T) {
	f := newPostFixture(t)
	author := f.users.add(&model.User{EmailHash: "a", Username: "u"})

	// aliases are random per item; over a handful of posts at least two
	// distinct values must show up
	seen := make(map[string]bool)
	for i := 0; i < 8; i++ {
		post, err := f.svc.Create(context.Background(), author.ID, 1, "post")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		seen[post.Alias] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected varied aliases, got %v", seen)
	}
}

func TestCreatePostUnknownCommunity(t *testing.T) {
	f := newPostFixture(t)
	author := f.users.add(&model.User{EmailHash: "a", Username: "u"})

	_, err := f.svc.Create(context.Background(), author.ID, 404, "post")
	if !errors.Is(err, ErrCommunityNotFound) {
		t.Fatalf("expected ErrCommunityNotFound, got %v", err)
	}
}

func TestCreatePostRateLimited(t *testing.T) {
	f := newPostFixture(t)
	author := f.users.add(&model.User{EmailHash: "a", Username: "u"})
	f.limiter.err = ErrRateLimited

	_, err := f.svc.Create(context.Background(), author.ID, 1, "post")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if len(f.posts.posts) != 0 {
		t.Errorf("no post should be written when rate limited")
	}
}

func TestCreatePostBannedAuthor(t *testing.T) {
	f := newPostFixture(t)
	author := f.users.add(&model.User{EmailHash: "a", Username: "u", Banned: true})

	_, err := f.svc.Create(context.Background(), author.ID, 1, "post")
	if !errors.Is(err, ErrUserBanned) {
		t.Fatalf("expected ErrUserBanned, got %v", err)
	}
}

func TestFeedSkipsHiddenPosts(t *testing.T) {
	f := newPostFixture(t)
	f.posts.add(&model.Post{CommunityID: 1, AuthorID: 1, Content: "visible"})
	f.posts.add(&model.Post{CommunityID: 1, AuthorID: 1, Content: "hidden", Hidden: true})

	items, err := f.svc.Feed(context.Background(), 1)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(items) != 1 || items[0].Content != "visible" {
		t.Errorf("feed %v, want only the visible post", items)
	}
}

func TestFeedUnknownCommunity(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Feed(context.Background(), 404)
	if !errors.Is(err, ErrCommunityNotFound) {
		t.Fatalf("expected ErrCommunityNotFound, got %v", err)
	}
}

func TestDeletePostAuthorOnly(t *testing.T) {
	f := newPostFixture(t)
	post := f.posts.add(&model.Post{CommunityID: 1, AuthorID: 7, Content: "x"})

	if err := f.svc.Delete(context.Background(), 8, post.ID); !errors.Is(err, ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), 7, post.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if _, ok := f.posts.posts[post.ID]; ok {
		t.Errorf("post should be gone")
	}
	if err := f.svc.Delete(context.Background(), 7, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound after delete, got %v", err)
	}
}
