package store

import (
	"context"
	"testing"
)

func TestTrendingHashtags(t *testing.T) {
	s := newTestStore()
	author := mustRegister(t, s, "author@example.com", "author")
	ctx := context.Background()

	// Two posts tagged "игры", one "музыка", one untagged.
	s.CreatePost(ctx, author.ID, "катка вечером", "игры")
	s.CreatePost(ctx, author.ID, "новый альбом", "музыка")
	s.CreatePost(ctx, author.ID, "ещё катка", "игры")
	s.CreatePost(ctx, author.ID, "просто пост", "")

	trending := s.TrendingHashtags(10)
	if len(trending) != 2 {
		t.Fatalf("expected 2 trending tags, got %d", len(trending))
	}
	if trending[0].Hashtag != "игры" || trending[0].Count != 2 {
		t.Errorf("expected (игры, 2) first, got (%s, %d)", trending[0].Hashtag, trending[0].Count)
	}
	if trending[1].Hashtag != "музыка" || trending[1].Count != 1 {
		t.Errorf("expected (музыка, 1) second, got (%s, %d)", trending[1].Hashtag, trending[1].Count)
	}
}

func TestTrendingHashtagsTiesKeepFirstSeenOrder(t *testing.T) {
	s := newTestStore()
	author := mustRegister(t, s, "author@example.com", "author")
	ctx := context.Background()

	// Creation prepends, so the collection scan sees "кино" before "аниме".
	s.CreatePost(ctx, author.ID, "сериал", "аниме")
	s.CreatePost(ctx, author.ID, "фильм", "кино")

	trending := s.TrendingHashtags(10)
	if len(trending) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(trending))
	}
	if trending[0].Hashtag != "кино" || trending[1].Hashtag != "аниме" {
		t.Errorf("expected first-seen order on ties, got [%s %s]",
			trending[0].Hashtag, trending[1].Hashtag)
	}
}

func TestTrendingHashtagsLimit(t *testing.T) {
	s := newTestStore()
	author := mustRegister(t, s, "author@example.com", "author")
	ctx := context.Background()

	for _, tag := range []string{"один", "два", "три"} {
		s.CreatePost(ctx, author.ID, "пост", tag)
	}

	if got := s.TrendingHashtags(2); len(got) != 2 {
		t.Errorf("expected limit to cap output, got %d entries", len(got))
	}
	if got := s.TrendingHashtags(0); len(got) != 3 {
		t.Errorf("expected non-positive limit to return all, got %d entries", len(got))
	}
}
