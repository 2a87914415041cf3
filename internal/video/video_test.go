package video

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/clipvocab/internal/cache"
)

var sampleLines = []string{
	"[Music]",
	"I never thought I'd &amp; see",
	"the light of day",
	"We took the bus home.",
	"(applause)",
}

func TestCleanLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"[Music]", ""},
		{"  hello   there ", "hello there"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"♪ la la ♪", "la la"},
		{"(laughs) you did what?", "you did what?"},
	}
	for _, tt := range tests {
		if got := CleanLine(tt.in); got != tt.want {
			t.Errorf("CleanLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindSentence(t *testing.T) {
	tests := []struct {
		word   string
		want   string
		wantOK bool
	}{
		{"bus", "We took the bus home.", true},
		{"BUS", "We took the bus home.", true},
		{"light of day", "the light of day", true},
		{"see the light", "I never thought I'd & see the light of day", true},
		{"I'd", "I never thought I'd & see", true},
		{"bu", "", false},
		{"music", "", false},
		{"applause", "", false},
		{"day the", "", false},
		{"  ", "", false},
	}
	for _, tt := range tests {
		got, ok := FindSentence(sampleLines, tt.word)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("FindSentence(%q) = (%q, %v), want (%q, %v)", tt.word, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"short", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type fakeTranscripts struct {
	lines map[string][]string
	err   error
	calls int
}

func (f *fakeTranscripts) Lines(_ context.Context, id string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.lines[id], nil
}

type fakeTitles map[string]string

func (f fakeTitles) Title(_ context.Context, id string) (string, error) {
	if t, ok := f[id]; ok {
		return t, nil
	}
	return "", errors.New("no such video")
}

func TestSource_FindSentence(t *testing.T) {
	ft := &fakeTranscripts{lines: map[string][]string{"dQw4w9WgXcQ": sampleLines}}
	src := NewSource(Options{
		Transcripts: ft,
		Titles:      fakeTitles{},
		Cache:       cache.NewMemory(10),
	})
	ctx := context.Background()

	got, err := src.FindSentence(ctx, "https://youtu.be/dQw4w9WgXcQ", "bus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "We took the bus home." {
		t.Errorf("got %q", got)
	}

	_, err = src.FindSentence(ctx, "dQw4w9WgXcQ", "train")
	if !errors.Is(err, ErrSentenceNotFound) {
		t.Errorf("expected ErrSentenceNotFound, got %v", err)
	}

	if ft.calls != 1 {
		t.Errorf("expected transcript to be cached, fetched %d times", ft.calls)
	}
}

func TestSource_FetchError(t *testing.T) {
	boom := errors.New("captions disabled")
	src := NewSource(Options{Transcripts: &fakeTranscripts{err: boom}, Titles: fakeTitles{}})

	_, err := src.FindSentence(context.Background(), "dQw4w9WgXcQ", "bus")
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped fetch error, got %v", err)
	}

	if _, err := src.FindSentence(context.Background(), "bad", "bus"); err == nil {
		t.Error("expected invalid id error")
	}
}

func TestSource_Title(t *testing.T) {
	src := NewSource(Options{
		Transcripts: &fakeTranscripts{},
		Titles:      fakeTitles{"dQw4w9WgXcQ": "Never Gonna Give You Up"},
	})

	got, err := src.Title(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Never Gonna Give You Up" {
		t.Errorf("got %q", got)
	}
	if _, err := src.Title(context.Background(), "aaaaaaaaaaa"); err == nil {
		t.Error("expected error for unknown video")
	}
}
