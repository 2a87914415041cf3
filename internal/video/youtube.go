// Package video looks up the context a word was captured in: the line of
// the video's transcript it was spoken in and the video's title.
package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	yt "github.com/kkdai/youtube/v2"

	"github.com/abhisek/clipvocab/internal/cache"
)

// ErrSentenceNotFound means the transcript has no line with the word.
var ErrSentenceNotFound = errors.New("word not found in transcript")

// DefaultLanguages are the caption tracks tried first.
var DefaultLanguages = []string{"en", "en-US", "en-GB"}

const transcriptTTL = 7 * 24 * time.Hour

// TranscriptFetcher returns the caption lines of a video in order.
type TranscriptFetcher interface {
	Lines(ctx context.Context, videoID string) ([]string, error)
}

// TitleFetcher returns a video's title.
type TitleFetcher interface {
	Title(ctx context.Context, videoID string) (string, error)
}

// Source finds capture context for YouTube videos. It satisfies
// vocab.VideoSource.
type Source struct {
	transcripts TranscriptFetcher
	titles      TitleFetcher
	cache       cache.Cache
	logger      *slog.Logger
}

// Options configures a Source. Nil fetchers default to the YouTube ones.
type Options struct {
	Transcripts TranscriptFetcher
	Titles      TitleFetcher
	Cache       cache.Cache
	Languages   []string
	Logger      *slog.Logger
}

// NewSource builds a Source.
func NewSource(opts Options) *Source {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "video")

	yc := &yt.Client{}
	if opts.Transcripts == nil {
		langs := opts.Languages
		if len(langs) == 0 {
			langs = DefaultLanguages
		}
		opts.Transcripts = &youTubeTranscripts{
			api:       ytapi.NewYouTubeTranscriptApi(),
			client:    yc,
			languages: langs,
			logger:    logger,
		}
	}
	if opts.Titles == nil {
		opts.Titles = &youTubeTitles{client: yc}
	}
	return &Source{
		transcripts: opts.Transcripts,
		titles:      opts.Titles,
		cache:       opts.Cache,
		logger:      logger,
	}
}

// FindSentence returns the transcript line of videoID in which word is
// spoken. videoID may also be a full watch or share URL.
func (s *Source) FindSentence(ctx context.Context, videoID, word string) (string, error) {
	id, err := NormalizeID(videoID)
	if err != nil {
		return "", err
	}
	lines, err := s.lines(ctx, id)
	if err != nil {
		return "", err
	}
	sentence, ok := FindSentence(lines, word)
	if !ok {
		return "", fmt.Errorf("%q in video %s: %w", word, id, ErrSentenceNotFound)
	}
	return sentence, nil
}

// Title returns the title of videoID.
func (s *Source) Title(ctx context.Context, videoID string) (string, error) {
	id, err := NormalizeID(videoID)
	if err != nil {
		return "", err
	}
	return s.titles.Title(ctx, id)
}

func (s *Source) lines(ctx context.Context, id string) ([]string, error) {
	key := cache.Key("transcript", id)
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var lines []string
			if err := json.Unmarshal(raw, &lines); err == nil {
				return lines, nil
			}
		}
	}

	lines, err := s.transcripts.Lines(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript for %s: %w", id, err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(lines); err == nil {
			if err := s.cache.Set(ctx, key, raw, transcriptTTL); err != nil {
				s.logger.WarnContext(ctx, "failed to cache transcript", "video_id", id, "error", err)
			}
		}
	}
	return lines, nil
}

// NormalizeID accepts a bare 11 character video ID or any YouTube URL form
// and returns the ID.
func NormalizeID(videoID string) (string, error) {
	id, err := yt.ExtractVideoID(videoID)
	if err != nil {
		return "", fmt.Errorf("invalid video id %q: %w", videoID, err)
	}
	return id, nil
}

type youTubeTranscripts struct {
	api       *ytapi.YouTubeTranscriptApi
	client    *yt.Client
	languages []string
	logger    *slog.Logger
}

// Lines tries the preferred caption languages, then any track, then the
// innertube transcript endpoint.
func (y *youTubeTranscripts) Lines(ctx context.Context, id string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	transcript, err := y.api.GetTranscript(id, y.languages)
	if err != nil {
		transcript, err = y.api.GetTranscript(id, nil)
	}
	if err == nil {
		lines := make([]string, 0, len(transcript.Entries))
		for _, e := range transcript.Entries {
			lines = append(lines, e.Text)
		}
		if len(lines) > 0 {
			return lines, nil
		}
		err = errors.New("subtitle track is empty")
	}
	y.logger.DebugContext(ctx, "transcript api failed, trying innertube", "video_id", id, "error", err)

	video, vErr := y.client.GetVideoContext(ctx, id)
	if vErr != nil {
		return nil, fmt.Errorf("transcript api: %v; video metadata: %w", err, vErr)
	}
	segments, tErr := y.client.GetTranscriptCtx(ctx, video, y.languages[0])
	if tErr != nil {
		return nil, fmt.Errorf("transcript api: %v; innertube: %w", err, tErr)
	}
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, seg.Text)
	}
	return lines, nil
}

type youTubeTitles struct {
	client *yt.Client
}

func (y *youTubeTitles) Title(ctx context.Context, id string) (string, error) {
	v, err := y.client.GetVideoContext(ctx, id)
	if err != nil {
		return "", fmt.Errorf("fetch video %s: %w", id, err)
	}
	return v.Title, nil
}
