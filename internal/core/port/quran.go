package port

import (
	"context"

	"sotorbot/internal/core/domain"
)

// QuranLibrary serves Quran content from the upstream text and audio APIs.
type QuranLibrary interface {
	Surahs(ctx context.Context) ([]domain.Surah, error)
	// Surah returns the surah metadata along with its verses.
	Surah(ctx context.Context, number int) (domain.Surah, []domain.Verse, error)
	// Page returns the verses printed on one mushaf page (1..604).
	Page(ctx context.Context, number int) ([]domain.Verse, error)
	RandomVerse(ctx context.Context) (domain.Verse, error)
	Reciters(ctx context.Context) ([]domain.Reciter, error)
	// SurahAudio resolves the recitation audio for one surah by one reciter.
	SurahAudio(ctx context.Context, reciterID int, surahNumber int) (domain.Audio, error)
}
