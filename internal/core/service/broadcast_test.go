package service

import (
	"context"
	"errors"
	"testing"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockQuranLibrary struct {
	verse    domain.Verse
	verseErr error
}

func (m *mockQuranLibrary) Surahs(_ context.Context) ([]domain.Surah, error) {
	panic("implement me")
}

func (m *mockQuranLibrary) Surah(_ context.Context, _ int) (domain.Surah, []domain.Verse, error) {
	panic("implement me")
}

func (m *mockQuranLibrary) Page(_ context.Context, _ int) ([]domain.Verse, error) {
	panic("implement me")
}

func (m *mockQuranLibrary) RandomVerse(_ context.Context) (domain.Verse, error) {
	return m.verse, m.verseErr
}

func (m *mockQuranLibrary) Reciters(_ context.Context) ([]domain.Reciter, error) {
	panic("implement me")
}

func (m *mockQuranLibrary) SurahAudio(_ context.Context, _ int, _ int) (domain.Audio, error) {
	panic("implement me")
}

type mockBroadcaster struct {
	texts []string
	err   error
}

func (m *mockBroadcaster) Broadcast(_ context.Context, text string) (int, error) {
	m.texts = append(m.texts, text)
	if m.err != nil {
		return 0, m.err
	}
	return 99, nil
}

func TestNewVerseBroadcasterRejectsBadSchedule(t *testing.T) {
	_, err := NewVerseBroadcaster(&mockQuranLibrary{}, &mockBroadcaster{}, metrics.NewMetrics(), "not a cron line")

	assert.Error(t, err)
}

func TestBroadcastVerseFormatsAndSends(t *testing.T) {
	library := &mockQuranLibrary{verse: domain.Verse{
		SurahNumber: 94,
		SurahName:   "الشرح",
		Number:      6,
		Text:        "إِنَّ مَعَ الْعُسْرِ يُسْرًا",
	}}
	sender := &mockBroadcaster{}

	b, err := NewVerseBroadcaster(library, sender, metrics.NewMetrics(), "0 6 * * *")
	require.NoError(t, err)

	err = b.BroadcastVerse(context.Background())

	require.NoError(t, err)
	require.Len(t, sender.texts, 1)
	assert.Contains(t, sender.texts[0], "إِنَّ مَعَ الْعُسْرِ يُسْرًا")
	assert.Contains(t, sender.texts[0], "الشرح")
	assert.Contains(t, sender.texts[0], "آية اليوم")
}

func TestBroadcastVersePropagatesLibraryError(t *testing.T) {
	library := &mockQuranLibrary{verseErr: errors.New("api down")}
	sender := &mockBroadcaster{}

	b, err := NewVerseBroadcaster(library, sender, metrics.NewMetrics(), "0 6 * * *")
	require.NoError(t, err)

	err = b.BroadcastVerse(context.Background())

	assert.Error(t, err)
	assert.Empty(t, sender.texts)
}

func TestBroadcastVersePropagatesSendError(t *testing.T) {
	library := &mockQuranLibrary{verse: domain.Verse{SurahNumber: 1, SurahName: "الفاتحة", Number: 1, Text: "..."}}
	sender := &mockBroadcaster{err: errors.New("channel gone")}

	b, err := NewVerseBroadcaster(library, sender, metrics.NewMetrics(), "0 6 * * *")
	require.NoError(t, err)

	err = b.BroadcastVerse(context.Background())

	assert.Error(t, err)
}
