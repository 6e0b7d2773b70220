package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sotorbot/internal/core/domain"
)

type MockLibrary struct {
	surahs      []domain.Surah
	surahsErr   error
	surah       domain.Surah
	verses      []domain.Verse
	surahErr    error
	pageVerses  []domain.Verse
	pageErr     error
	verse       domain.Verse
	verseErr    error
	reciters    []domain.Reciter
	recitersErr error
	audio       domain.Audio
	audioErr    error

	SurahArg   int
	PageArg    int
	ReciterArg int
	AudioSurah int
}

func (m *MockLibrary) Surahs(_ context.Context) ([]domain.Surah, error) {
	return m.surahs, m.surahsErr
}

func (m *MockLibrary) Surah(_ context.Context, number int) (domain.Surah, []domain.Verse, error) {
	m.SurahArg = number
	return m.surah, m.verses, m.surahErr
}

func (m *MockLibrary) Page(_ context.Context, number int) ([]domain.Verse, error) {
	m.PageArg = number
	return m.pageVerses, m.pageErr
}

func (m *MockLibrary) RandomVerse(_ context.Context) (domain.Verse, error) {
	return m.verse, m.verseErr
}

func (m *MockLibrary) Reciters(_ context.Context) ([]domain.Reciter, error) {
	return m.reciters, m.recitersErr
}

func (m *MockLibrary) SurahAudio(_ context.Context, reciterID, surahNumber int) (domain.Audio, error) {
	m.ReciterArg = reciterID
	m.AudioSurah = surahNumber

	return m.audio, m.audioErr
}

func makeSurahs(n int) []domain.Surah {
	surahs := make([]domain.Surah, n)
	for i := range surahs {
		surahs[i] = domain.Surah{
			Number:      i + 1,
			Name:        fmt.Sprintf("السورة %d", i+1),
			EnglishName: fmt.Sprintf("Surah %d", i+1),
			Revelation:  "مكية",
			VerseCount:  i%20 + 3,
		}
	}

	return surahs
}

func callbackTargets(keyboard domain.Keyboard) []string {
	var targets []string
	for _, row := range keyboard {
		for _, button := range row {
			if button.CallbackData != "" {
				targets = append(targets, button.CallbackData)
			}
		}
	}

	return targets
}

func TestSurahHandlerPromptsWithoutArgument(t *testing.T) {
	ms := &MockTextSender{}
	handler := NewSurahHandler(&MockLibrary{}, ms)

	assert.Equal(t, "/surah", handler.GetCommand())

	err := handler.Respond(context.Background(), time.Minute, &domain.Message{
		ChatID: 1, ID: 1, Text: "/surah"})

	require.NoError(t, err)
	assert.Equal(t, domain.MsgSurahPrompt, ms.Message)
}

func TestSurahHandlerRejectsBadNumber(t *testing.T) {
	for _, text := range []string{"/surah abc", "/surah 0", "/surah 200"} {
		ms := &MockTextSender{}
		handler := NewSurahHandler(&MockLibrary{}, ms)

		err := handler.Respond(context.Background(), time.Minute, &domain.Message{
			ChatID: 1, ID: 1, Text: text})

		require.NoError(t, err)
		assert.Equal(t, domain.MsgBadNumber, ms.Message, text)
	}
}

func TestSurahHandlerSendsCard(t *testing.T) {
	ml := &MockLibrary{surah: domain.Surah{
		Number: 112, Name: "الإخلاص", EnglishName: "Al-Ikhlas", Revelation: "مكية", VerseCount: 4}}
	ms := &MockTextSender{}
	handler := NewSurahHandler(ml, ms)

	err := handler.Respond(context.Background(), time.Minute, &domain.Message{
		ChatID: 1, ID: 1, Text: "/surah 112"})

	require.NoError(t, err)
	assert.Equal(t, 112, ml.SurahArg)
	assert.Contains(t, ms.Message, "الإخلاص")
	assert.Contains(t, ms.Message, "Al-Ikhlas")

	targets := callbackTargets(ms.Keyboard)
	assert.Contains(t, targets, "read_surah_112")
	assert.Contains(t, targets, "audio_surah_112")
	assert.Contains(t, targets, "main_menu")
}

func TestSurahHandlerLoadError(t *testing.T) {
	ml := &MockLibrary{surahErr: errors.New("mock error")}
	ms := &MockTextSender{}
	handler := NewSurahHandler(ml, ms)

	err := handler.Respond(context.Background(), time.Minute, &domain.Message{
		ChatID: 1, ID: 1, Text: "/surah 12"})

	require.NoError(t, err)
	assert.Equal(t, domain.MsgSurahLoadFailed, ms.Message)
}

func TestSurahCardHandlerEdits(t *testing.T) {
	ml := &MockLibrary{surah: domain.Surah{
		Number: 36, Name: "يس", EnglishName: "Ya-Sin", Revelation: "مكية", VerseCount: 83}}
	me := &MockEditor{}
	handler := NewSurahCardHandler(ml, me)

	assert.Equal(t, "surah_", handler.GetPrefix())

	err := handler.Respond(context.Background(), time.Minute, &domain.Callback{
		ID: "cb1", Data: "surah_36", ChatID: 7, MessageID: 21})

	require.NoError(t, err)
	assert.Equal(t, []string{"cb1"}, me.AnsweredIDs)
	assert.Contains(t, me.Text, "يس")

	targets := callbackTargets(me.Keyboard)
	assert.Contains(t, targets, "surah_35")
	assert.Contains(t, targets, "surah_37")
}

func TestSurahCardHandlerClampsNavigationAtEdges(t *testing.T) {
	ml := &MockLibrary{surah: domain.Surah{Number: 1, Name: "الفاتحة", VerseCount: 7}}
	me := &MockEditor{}
	handler := NewSurahCardHandler(ml, me)

	err := handler.Respond(context.Background(), time.Minute, &domain.Callback{
		ID: "cb1", Data: "surah_1", ChatID: 7, MessageID: 21})

	require.NoError(t, err)

	targets := callbackTargets(me.Keyboard)
	assert.Contains(t, targets, "surah_1")
	assert.Contains(t, targets, "surah_2")
	assert.NotContains(t, targets, "surah_0")
}

func TestSurahCardHandlerBadData(t *testing.T) {
	handler := NewSurahCardHandler(&MockLibrary{}, &MockEditor{})

	for _, data := range []string{"surah_abc", "surah_0", "surah_115"} {
		err := handler.Respond(context.Background(), time.Minute, &domain.Callback{
			ID: "cb1", Data: data, ChatID: 7, MessageID: 21})

		require.Error(t, err, data)
	}
}

func TestSurahCardHandlerLoadError(t *testing.T) {
	ml := &MockLibrary{surahErr: errors.New("mock error")}
	me := &MockEditor{}
	handler := NewSurahCardHandler(ml, me)

	err := handler.Respond(context.Background(), time.Minute, &domain.Callback{
		ID: "cb1", Data: "surah_36", ChatID: 7, MessageID: 21})

	require.NoError(t, err)
	assert.Equal(t, domain.MsgSurahLoadFailed, me.Text)
}
