package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/metrics"
)

const (
	DefaultQuranAPIBaseURL = "https://api.alquran.cloud/v1"
	DefaultMP3QuranBaseURL = "https://www.mp3quran.net/api/v3"

	// surah and random verse lookups use the Alafasy edition, page
	// rendering the Uthmani text
	surahEdition = "ar.alafasy"
	pageEdition  = "quran-uthmani"

	cacheTTL     = 30 * time.Minute
	cacheMaxSize = 150
)

// Client serves quran text, metadata and recitation audio from the
// alquran.cloud and mp3quran.net APIs. Successful lookups are cached.
type Client struct {
	quranBaseURL string
	mp3BaseURL   string
	client       *http.Client
	cache        *cache
	metrics      *metrics.Metrics
}

func NewClient(quranBaseURL, mp3BaseURL string, m *metrics.Metrics) *Client {
	return &Client{
		quranBaseURL: quranBaseURL,
		mp3BaseURL:   mp3BaseURL,
		client:       &http.Client{Timeout: 30 * time.Second},
		cache:        newCache(cacheTTL, cacheMaxSize),
		metrics:      m,
	}
}

type apiEnvelope struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type surahData struct {
	Number         int    `json:"number"`
	Name           string `json:"name"`
	EnglishName    string `json:"englishName"`
	NumberOfAyahs  int    `json:"numberOfAyahs"`
	RevelationType string `json:"revelationType"`
}

type ayahData struct {
	Text          string     `json:"text"`
	NumberInSurah int        `json:"numberInSurah"`
	Surah         *surahData `json:"surah"`
}

type surahDetailData struct {
	surahData
	Ayahs []ayahData `json:"ayahs"`
}

type surahEntry struct {
	surah  domain.Surah
	verses []domain.Verse
}

// Surahs returns the metadata of all 114 surahs.
func (c *Client) Surahs(ctx context.Context) ([]domain.Surah, error) {
	if cached, ok := c.cacheGet("surahs"); ok {
		return cached.([]domain.Surah), nil
	}

	data, err := c.getQuranData(ctx, fmt.Sprintf("%s/surah", c.quranBaseURL))
	if err != nil {
		return nil, err
	}

	var list []surahData
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("error unmarshalling surah list: %w", err)
	}

	surahs := make([]domain.Surah, 0, len(list))
	for _, s := range list {
		surahs = append(surahs, toSurah(s))
	}

	c.cache.put("surahs", surahs)

	return surahs, nil
}

// Surah returns one surah's metadata and its full text.
func (c *Client) Surah(ctx context.Context, number int) (domain.Surah, []domain.Verse, error) {
	if number < 1 || number > domain.SurahCount {
		return domain.Surah{}, nil, fmt.Errorf("surah number %d out of range", number)
	}

	key := fmt.Sprintf("surah:%d", number)
	if cached, ok := c.cacheGet(key); ok {
		entry := cached.(surahEntry)
		return entry.surah, entry.verses, nil
	}

	data, err := c.getQuranData(ctx, fmt.Sprintf("%s/surah/%d/%s", c.quranBaseURL, number, surahEdition))
	if err != nil {
		return domain.Surah{}, nil, err
	}

	var detail surahDetailData
	if err := json.Unmarshal(data, &detail); err != nil {
		return domain.Surah{}, nil, fmt.Errorf("error unmarshalling surah: %w", err)
	}

	surah := toSurah(detail.surahData)
	if surah.VerseCount == 0 {
		surah.VerseCount = len(detail.Ayahs)
	}

	verses := make([]domain.Verse, 0, len(detail.Ayahs))
	for _, ayah := range detail.Ayahs {
		verses = append(verses, domain.Verse{
			SurahNumber: surah.Number,
			SurahName:   surah.Name,
			Number:      ayah.NumberInSurah,
			Text:        ayah.Text,
		})
	}

	c.cache.put(key, surahEntry{surah: surah, verses: verses})

	return surah, verses, nil
}

// Page returns the verses printed on one page of the mushaf.
func (c *Client) Page(ctx context.Context, number int) ([]domain.Verse, error) {
	if number < 1 || number > domain.PageCount {
		return nil, fmt.Errorf("page number %d out of range", number)
	}

	key := fmt.Sprintf("page:%d", number)
	if cached, ok := c.cacheGet(key); ok {
		return cached.([]domain.Verse), nil
	}

	data, err := c.getQuranData(ctx, fmt.Sprintf("%s/page/%d/%s", c.quranBaseURL, number, pageEdition))
	if err != nil {
		return nil, err
	}

	var page struct {
		Ayahs []ayahData `json:"ayahs"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("error unmarshalling page: %w", err)
	}

	verses := make([]domain.Verse, 0, len(page.Ayahs))
	for _, ayah := range page.Ayahs {
		verse := domain.Verse{
			Number: ayah.NumberInSurah,
			Text:   ayah.Text,
		}
		if ayah.Surah != nil {
			verse.SurahNumber = ayah.Surah.Number
			verse.SurahName = ayah.Surah.Name
		}
		verses = append(verses, verse)
	}

	c.cache.put(key, verses)

	return verses, nil
}

// RandomVerse picks one ayah uniformly from the whole quran. Never
// cached, every call should surprise.
func (c *Client) RandomVerse(ctx context.Context) (domain.Verse, error) {
	number := rand.IntN(domain.AyahCount) + 1

	data, err := c.getQuranData(ctx, fmt.Sprintf("%s/ayah/%d/%s", c.quranBaseURL, number, surahEdition))
	if err != nil {
		return domain.Verse{}, err
	}

	var ayah ayahData
	if err := json.Unmarshal(data, &ayah); err != nil {
		return domain.Verse{}, fmt.Errorf("error unmarshalling ayah: %w", err)
	}

	verse := domain.Verse{
		Number: ayah.NumberInSurah,
		Text:   ayah.Text,
	}
	if ayah.Surah != nil {
		verse.SurahNumber = ayah.Surah.Number
		verse.SurahName = ayah.Surah.Name
	}

	return verse, nil
}

func (c *Client) cacheGet(key string) (any, bool) {
	value, ok := c.cache.get(key)
	if ok {
		c.metrics.CacheHitsTotal.Inc()
	} else {
		c.metrics.CacheMissesTotal.Inc()
	}

	return value, ok
}

// getQuranData fetches one alquran.cloud resource and unwraps the
// response envelope.
func (c *Client) getQuranData(ctx context.Context, endpoint string) (json.RawMessage, error) {
	body, err := c.getJSON(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("error unmarshalling quran response: %w", err)
	}

	if envelope.Code != http.StatusOK {
		return nil, fmt.Errorf("quran API returned code %d: %s", envelope.Code, envelope.Status)
	}

	return envelope.Data, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating quran request: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing quran request: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quran API returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading quran response: %w", err)
	}

	return body, nil
}

func toSurah(s surahData) domain.Surah {
	return domain.Surah{
		Number:      s.Number,
		Name:        s.Name,
		EnglishName: s.EnglishName,
		Revelation:  s.RevelationType,
		VerseCount:  s.NumberOfAyahs,
	}
}
