package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	SurahCount = 114
	PageCount  = 604
	// AyahCount is the total number of ayahs in the mushaf.
	AyahCount = 6236
)

// Basmala as rendered at the top of a surah reading.
const Basmala = "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ"

// Spelling variants encountered in upstream verse text.
var basmalaVariants = []string{
	"بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ",
	"بِسمِ اللَّهِ الرَّحمٰنِ الرَّحيمِ",
	"بِسْمِ اللهِ الرَّحْمٰنِ الرَّحِيْمِ",
}

type Surah struct {
	Number      int
	Name        string
	EnglishName string
	Revelation  string
	VerseCount  int
}

type Verse struct {
	SurahNumber int
	SurahName   string
	Number      int
	Text        string
}

type Reciter struct {
	ID     int
	Name   string
	Server string
	// SurahList is the comma-separated surah numbers this reciter covers.
	SurahList string
}

func (r Reciter) HasSurah(number int) bool {
	want := strconv.Itoa(number)
	for _, s := range strings.Split(r.SurahList, ",") {
		if strings.TrimSpace(s) == want {
			return true
		}
	}

	return false
}

// HasBasmalaHeading reports whether a reading of the surah opens with the
// basmala as a standalone line. Al-Fatiha carries it as its first ayah and
// At-Tawbah has none.
func HasBasmalaHeading(surahNumber int) bool {
	return surahNumber != 1 && surahNumber != 9
}

// FormatVerse renders one ayah with its ornate number marker. The basmala
// is stripped from the first ayah where it is shown as a heading instead.
func FormatVerse(verse Verse) string {
	text := verse.Text
	if verse.Number == 1 && HasBasmalaHeading(verse.SurahNumber) {
		for _, variant := range basmalaVariants {
			if strings.HasPrefix(text, variant) {
				text = strings.TrimSpace(text[len(variant):])
				break
			}
		}
	}

	return fmt.Sprintf("%s ﴿%d﴾", text, verse.Number)
}
