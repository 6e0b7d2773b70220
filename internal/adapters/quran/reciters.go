package quran

import (
	"context"
	"encoding/json"
	"fmt"

	"sotorbot/internal/core/domain"
)

type reciterListData struct {
	Reciters []struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Moshaf []struct {
			Server     string `json:"server"`
			SurahList  string `json:"surah_list"`
			SurahTotal int    `json:"surah_total"`
		} `json:"moshaf"`
	} `json:"reciters"`
}

// Reciters lists the available reciters with their audio servers.
func (c *Client) Reciters(ctx context.Context) ([]domain.Reciter, error) {
	if cached, ok := c.cacheGet("reciters"); ok {
		return cached.([]domain.Reciter), nil
	}

	body, err := c.getJSON(ctx, fmt.Sprintf("%s/reciters?language=ar", c.mp3BaseURL))
	if err != nil {
		return nil, err
	}

	var list reciterListData
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("error unmarshalling reciter list: %w", err)
	}

	reciters := make([]domain.Reciter, 0, len(list.Reciters))
	for _, r := range list.Reciters {
		if len(r.Moshaf) == 0 {
			continue
		}

		reciters = append(reciters, domain.Reciter{
			ID:        r.ID,
			Name:      r.Name,
			Server:    r.Moshaf[0].Server,
			SurahList: r.Moshaf[0].SurahList,
		})
	}

	c.cache.put("reciters", reciters)

	return reciters, nil
}

// SurahAudio resolves the streaming URL of one recitation. Audio files
// live at {server}{surah number padded to three digits}.mp3.
func (c *Client) SurahAudio(ctx context.Context, reciterID int, surahNumber int) (domain.Audio, error) {
	if surahNumber < 1 || surahNumber > domain.SurahCount {
		return domain.Audio{}, fmt.Errorf("surah number %d out of range", surahNumber)
	}

	reciters, err := c.Reciters(ctx)
	if err != nil {
		return domain.Audio{}, err
	}

	var reciter *domain.Reciter
	for i := range reciters {
		if reciters[i].ID == reciterID {
			reciter = &reciters[i]
			break
		}
	}
	if reciter == nil {
		return domain.Audio{}, fmt.Errorf("unknown reciter %d", reciterID)
	}

	if !reciter.HasSurah(surahNumber) {
		return domain.Audio{}, fmt.Errorf("reciter %s has no recording for surah %d", reciter.Name, surahNumber)
	}

	title := fmt.Sprintf("سورة %d", surahNumber)
	if surahs, err := c.Surahs(ctx); err == nil {
		for _, s := range surahs {
			if s.Number == surahNumber {
				title = s.Name
				break
			}
		}
	}

	return domain.Audio{
		URL:       fmt.Sprintf("%s%03d.mp3", reciter.Server, surahNumber),
		Title:     title,
		Performer: reciter.Name,
	}, nil
}
