package transfer

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/example/sakura/pkg/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() Payload {
	return Payload{
		Version: FormatVersion,
		User: &models.UserAccount{
			Profile: models.Profile{
				ID: "u1", Username: "sakura_fan", Name: "佐藤 健二", Level: models.LevelN4,
				Streak: 3, LastStudyDate: "2026-03-14", XP: 1200, Badges: []string{"streak_3"},
			},
			Password: "password",
		},
		Reviews: map[string]models.ReviewRecord{
			"u1:static_1": {ItemID: "static_1", NextReview: 1773489600000, Interval: 3, EaseFactor: 2.5, Streak: 2},
		},
		Results:     []models.TestResult{{ID: "r1", UserID: "u1", Date: 1773489600000, Score: 8, Total: 10, Type: models.ExamMock, Level: models.LevelN4}},
		CustomItems: []models.StudyItem{{ID: "c1", Level: models.LevelN4, Type: models.ItemVocabulary, Question: "猫", Meaning: "Cat", Custom: true}},
		Timestamp:   1773489600000,
	}
}

func TestRoundTrip(t *testing.T) {
	p := samplePayload()

	code, err := Encode(p)
	require.NoError(t, err)

	got, err := Decode(code)
	require.NoError(t, err)
	assert.Equal(t, p, *got)

	// The embedded JSON survives byte for byte.
	want, err := json.Marshal(p)
	require.NoError(t, err)
	again, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(again))
}

func TestDecodeToleratesWhitespace(t *testing.T) {
	code, err := Encode(samplePayload())
	require.NoError(t, err)

	wrapped := "  " + code[:20] + "\n" + code[20:] + "\n"
	_, err = Decode(wrapped)
	assert.NoError(t, err)
}

func TestDecodeInvalid(t *testing.T) {
	encode := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	tests := map[string]string{
		"empty":           "",
		"not base64":      "%%%not-base64%%%",
		"not json":        encode("hello"),
		"missing user":    encode(`{"version":1,"srs":{}}`),
		"missing srs":     encode(`{"version":1,"user":{"id":"u1"}}`),
		"user without id": encode(`{"version":1,"user":{},"srs":{}}`),
	}
	for name, code := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(code)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFormat))
		})
	}
}
