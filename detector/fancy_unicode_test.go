package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"judol-guard/detector"
)

func TestContainsFancyUnicode(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"mathematical alphanumerics", "Buat yang belum coba, kalian harus coba sekarang juga di 𝘼𝘌𝐑𝘖𝟴𝟪!", true},
		{"cyrillic look-alike", "Gacir banget tiap main di АHMADTOTO", true},
		{"enclosed alphanumerics", "menang terus di ⒹⓄⓇⒶ77", true},
		{"letterlike symbols", "™ promo spesial", true},
		{"plain ascii", "great video!", false},
		{"plain indonesian", "videonya bagus banget, makasih", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, detector.ContainsFancyUnicode(tc.text))
		})
	}
}
