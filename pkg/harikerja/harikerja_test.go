package harikerja

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHariKerjaJanuari2025(t *testing.T) {
	// Januari 2025: 31 hari, 4 Sabtu + 4 Minggu
	tanpaLibur := HariKerja(time.January, 2025, nil)
	assert.Len(t, tanpaLibur, 23)

	for _, d := range tanpaLibur {
		assert.NotEqual(t, time.Saturday, d.Weekday())
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}

	libur := map[string]bool{"2025-01-01": true}
	denganLibur := HariKerja(time.January, 2025, libur)
	assert.Len(t, denganLibur, 22)
	assert.Equal(t, "2025-01-02", denganLibur[0].Format("2006-01-02"))

	// Deterministik: pemanggilan ulang menghasilkan daftar yang sama
	assert.Equal(t, denganLibur, HariKerja(time.January, 2025, libur))
}

func TestHariKerjaFebruari(t *testing.T) {
	// Februari 2025 mulai hari Sabtu
	hasil := HariKerja(time.February, 2025, nil)
	assert.Len(t, hasil, 20)
	assert.Equal(t, "2025-02-03", hasil[0].Format("2006-01-02"))
	assert.Equal(t, "2025-02-28", hasil[len(hasil)-1].Format("2006-01-02"))
}

func TestParseJam(t *testing.T) {
	menit, err := ParseJam("08:15")
	require.NoError(t, err)
	assert.Equal(t, 495, menit)

	// Pemisah titik dari klien lama
	menit, err = ParseJam("08.15")
	require.NoError(t, err)
	assert.Equal(t, 495, menit)

	menit, err = ParseJam("0:00")
	require.NoError(t, err)
	assert.Equal(t, 0, menit)

	for _, jam := range []string{"25:00", "08:60", "abc", "8", "08:15:00", ""} {
		_, err := ParseJam(jam)
		assert.ErrorIs(t, err, ErrFormatJam, "input %q", jam)
	}
}

func TestFormatMenit(t *testing.T) {
	assert.Equal(t, "08:05", FormatMenit(485))
	assert.Equal(t, "00:00", FormatMenit(0))
	assert.Equal(t, "23:59", FormatMenit(23*60+59))
}

func TestIsTelat(t *testing.T) {
	// Tepat di batas masih dihitung hadir
	telat, err := IsTelat("08:00", "08:00")
	require.NoError(t, err)
	assert.False(t, telat)

	telat, err = IsTelat("07:59", "08:00")
	require.NoError(t, err)
	assert.False(t, telat)

	telat, err = IsTelat("08:01", "08:00")
	require.NoError(t, err)
	assert.True(t, telat)

	_, err = IsTelat("jam", "08:00")
	assert.ErrorIs(t, err, ErrFormatJam)
}
