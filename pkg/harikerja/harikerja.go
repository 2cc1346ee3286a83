package harikerja

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrFormatJam = errors.New("format jam tidak valid, gunakan HH:MM")

// HariKerja mengembalikan seluruh tanggal kerja dalam satu bulan, urut naik:
// semua tanggal 1 s/d akhir bulan, minus Sabtu/Minggu, minus tanggal yang ada
// di set libur (key format YYYY-MM-DD). Fungsi murni, tanpa side effect.
func HariKerja(bulan time.Month, tahun int, libur map[string]bool) []time.Time {
	awal := time.Date(tahun, bulan, 1, 0, 0, 0, 0, time.UTC)
	hasil := []time.Time{}

	for d := awal; d.Month() == bulan; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if libur[d.Format("2006-01-02")] {
			continue
		}
		hasil = append(hasil, d)
	}

	return hasil
}

// ParseJam mengubah "HH:MM" menjadi menit sejak tengah malam.
// Pemisah "." juga diterima ("08.15" == "08:15") karena beberapa klien lama
// mengirim format itu.
func ParseJam(jam string) (int, error) {
	normal := strings.ReplaceAll(strings.TrimSpace(jam), ".", ":")
	bagian := strings.Split(normal, ":")
	if len(bagian) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrFormatJam, jam)
	}

	h, err := strconv.Atoi(bagian[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrFormatJam, jam)
	}
	m, err := strconv.Atoi(bagian[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrFormatJam, jam)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrFormatJam, jam)
	}

	return h*60 + m, nil
}

// FormatMenit adalah kebalikan ParseJam: menit sejak tengah malam -> "HH:MM".
func FormatMenit(menit int) string {
	return fmt.Sprintf("%02d:%02d", menit/60, menit%60)
}

// IsTelat membandingkan jam kedatangan dengan batas telat (strict: tepat di
// batas masih dihitung hadir).
func IsTelat(jam, batas string) (bool, error) {
	menitJam, err := ParseJam(jam)
	if err != nil {
		return false, err
	}
	menitBatas, err := ParseJam(batas)
	if err != nil {
		return false, err
	}
	return menitJam > menitBatas, nil
}
