package service

import (
	"errors"
	"testing"
	"time"

	"simagang-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInHadirDanTelat(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAbsensiService(t, db)
	svc.now = jamTetap(time.Date(2025, 1, 15, 7, 30, 0, 0, time.UTC))

	tepat := buatUser(t, db, "Budi", "100001", model.RoleUser)
	pasBatas := buatUser(t, db, "Siti", "100002", model.RoleUser)
	terlambat := buatUser(t, db, "Andi", "100003", model.RoleUser)

	absensi, err := svc.CheckIn(CheckInRequest{UserID: tepat.ID, Timestamp: "2025-01-15 07:30"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusHadir, absensi.Status)
	assert.Equal(t, "2025-01-15", absensi.Tanggal)
	assert.Equal(t, "07:30", absensi.JamMasuk)
	assert.Equal(t, "08:00", absensi.BatasTelat)
	assert.Equal(t, "01", absensi.Bulan)
	assert.Equal(t, "2025", absensi.Tahun)

	// Tepat di batas masih Hadir
	absensi, err = svc.CheckIn(CheckInRequest{UserID: pasBatas.ID, Timestamp: "2025-01-15 08:00"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusHadir, absensi.Status)

	absensi, err = svc.CheckIn(CheckInRequest{UserID: terlambat.ID, Timestamp: "2025-01-15 08:01"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusTelat, absensi.Status)
}

func TestCheckInTanpaTimestampPakaiJamServer(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAbsensiService(t, db)
	svc.now = jamTetap(time.Date(2025, 1, 15, 8, 45, 0, 0, time.UTC))

	user := buatUser(t, db, "Budi", "100001", model.RoleUser)

	absensi, err := svc.CheckIn(CheckInRequest{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", absensi.Tanggal)
	assert.Equal(t, "08:45", absensi.JamMasuk)
	assert.Equal(t, model.StatusTelat, absensi.Status)
	assert.Equal(t, model.ModalitasFoto, absensi.Modalitas)
}

func TestCheckInDuplikatDitolak(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAbsensiService(t, db)

	user := buatUser(t, db, "Budi", "100001", model.RoleUser)

	_, err := svc.CheckIn(CheckInRequest{UserID: user.ID, Timestamp: "2025-01-15 07:30"})
	require.NoError(t, err)

	// Check-in kedua di tanggal sama, jalur apa pun, harus ditolak
	_, err = svc.CheckIn(CheckInRequest{UserID: user.ID, Timestamp: "2025-01-15 09:00"})
	assert.ErrorIs(t, err, ErrSudahAbsen)

	// Tanggal lain tetap boleh
	_, err = svc.CheckIn(CheckInRequest{UserID: user.ID, Timestamp: "2025-01-16 07:30"})
	assert.NoError(t, err)
}

func TestCheckInTimestampTidakValid(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAbsensiService(t, db)

	user := buatUser(t, db, "Budi", "100001", model.RoleUser)

	_, err := svc.CheckIn(CheckInRequest{UserID: user.ID, Timestamp: "kemarin sore"})
	assert.ErrorIs(t, err, ErrFormatWaktuTidakValid)
}

func TestCheckOut(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAbsensiService(t, db)

	pemilik := buatUser(t, db, "Budi", "100001", model.RoleUser)
	lain := buatUser(t, db, "Siti", "100002", model.RoleUser)
	admin := buatUser(t, db, "Admin", "000001", model.RoleAdmin)

	absensi, err := svc.CheckIn(CheckInRequest{UserID: pemilik.ID, Timestamp: "2025-01-15 07:30"})
	require.NoError(t, err)

	// User lain (bukan admin) tidak boleh
	_, err = svc.CheckOut(lain.ID, model.RoleUser, absensi.ID, "2025-01-15 16:00", "")
	assert.ErrorIs(t, err, ErrBukanPemilikAbsensi)

	hasil, err := svc.CheckOut(pemilik.ID, model.RoleUser, absensi.ID, "2025-01-15 16:00", "")
	require.NoError(t, err)
	assert.Equal(t, "16:00", hasil.JamPulang)

	// Check-out dua kali ditolak
	_, err = svc.CheckOut(pemilik.ID, model.RoleUser, absensi.ID, "2025-01-15 17:00", "")
	assert.ErrorIs(t, err, ErrSudahCheckOut)

	_, err = svc.CheckOut(pemilik.ID, model.RoleUser, 9999, "2025-01-15 16:00", "")
	assert.ErrorIs(t, err, ErrAbsensiTidakDitemukan)

	// Admin boleh check-out milik orang lain
	milikLain, err := svc.CheckIn(CheckInRequest{UserID: lain.ID, Timestamp: "2025-01-15 07:45"})
	require.NoError(t, err)
	hasil, err = svc.CheckOut(admin.ID, model.RoleAdmin, milikLain.ID, "2025-01-15 16:30", "")
	require.NoError(t, err)
	assert.Equal(t, "16:30", hasil.JamPulang)
}

func TestCheckOutSebelumCheckIn(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAbsensiService(t, db)

	user := buatUser(t, db, "Budi", "100001", model.RoleUser)

	// Record Izin buatan admin: belum pernah check-in
	izin := model.Absensi{
		UserID:  user.ID,
		Tanggal: "2025-01-15",
		Status:  model.StatusIzin,
		Bulan:   "01",
		Tahun:   "2025",
	}
	require.NoError(t, db.Create(&izin).Error)

	_, err := svc.CheckOut(user.ID, model.RoleUser, izin.ID, "2025-01-15 16:00", "")
	assert.ErrorIs(t, err, ErrBelumCheckIn)
}

func TestOverride(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAbsensiService(t, db)

	user := buatUser(t, db, "Budi", "100001", model.RoleUser)
	absensi, err := svc.CheckIn(CheckInRequest{UserID: user.ID, Timestamp: "2025-01-15 08:30"})
	require.NoError(t, err)
	require.Equal(t, model.StatusTelat, absensi.Status)

	_, err = svc.Override(absensi.ID, "Bolos", "")
	assert.ErrorIs(t, err, ErrStatusAbsensiTidakValid)

	// HariLibur tidak boleh dipasang lewat koreksi manual
	_, err = svc.Override(absensi.ID, model.StatusHariLibur, "")
	assert.ErrorIs(t, err, ErrStatusAbsensiTidakValid)

	_, err = svc.Override(absensi.ID, model.StatusHadir, "jam delapan")
	assert.ErrorIs(t, err, ErrFormatJamTidakValid)

	hasil, err := svc.Override(absensi.ID, model.StatusHadir, "7.55")
	require.NoError(t, err)
	assert.Equal(t, model.StatusHadir, hasil.Status)
	assert.Equal(t, "07:55", hasil.JamMasuk)

	_, err = svc.Override(9999, model.StatusHadir, "")
	assert.ErrorIs(t, err, ErrAbsensiTidakDitemukan)
}

func TestSetBatasTelatDanSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAbsensiService(t, db)

	assert.Equal(t, BatasTelatDefault, svc.BatasTelat())

	_, err := svc.SetBatasTelat("pagi")
	assert.ErrorIs(t, err, ErrFormatJamTidakValid)

	normal, err := svc.SetBatasTelat("7.30")
	require.NoError(t, err)
	assert.Equal(t, "07:30", normal)
	assert.Equal(t, "07:30", svc.BatasTelat())

	// Snapshot: batas saat check-in ikut tersimpan di record
	user := buatUser(t, db, "Budi", "100001", model.RoleUser)
	absensi, err := svc.CheckIn(CheckInRequest{UserID: user.ID, Timestamp: "2025-01-15 07:45"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusTelat, absensi.Status)
	assert.Equal(t, "07:30", absensi.BatasTelat)

	// Mengubah batas setelahnya tidak mengklasifikasi ulang riwayat
	_, err = svc.SetBatasTelat("09:00")
	require.NoError(t, err)

	var tersimpan model.Absensi
	require.NoError(t, db.First(&tersimpan, absensi.ID).Error)
	assert.Equal(t, model.StatusTelat, tersimpan.Status)
	assert.Equal(t, "07:30", tersimpan.BatasTelat)
}

func TestTetapkanDanBatalkanHariLibur(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAbsensiService(t, db)

	sudahAbsen := buatUser(t, db, "Budi", "100001", model.RoleUser)
	belumAbsen := buatUser(t, db, "Siti", "100002", model.RoleUser)
	buatUser(t, db, "Admin", "000001", model.RoleAdmin)

	_, err := svc.CheckIn(CheckInRequest{UserID: sudahAbsen.ID, Timestamp: "2025-01-15 07:30"})
	require.NoError(t, err)

	_, err = svc.TetapkanHariLibur("15-01-2025", "Cuti Bersama")
	assert.ErrorIs(t, err, ErrFormatTanggalTidakValid)

	hasil, err := svc.TetapkanHariLibur("2025-01-15", "Cuti Bersama")
	require.NoError(t, err)
	assert.Equal(t, 1, hasil.Created) // Siti
	assert.Equal(t, 1, hasil.Updated) // Budi, record Hadir ditimpa
	assert.Equal(t, 2, hasil.Total)

	var jumlahLibur int64
	db.Model(&model.Absensi{}).
		Where("tanggal = ? AND status = ?", "2025-01-15", model.StatusHariLibur).
		Count(&jumlahLibur)
	assert.EqualValues(t, 2, jumlahLibur)

	// Admin tidak ikut dibuatkan record
	var total int64
	db.Model(&model.Absensi{}).Where("tanggal = ?", "2025-01-15").Count(&total)
	assert.EqualValues(t, 2, total)

	// Pengulangan idempoten: semua sudah jadi Updated
	hasil, err = svc.TetapkanHariLibur("2025-01-15", "Cuti Bersama")
	require.NoError(t, err)
	assert.Equal(t, 0, hasil.Created)
	assert.Equal(t, 2, hasil.Updated)

	// Pembatalan menghapus kalender dan seluruh record HariLibur tanggal itu
	dihapus, err := svc.BatalkanHariLibur("2025-01-15")
	require.NoError(t, err)
	assert.EqualValues(t, 2, dihapus)

	db.Model(&model.Absensi{}).Where("tanggal = ?", "2025-01-15").Count(&total)
	assert.EqualValues(t, 0, total)

	_ = belumAbsen
}

func TestCheckInSetelahHariLiburDibatalkan(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAbsensiService(t, db)

	user := buatUser(t, db, "Budi", "100001", model.RoleUser)

	// Libur ditetapkan sebelum user sempat absen, lalu dibatalkan
	_, err := svc.TetapkanHariLibur("2025-01-15", "Cuti Bersama")
	require.NoError(t, err)
	_, err = svc.BatalkanHariLibur("2025-01-15")
	require.NoError(t, err)

	// Record libur harus benar-benar keluar dari index (user_id, tanggal);
	// check-in di tanggal itu tidak boleh tertolak sebagai duplikat
	absensi, err := svc.CheckIn(CheckInRequest{UserID: user.ID, Timestamp: "2025-01-15 07:30"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusHadir, absensi.Status)
}

func TestTetapkanUlangHariLiburSetelahBatal(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAbsensiService(t, db)

	buatUser(t, db, "Budi", "100001", model.RoleUser)

	_, err := svc.TetapkanHariLibur("2025-01-15", "Cuti Bersama")
	require.NoError(t, err)
	_, err = svc.BatalkanHariLibur("2025-01-15")
	require.NoError(t, err)

	// Penetapan ulang tanggal yang sama harus membuat ulang kalender + record
	hasil, err := svc.TetapkanHariLibur("2025-01-15", "Libur Nasional")
	require.NoError(t, err)
	assert.Equal(t, 1, hasil.Created)

	// Kalender terlihat lagi lewat query biasa (dipakai kalkulator hari kerja)
	var libur model.HariLibur
	require.NoError(t, db.Where("tanggal = ?", "2025-01-15").First(&libur).Error)
	assert.Equal(t, "Libur Nasional", libur.Keterangan)
}

func TestCheckInSerentakHanyaSatuRecord(t *testing.T) {
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // SQLite: serialisasi koneksi, unique index yang memutuskan pemenang

	svc := newTestAbsensiService(t, db)
	user := buatUser(t, db, "Budi", "100001", model.RoleUser)

	hasil := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.CheckIn(CheckInRequest{UserID: user.ID, Timestamp: "2025-01-15 07:30"})
			hasil <- err
		}()
	}

	var sukses, ditolak int
	for i := 0; i < 2; i++ {
		switch err := <-hasil; {
		case err == nil:
			sukses++
		case errors.Is(err, ErrSudahAbsen):
			ditolak++
		default:
			t.Fatalf("error tak terduga: %v", err)
		}
	}
	assert.Equal(t, 1, sukses)
	assert.Equal(t, 1, ditolak)

	var jumlah int64
	db.Model(&model.Absensi{}).Where("user_id = ? AND tanggal = ?", user.ID, "2025-01-15").Count(&jumlah)
	assert.EqualValues(t, 1, jumlah)
}

func TestRiwayatDanStatusHariIni(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAbsensiService(t, db)
	svc.now = jamTetap(time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC))

	user := buatUser(t, db, "Budi", "100001", model.RoleUser)

	// Belum absen: record nil, batas tetap dikirim
	absensi, batas, err := svc.StatusHariIni(user.ID)
	require.NoError(t, err)
	assert.Nil(t, absensi)
	assert.Equal(t, BatasTelatDefault, batas)

	_, err = svc.CheckIn(CheckInRequest{UserID: user.ID, Timestamp: "2025-01-20 07:30"})
	require.NoError(t, err)
	_, err = svc.CheckIn(CheckInRequest{UserID: user.ID, Timestamp: "2025-02-03 07:30"})
	require.NoError(t, err)

	absensi, _, err = svc.StatusHariIni(user.ID)
	require.NoError(t, err)
	require.NotNil(t, absensi)
	assert.Equal(t, "2025-02-03", absensi.Tanggal)

	semua, err := svc.Riwayat(user.ID, "", "")
	require.NoError(t, err)
	assert.Len(t, semua, 2)
	assert.Equal(t, "2025-02-03", semua[0].Tanggal) // terbaru dulu

	januari, err := svc.Riwayat(user.ID, "01", "2025")
	require.NoError(t, err)
	require.Len(t, januari, 1)
	assert.Equal(t, "2025-01-20", januari[0].Tanggal)
}
