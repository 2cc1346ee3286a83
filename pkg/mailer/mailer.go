package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer mengirim notifikasi email. Pengiriman bersifat best-effort:
// pemanggil yang memutuskan apakah error diabaikan.
type Mailer struct {
	dialer   *gomail.Dialer
	pengirim string
}

// New mengembalikan nil jika host kosong (fitur email dimatikan).
func New(host string, port int, username, password, pengirim string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{
		dialer:   gomail.NewDialer(host, port, username, password),
		pengirim: pengirim,
	}
}

var namaBulan = [...]string{"", "Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember"}

func (m *Mailer) KirimHasilPenilaian(tujuan, nama string, bulan, tahun int, hasil float64) error {
	label := fmt.Sprintf("%d-%02d", tahun, bulan)
	if bulan >= 1 && bulan <= 12 {
		label = fmt.Sprintf("%s %d", namaBulan[bulan], tahun)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.pengirim)
	msg.SetHeader("To", tujuan)
	msg.SetHeader("Subject", fmt.Sprintf("Penilaian Kinerja %s", label))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Halo %s,\n\nPenilaian kinerja kamu untuk periode %s sudah difinalkan dengan nilai akhir %.2f.\n\nTerima kasih.",
		nama, label, hasil))

	return m.dialer.DialAndSend(msg)
}
