package whatsapp

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// BookingConfirmationText сообщение клиента мастерской после создания бронирования
func BookingConfirmationText(b *domain.Booking, workshopName string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Halo %s, saya sudah melakukan booking servis.\n", workshopName)
	fmt.Fprintf(&sb, "No. Booking: #%d\n", b.ID)
	fmt.Fprintf(&sb, "Nama: %s\n", b.CustomerName)
	fmt.Fprintf(&sb, "Plat Nomor: %s (%s)\n", b.PlateNumber, b.VehicleType)
	fmt.Fprintf(&sb, "Tanggal: %s\n", b.BookingDate.Format(domain.DateFormat))

	if b.CheckOnly {
		sb.WriteString("Layanan: Cek kendaraan saja\n")
	} else {
		fmt.Fprintf(&sb, "Layanan: %s\n", strings.Join(b.ServiceNames(), ", "))
		fmt.Fprintf(&sb, "Estimasi Total: %s\n", FormatRupiah(b.Total))
	}
	if b.PromoCode != nil {
		fmt.Fprintf(&sb, "Promo: %s\n", *b.PromoCode)
	}

	sb.WriteString("Terima kasih.")
	return sb.String()
}

// ReminderText напоминание клиенту о плановом обслуживании
func ReminderText(c *domain.Customer, workshopName string, now time.Time) string {
	if c.LastServiceDate == nil {
		return fmt.Sprintf(
			"Halo %s, kendaraan %s belum pernah servis di %s. Yuk jadwalkan servis pertama Anda!",
			c.Name, c.PlateNumber, workshopName,
		)
	}

	days := int(now.Sub(*c.LastServiceDate).Hours() / 24)
	return fmt.Sprintf(
		"Halo %s, kendaraan %s terakhir servis di %s pada %s (%d hari yang lalu). Sudah waktunya servis berkala, silakan booking kembali.",
		c.Name, c.PlateNumber, workshopName, c.LastServiceDate.Format(domain.DateFormat), days,
	)
}

// FormatRupiah форматирует сумму как "Rp 1.250.000"
func FormatRupiah(amount float64) string {
	n := int64(amount + 0.5)
	if amount < 0 {
		n = int64(amount - 0.5)
	}

	negative := n < 0
	if negative {
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	var sb strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}

	if negative {
		return "-Rp " + sb.String()
	}
	return "Rp " + sb.String()
}
