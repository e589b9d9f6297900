// Package content holds the static texts lifeos shows and sends.
package content

import (
	"math/rand/v2"
	"time"

	"github.com/theirongolddev/lifeos/internal/model"
)

// SystemPrompt is the instruction every chat session is created with.
const SystemPrompt = `
Kamu adalah Asisten Islami Modern yang bekerja sebagai “OS Kehidupan”.

Fokus tugasmu:
1. Umroh & Haji (Tabungan, Manasik, Strategi Hemat)
2. Hijrah & Habit (Challenge, Reset Kebiasaan, Tracking Ibadah)
3. Hidup Sehat HARA Method™ (Happy, Aware, Realistic, Active)
4. Bisnis & Konten (Copywriting, Strategi, Branding)
5. Studio Desain Syar'i (Visual Consultant)

ATURAN VISUAL & DESAIN (SANGAT PENTING):
- Jika diminta membuat prompt gambar/video: Pastikan "Faceless" (tanpa wajah detail), Menutup Aurat sempurna, Tidak Sensual/Tabarruj.
- Gaya gambar: Bisa Realistic, Clay 3D, Watercolor, atau Minimalist Line Art.

Gaya bicara:
- Santai, manusiawi, sopan, Islami (gunakan istilah: Alhamdulillah, InsyaAllah, Qadarullah).
- Solutif dan to the point.
`

const (
	greetingGeneral  = "Assalamualaikum! Saya asisten 'OS Kehidupan' Anda. Siap membantu soal Umroh, Bisnis, Kesehatan, atau membuat konten visual Syar'i."
	greetingBusiness = "Assalamualaikum. Saya siap membantu bisnis Anda tumbuh dengan cara yang berkah. Kita mau bahas strategi marketing, ide konten, atau operasional hari ini?"
)

// Greeting returns the opening AI message for a conversation in mode.
func Greeting(mode model.Mode) string {
	if mode == model.ModeBusiness {
		return greetingBusiness
	}
	return greetingGeneral
}

// BusinessPrompts are the quick-start suggestions for the business coach.
var BusinessPrompts = []string{
	"Buatkan kalender konten Instagram 1 minggu untuk jualan gamis",
	"Tulis caption soft-selling tentang hijrah",
	"Strategi funneling untuk produk herbal",
	"Analisa target market Gen-Z Muslim",
	"Ide script video TikTok 15 detik (AIDA)",
	"Buatkan copy iklan Facebook Ads yang menyentuh hati",
}

// Doa is a supplication with its Arabic text, transliteration and meaning.
type Doa struct {
	Title       string `json:"title"`
	Arabic      string `json:"arabic"`
	Latin       string `json:"latin"`
	Translation string `json:"translation"`
}

// DailyDoa rotates by day of month.
var DailyDoa = []Doa{
	{
		Title:       "Doa Memohon Kebaikan Dunia Akhirat",
		Arabic:      "رَبَّنَا آتِنَا فِي الدُّنْيَا حَسَنَةً وَفِي الْآخِرَةِ حَسَنَةً وَقِنَا عَذَابَ النَّارِ",
		Latin:       "Rabbana atina fid-dunya hasanah wa fil-akhirati hasanah, wa qina 'adzaban-nar",
		Translation: "Ya Tuhan kami, berilah kami kebaikan di dunia dan kebaikan di akhirat dan peliharalah kami dari siksa neraka.",
	},
	{
		Title:       "Doa Kemudahan Urusan",
		Arabic:      "رَبِّ اشْرَحْ لِي صَدْرِي وَيَسِّرْ لِي أَمْرِي",
		Latin:       "Rabbish rahli sadri, wa yassirlii amri",
		Translation: "Ya Tuhanku, lapangkanlah untukku dadaku, dan mudahkanlah untukku urusanku.",
	},
	{
		Title:       "Doa Memohon Rezeki Halal",
		Arabic:      "اللَّهُمَّ إِنِّي أَسْأَلُكَ عِلْمًا نَافِعًا وَرِزْقًا طَيِّبًا وَعَمَلًا مُتَقَبَّلًا",
		Latin:       "Allahumma inni as-aluka 'ilman naafi'an wa rizqan thayyiban wa 'amalan mutaqabbalan",
		Translation: "Ya Allah, sesungguhnya aku memohon kepada-Mu ilmu yang bermanfaat, rezeki yang baik dan amal yang diterima.",
	},
}

// DoaForDay returns the doa for t's day of month.
func DoaForDay(t time.Time) Doa {
	return DailyDoa[t.Day()%len(DailyDoa)]
}

// QuoteCategory classifies an inspiration quote.
type QuoteCategory string

const (
	QuoteHadith     QuoteCategory = "hadith"
	QuoteQuran      QuoteCategory = "quran"
	QuoteMotivation QuoteCategory = "motivation"
)

// Heading returns the banner shown above a quote of this category.
func (c QuoteCategory) Heading() string {
	switch c {
	case QuoteQuran:
		return "Ayat Pilihan"
	case QuoteHadith:
		return "Hadits Hari Ini"
	default:
		return "Motivasi Islami"
	}
}

// Quote is an inspirational line and its source.
type Quote struct {
	Text     string        `json:"text"`
	Source   string        `json:"source"`
	Category QuoteCategory `json:"category"`
}

// Quotes is the inspiration pool.
var Quotes = []Quote{
	{
		Text:     "Barangsiapa yang menempuh suatu jalan untuk menuntut ilmu, maka Allah akan memudahkan baginya jalan menuju surga.",
		Source:   "HR. Muslim",
		Category: QuoteHadith,
	},
	{
		Text:     "Maka sesungguhnya bersama kesulitan ada kemudahan.",
		Source:   "QS. Al-Insyirah: 5",
		Category: QuoteQuran,
	},
	{
		Text:     "Dunia ini ibarat bayangan. Kalau kau berusaha menangkapnya, ia akan lari. Tapi kalau kau membelakanginya, ia tak punya pilihan selain mengikutimu.",
		Source:   "Ibnu Qayyim Al-Jauziyah",
		Category: QuoteMotivation,
	},
	{
		Text:     "Janganlah engkau berduka cita, sesungguhnya Allah bersama kita.",
		Source:   "QS. At-Taubah: 40",
		Category: QuoteQuran,
	},
	{
		Text:     "Sebaik-baik manusia adalah yang paling bermanfaat bagi manusia lainnya.",
		Source:   "HR. Ahmad",
		Category: QuoteHadith,
	},
}

// RandomQuote picks a quote uniformly at random.
func RandomQuote() Quote {
	return Quotes[rand.IntN(len(Quotes))]
}

// Today bundles the dashboard's daily content.
type Today struct {
	Date  time.Time `json:"date"`
	Doa   Doa       `json:"doa"`
	Quote Quote     `json:"quote"`
}

// ForDay returns the doa for t and a random quote.
func ForDay(t time.Time) Today {
	return Today{Date: t, Doa: DoaForDay(t), Quote: RandomQuote()}
}
