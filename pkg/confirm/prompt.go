package confirm

import (
	"fmt"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

// DefaultModel is the generation model requested when none is configured.
const DefaultModel = "gemini-2.5-flash"

const promptTemplate = "Generate a short, warm, and polite thank-you message in Indonesian for an event RSVP. " +
	"The guest's name is %[1]s. They have RSVP'd '%[2]s'. Keep it under 50 words. " +
	"Example: \"Terima kasih Bapak/Ibu %[1]s, konfirmasi Anda telah kami terima. Kami menantikan kehadiran Anda.\""

const fallbackTemplate = "Terima kasih, %s! Konfirmasi Anda telah kami terima. Kami menantikan kehadiran Anda."

// Prompt renders the generation prompt for a form.
func Prompt(f domain.FormState) string {
	return fmt.Sprintf(promptTemplate, f.Name, f.Attending.Label())
}

// FallbackMessage renders the templated message used when generation fails.
func FallbackMessage(name string) string {
	return fmt.Sprintf(fallbackTemplate, name)
}
