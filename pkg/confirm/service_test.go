package confirm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sulaimaniyah/undangan/pkg/confirm"
	"github.com/sulaimaniyah/undangan/pkg/domain"
)

type stubGenerator struct {
	text   string
	err    error
	panics bool
	block  bool

	calls  int
	model  string
	prompt string
}

func (g *stubGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	g.calls++
	g.model = model
	g.prompt = prompt
	if g.panics {
		panic("client exploded")
	}
	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.text, g.err
}

func TestConfirm_Generated(t *testing.T) {
	gen := &stubGenerator{text: "  Terima kasih Bapak Andi, sampai jumpa!  "}
	svc := confirm.NewService(gen)

	out := svc.Confirm(context.Background(), domain.FormState{Name: "Andi", Attending: domain.AttendanceYes})

	assert.True(t, out.Succeeded)
	assert.Equal(t, "Terima kasih Bapak Andi, sampai jumpa!", out.Message)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, confirm.DefaultModel, gen.model)
	assert.Contains(t, gen.prompt, "The guest's name is Andi.")
	assert.Contains(t, gen.prompt, "They have RSVP'd 'Hadir'.")
}

func TestConfirm_Fallback(t *testing.T) {
	want := "Terima kasih, Siti! Konfirmasi Anda telah kami terima. Kami menantikan kehadiran Anda."
	siti := domain.FormState{Name: "Siti", Attending: domain.AttendanceNo}

	tests := []struct {
		name string
		gen  *stubGenerator
	}{
		{name: "transport error", gen: &stubGenerator{err: errors.New("connection refused")}},
		{name: "empty text", gen: &stubGenerator{text: "   "}},
		{name: "panic", gen: &stubGenerator{panics: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := confirm.NewService(tt.gen).Confirm(context.Background(), siti)
			assert.False(t, out.Succeeded)
			assert.Equal(t, want, out.Message)
			assert.Equal(t, 1, tt.gen.calls, "single attempt, no retry")
			assert.Contains(t, tt.gen.prompt, "'Berhalangan'")
		})
	}
}

func TestConfirm_NilGenerator(t *testing.T) {
	out := confirm.NewService(nil).Confirm(context.Background(), domain.FormState{Name: "Budi", Attending: domain.AttendanceYes})
	assert.False(t, out.Succeeded)
	assert.Equal(t, confirm.FallbackMessage("Budi"), out.Message)
}

func TestConfirm_Timeout(t *testing.T) {
	gen := &stubGenerator{block: true}
	svc := confirm.NewService(gen, confirm.WithTimeout(20*time.Millisecond))

	start := time.Now()
	out := svc.Confirm(context.Background(), domain.FormState{Name: "Rina", Attending: domain.AttendanceYes})

	assert.False(t, out.Succeeded)
	assert.Equal(t, confirm.FallbackMessage("Rina"), out.Message)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestConfirm_WithModel(t *testing.T) {
	gen := &stubGenerator{text: "ok"}
	svc := confirm.NewService(gen, confirm.WithModel("gpt-4o-mini"))
	svc.Confirm(context.Background(), domain.FormState{Name: "X", Attending: domain.AttendanceYes})

	require.Equal(t, "gpt-4o-mini", gen.model)
	assert.Equal(t, "gpt-4o-mini", svc.Model())
}

func TestPrompt(t *testing.T) {
	p := confirm.Prompt(domain.FormState{Name: "Dewi", Attending: domain.AttendanceNo})
	assert.Equal(t,
		"Generate a short, warm, and polite thank-you message in Indonesian for an event RSVP. "+
			"The guest's name is Dewi. They have RSVP'd 'Berhalangan'. Keep it under 50 words. "+
			"Example: \"Terima kasih Bapak/Ibu Dewi, konfirmasi Anda telah kami terima. Kami menantikan kehadiran Anda.\"",
		p)
}
