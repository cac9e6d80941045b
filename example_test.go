package undangan_test

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/sulaimaniyah/undangan"
	"github.com/sulaimaniyah/undangan/internal/config"
	"github.com/sulaimaniyah/undangan/pkg/adapters/memory"
	"github.com/sulaimaniyah/undangan/pkg/confirm"
	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/session"
)

// ExampleNew shows the flow driven directly through the session manager,
// without a text-generation backend.
func ExampleNew() {
	cfg := config.DefaultConfig()
	cfg.Generator.Provider = config.ProviderNone
	cfg.Metrics.Enabled = false

	app, err := undangan.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	ctx := context.Background()
	f, err := app.Manager.Open(ctx, "guest-1", url.Values{"name": {"Budi Santoso"}})
	if err != nil {
		log.Fatal(err)
	}

	_ = f.Update(domain.FieldName, "Siti")
	_ = f.Update(domain.FieldAttending, "no")
	outcome, err := f.Submit(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(f.View().Recipient.Name)
	fmt.Println(f.View().State)
	fmt.Println(outcome.Message)
	// Output:
	// Budi Santoso
	// confirmed
	// Terima kasih, Siti! Konfirmasi Anda telah kami terima. Kami menantikan kehadiran Anda.
}

// ExampleWithStore injects a store and confirmer without going through config.
func ExampleWithStore() {
	store := memory.NewStore()
	mgr := session.NewManager(store, confirm.NewService(nil))
	defer mgr.CloseAll()

	ctx := context.Background()
	if _, err := mgr.Open(ctx, "guest-2", nil); err != nil {
		log.Fatal(err)
	}
	ids, _ := store.List(ctx)
	fmt.Println(ids)
	// Output: [guest-2]
}
