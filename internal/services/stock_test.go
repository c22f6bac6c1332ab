package services

import "testing"

func TestDeductAvailableQuantity(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		qty       int
		wantOK    bool
		wantStock int
	}{
		{name: "déduction simple", stock: 10, qty: 3, wantOK: true, wantStock: 7},
		{name: "déduction totale", stock: 5, qty: 5, wantOK: true, wantStock: 0},
		{name: "stock insuffisant", stock: 2, qty: 3, wantOK: false, wantStock: 2},
		{name: "quantité nulle est un no-op", stock: 4, qty: 0, wantOK: true, wantStock: 4},
		{name: "quantité négative est un no-op", stock: 4, qty: -2, wantOK: true, wantStock: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			listing := seedListing(t, db, tt.stock, 1500)

			ok, err := DeductAvailableQuantity(db, listing.ID, tt.qty)
			if err != nil {
				t.Fatalf("erreur inattendue: %v", err)
			}
			if ok != tt.wantOK {
				t.Errorf("ok = %v, attendu %v", ok, tt.wantOK)
			}
			if got := reloadListing(t, db, listing.ID).AvailableQuantity; got != tt.wantStock {
				t.Errorf("stock = %d, attendu %d", got, tt.wantStock)
			}
		})
	}
}

func TestDeductAvailableQuantityUnknownListing(t *testing.T) {
	db := newTestDB(t)

	ok, err := DeductAvailableQuantity(db, 9999, 1)
	if err != nil {
		t.Fatalf("erreur inattendue: %v", err)
	}
	if ok {
		t.Error("déduction sur annonce inconnue devrait échouer")
	}
}

func TestRestoreAvailableQuantity(t *testing.T) {
	db := newTestDB(t)
	listing := seedListing(t, db, 3, 1500)

	if err := RestoreAvailableQuantity(db, listing.ID, 4); err != nil {
		t.Fatalf("erreur inattendue: %v", err)
	}
	if got := reloadListing(t, db, listing.ID).AvailableQuantity; got != 7 {
		t.Errorf("stock = %d, attendu 7", got)
	}

	// qty ≤ 0 ne touche à rien
	if err := RestoreAvailableQuantity(db, listing.ID, 0); err != nil {
		t.Fatalf("erreur inattendue: %v", err)
	}
	if got := reloadListing(t, db, listing.ID).AvailableQuantity; got != 7 {
		t.Errorf("stock = %d, attendu 7", got)
	}
}
