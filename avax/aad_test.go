package avax

import "testing"

func TestAssetAmountSpendCapsAtAmountThenBurn(t *testing.T) {
	// S3: two UTXOs of 600 and 500, fee 100, target amount 1000.
	aa := &AssetAmount{Amount: 1000, Burn: 100}
	aa.Spend(600)
	aa.Spend(500)

	if aa.Spent != 1000 {
		t.Fatalf("Spent = %d, want 1000", aa.Spent)
	}
	if aa.Burned != 100 {
		t.Fatalf("Burned = %d, want 100", aa.Burned)
	}
	if change := aa.Change(); change != 0 {
		t.Fatalf("Change() = %d, want 0", change)
	}
	if !aa.Satisfied() {
		t.Fatal("expected Satisfied() after drawing 1100 against amount=1000 burn=100")
	}
}

func TestAssetAmountSpendExactNoChange(t *testing.T) {
	// S4: single UTXO of 100, amount 90, fee 10.
	aa := &AssetAmount{Amount: 90, Burn: 10}
	aa.Spend(100)

	if aa.Spent != 90 {
		t.Fatalf("Spent = %d, want 90", aa.Spent)
	}
	if aa.Burned != 10 {
		t.Fatalf("Burned = %d, want 10", aa.Burned)
	}
	if change := aa.Change(); change != 0 {
		t.Fatalf("Change() = %d, want 0", change)
	}
}

func TestAssetAmountSpendProducesChange(t *testing.T) {
	aa := &AssetAmount{Amount: 50, Burn: 10}
	aa.Spend(100)

	if aa.Spent != 50 {
		t.Fatalf("Spent = %d, want 50", aa.Spent)
	}
	if aa.Burned != 50 {
		t.Fatalf("Burned = %d, want 50", aa.Burned)
	}
	if change := aa.Change(); change != 40 {
		t.Fatalf("Change() = %d, want 40", change)
	}
}

func TestAssetAmountSpendAccumulatesAcrossCalls(t *testing.T) {
	aa := &AssetAmount{Amount: 30, Burn: 0}
	aa.Spend(10)
	if aa.Satisfied() {
		t.Fatal("should not be satisfied after only 10 of 30")
	}
	aa.Spend(10)
	aa.Spend(10)
	if !aa.Satisfied() {
		t.Fatal("should be satisfied after 30 of 30")
	}
	if aa.Change() != 0 {
		t.Fatalf("Change() = %d, want 0", aa.Change())
	}
}

func TestAADCanCompleteAcrossMultipleAssets(t *testing.T) {
	aad := NewAAD(nil, nil, nil)
	avax := mustID(t, 1)
	other := mustID(t, 2)
	aad.AddAssetAmount(avax, 100, 10)
	aad.AddAssetAmount(other, 50, 0)

	if aad.CanComplete() {
		t.Fatal("should not be complete before any draws")
	}

	aa1, _ := aad.AssetAmount(avax)
	aa1.Spend(110)
	if aad.CanComplete() {
		t.Fatal("should not be complete until the other asset is also satisfied")
	}

	aa2, _ := aad.AssetAmount(other)
	aa2.Spend(50)
	if !aad.CanComplete() {
		t.Fatal("expected CanComplete once both assets are satisfied")
	}
}
