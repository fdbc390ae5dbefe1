package safe

import (
	"math"
	"testing"
)

func TestUint32(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		want    uint32
		wantErr bool
	}{
		{name: "zero", n: 0, want: 0},
		{name: "typical sequence count", n: 42, want: 42},
		{name: "negative length is invalid", n: -1, wantErr: true},
		{name: "uint32 boundary ok", n: math.MaxUint32, want: math.MaxUint32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Uint32(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Uint32(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Fatalf("Uint32(%d) = %d, want %d", tt.n, got, tt.want)
			}
		})
	}
}
