package ledger

import (
	"encoding/json"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    Money
		wantErr bool
	}{
		{"100.00", 10000, false},
		{"0.01", 1, false},
		{"1234.5", 123450, false},
		{"-60.00", -6000, false},
		{"0", 0, false},
		{"not-a-number", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{10000, "100.00"},
		{1, "0.01"},
		{-6000, "-60.00"},
		{0, "0.00"},
		{333333, "3333.33"},
	}

	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.m, got, tt.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(Money(12345))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "123.45" {
		t.Errorf("marshal: got %s, want 123.45", b)
	}

	var m Money
	if err := json.Unmarshal([]byte("123.45"), &m); err != nil {
		t.Fatal(err)
	}
	if m != 12345 {
		t.Errorf("unmarshal number: got %d", m)
	}
	if err := json.Unmarshal([]byte(`"67.89"`), &m); err != nil {
		t.Fatal(err)
	}
	if m != 6789 {
		t.Errorf("unmarshal string: got %d", m)
	}
}

func TestDivideEqually(t *testing.T) {
	tests := []struct {
		name   string
		amount Money
		n      int
		want   Money
	}{
		{"even", 30000, 3, 10000},
		{"repeating third", 10000, 3, 3333},
		{"rounds half up", 100, 8, 13}, // 12.5 satang
		{"single member", 777, 1, 777},
		{"zero members", 500, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.amount.DivideEqually(tt.n); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
