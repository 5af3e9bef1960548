package pricing

import "testing"

func TestPctVsRRP(t *testing.T) {
	cases := []struct {
		name  string
		price *float64
		rrp   *float64
		want  *float64
	}{
		{name: "nil_price", price: nil, rrp: fp(100), want: nil},
		{name: "nil_rrp", price: fp(90), rrp: nil, want: nil},
		{name: "zero_rrp", price: fp(90), rrp: fp(0), want: nil},
		{name: "below_rrp", price: fp(90), rrp: fp(100), want: fp(-10.0)},
		{name: "above_rrp_rounds", price: fp(104.99), rrp: fp(89.99), want: fp(16.7)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PctVsRRP(tc.price, tc.rrp)
			switch {
			case tc.want == nil && got != nil:
				t.Fatalf("expected nil, got %f", *got)
			case tc.want != nil && got == nil:
				t.Fatalf("expected %f, got nil", *tc.want)
			case tc.want != nil && *got != *tc.want:
				t.Fatalf("got %f, want %f", *got, *tc.want)
			}
		})
	}
}

func TestRounding(t *testing.T) {
	if Round1(16.668) != 16.7 {
		t.Fatalf("Round1(16.668)=%f", Round1(16.668))
	}
	if Round2(95.185) != 95.19 {
		t.Fatalf("Round2(95.185)=%f", Round2(95.185))
	}
	if Round4(0.123456) != 0.1235 {
		t.Fatalf("Round4(0.123456)=%f", Round4(0.123456))
	}
}
