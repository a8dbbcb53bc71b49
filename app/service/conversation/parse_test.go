package conversation

import (
	"reflect"
	"testing"
)

func TestParseOrderPairs(t *testing.T) {
	tests := []struct {
		input string
		want  []orderPair
	}{
		{
			"2 x hamburguesa y 1 x papas",
			[]orderPair{{2, "hamburguesa"}, {1, "papas"}},
		},
		{
			"quiero pedir 3 x tacos, 2 x refresco por favor",
			[]orderPair{{3, "tacos"}, {2, "refresco por favor"}},
		},
		{
			"2x papas",
			[]orderPair{{2, "papas"}},
		},
		{
			"1 x flan casero y nada más",
			[]orderPair{{1, "flan casero"}},
		},
		{
			// "y" only terminates as a standalone word
			"2 x pollo royal",
			[]orderPair{{2, "pollo royal"}},
		},
		{
			"12 x alitas picantes",
			[]orderPair{{12, "alitas picantes"}},
		},
		{
			// quantity zero is parsed here and rejected by the ledger
			"0 x flan casero",
			[]orderPair{{0, "flan casero"}},
		},
		{
			"quiero pedir algo rico",
			nil,
		},
		{
			"2 x ",
			nil,
		},
	}

	for _, tt := range tests {
		got := parseOrderPairs(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseOrderPairs(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
