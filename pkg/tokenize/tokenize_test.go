package tokenize_test

import (
	"testing"

	"github.com/luisbebop/histline/pkg/charclass"
	. "github.com/luisbebop/histline/pkg/tokenize"
	"github.com/luisbebop/histline/pkg/tt"
)

var defaultDelims = charclass.NewRuneSet(charclass.DefaultWordDelimiters)

func TestWords(t *testing.T) {
	tt.Test(t, tt.Fn("Words", Words), tt.Table{
		tt.Args("a  b\tc", defaultDelims).Rets([]string{"a", "b", "c"}),
		tt.Args("", defaultDelims).Rets([]string(nil)),
		tt.Args("", Chars("")).Rets([]string(nil)),
		tt.Args("   ", defaultDelims).Rets([]string(nil)),
		tt.Args(" ls -l;echo x>y ", defaultDelims).
			Rets([]string{"ls", "-l", "echo", "x", "y"}),
		tt.Args("a:b::c", Chars(":")).Rets([]string{"a", "b", "c"}),
		tt.Args("no delimiters here", nil).Rets([]string{"no delimiters here"}),
		tt.Args("héllo wörld", defaultDelims).Rets([]string{"héllo", "wörld"}),
	})
}

func TestSpans(t *testing.T) {
	var got []Span
	for span := range Spans("ab  cd", Chars(" ")) {
		got = append(got, span)
	}
	want := []Span{{0, 2}, {4, 6}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Spans -> %v, want %v", got, want)
	}
}

func TestTokenize_Restartable(t *testing.T) {
	seq := Tokenize("x y z", defaultDelims)
	for pass := 0; pass < 2; pass++ {
		var words []string
		for w := range seq {
			words = append(words, w)
		}
		if len(words) != 3 || words[0] != "x" || words[2] != "z" {
			t.Errorf("pass %d got %v", pass, words)
		}
	}
}

func TestTokenize_EarlyStop(t *testing.T) {
	n := 0
	for range Tokenize("a b c d", defaultDelims) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("got %d iterations, want 2", n)
	}
}

func TestSpanAt(t *testing.T) {
	tt.Test(t, tt.Fn("SpanAt", SpanAt), tt.Table{
		tt.Args("echo !!", defaultDelims, 5).Rets(Span{5, 7}, true),
		tt.Args("echo !!", defaultDelims, 0).Rets(Span{0, 4}, true),
		tt.Args("echo !!", defaultDelims, 4).Rets(Span{}, false),
		tt.Args("echo", defaultDelims, 10).Rets(Span{}, false),
	})
}
