package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

var languageSeeds = []string{
	"",
	"x = 1\n",
	"test = \"Hello\" + \"World\"\n",
	"function f(x, y::Int; z=1)\nreturn x + y\nend\n",
	"f(x) = x * 2\n",
	"if VERSION >= v\"0.4.0\"\nnewapi()\nelse\noldapi()\nend\n",
	"if true\nx = 1\nelse\ny = 2\nend\n",
	"d = { :a=>1, :b=>2, :a=>3 }\n",
	"d = [ \"k\"=>1, \"j\"=>2 ]\n",
	"for i = 10:-1:1\nprintln(i)\nend\n",
	"while x < 10\nx = x + 1\nend\n",
	"type Point\nx\ny\nfunction Point(x, y)\nnew(x, y)\nend\nend\n",
	"module M\nusing Base.Test\nend\n",
	"lintpragma(\"Ignore unused tmp\")\ntmp = 1\n",
	"@custom macro_arg\n",
	"s = \"esc \\\" aped\"\n# comment\n#= block\ncomment =#\n",
	"α = 1:2:9\n",
	"local x\nglobal y\nconst z = 3\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxFuzzInput {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxFuzzInput]...)
}
