package extract_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"quizgen-service/internal/domain"
	"quizgen-service/internal/extract"
)

const twoQuestions = `[{"question":"2+2?","options":["3","4","5","6"],"answer":"4","explanation":"basic sum"},` +
	`{"question":"Capital of France?","options":["Paris","Rome"],"answer":"Paris"}]`

func twoRecords() []domain.MCQRecord {
	return []domain.MCQRecord{
		{Question: "2+2?", Options: []string{"3", "4", "5", "6"}, Answer: "4", Explanation: "basic sum"},
		{Question: "Capital of France?", Options: []string{"Paris", "Rome"}, Answer: "Paris"},
	}
}

func TestExtractScenarios(t *testing.T) {
	t.Run("fenced json block", func(t *testing.T) {
		in := "```json\n[{\"question\":\"2+2?\",\"options\":[\"3\",\"4\",\"5\",\"6\"],\"answer\":\"4\"}]\n```"
		got, err := extract.Extract(in)
		if err != nil {
			t.Fatalf("extract: %v", err)
		}
		want := []domain.MCQRecord{{Question: "2+2?", Options: []string{"3", "4", "5", "6"}, Answer: "4"}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	})

	t.Run("surrounding prose", func(t *testing.T) {
		in := "Here are your questions:\n[{\"question\":\"Capital of France?\",\"options\":[\"Paris\",\"Rome\"],\"answer\":\"Paris\"}]\nHope this helps!"
		got, err := extract.Extract(in)
		if err != nil {
			t.Fatalf("extract: %v", err)
		}
		if len(got) != 1 || got[0].Question != "Capital of France?" || got[0].Answer != "Paris" {
			t.Fatalf("unexpected records %+v", got)
		}
	})

	failures := []struct {
		name  string
		in    string
		kind  error
		index int
	}{
		{"no brackets", "no brackets here at all", extract.ErrNoArrayFound, -1},
		{"trailing comma", `[{"question":"X","options":["A","B",],"answer":"A"}]`, extract.ErrMalformedJSON, -1},
		{"answer not in options", `[{"question":"X","options":["A","B"],"answer":"C"}]`, extract.ErrAnswerNotInOptions, 0},
		{"single option", `[{"question":"X","options":["A"],"answer":"A"}]`, extract.ErrInvalidOptions, 0},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extract.Extract(tc.in)
			if got != nil {
				t.Fatalf("expected no records, got %+v", got)
			}
			assertParseError(t, err, tc.kind, tc.index)
		})
	}
}

func TestExtractStripsFences(t *testing.T) {
	want := twoRecords()
	inputs := map[string]string{
		"bare":            twoQuestions,
		"untagged fence":  "```\n" + twoQuestions + "\n```",
		"tagged fence":    "```json\n" + twoQuestions + "\n```",
		"uppercase tag":   "```JSON\n" + twoQuestions + "\n```\n",
		"multiple fences": "Intro\n```json\n" + twoQuestions + "\n```\nAnd a snippet:\n```text\nnothing here\n```",
		"inline fences":   "```" + twoQuestions + "```",
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			got, err := extract.Extract(in)
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestExtractToleratesProse(t *testing.T) {
	want := twoRecords()
	prefixes := []string{"", "Sure! ", "Here you go:\n\n", "Questions follow (all verified).\n"}
	suffixes := []string{"", "\nGood luck!", "\n\nLet me know if you need more.", " :)"}
	for _, p := range prefixes {
		for _, s := range suffixes {
			got, err := extract.Extract(p + twoQuestions + s)
			if err != nil {
				t.Fatalf("extract(%q...%q): %v", p, s, err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("prose %q/%q changed result: %+v", p, s, got)
			}
		}
	}
}

func TestExtractNoArray(t *testing.T) {
	inputs := []string{
		"",
		"just words",
		"an opening [ only",
		"a closing ] only",
		"reversed ] then [",
		"```json\n{\"question\":\"X\"}\n```",
	}
	for _, in := range inputs {
		_, err := extract.Extract(in)
		assertParseError(t, err, extract.ErrNoArrayFound, -1)
	}
}

func TestExtractMalformedJSON(t *testing.T) {
	inputs := []string{
		`[{"question":"X","options":["A","B"],"answer":"A",}]`,
		`[{question:"X","options":["A","B"],"answer":"A"}]`,
		`[{"question":"X","options":["A","B"],"answer":"A"}] see [note]`,
	}
	for _, in := range inputs {
		_, err := extract.Extract(in)
		assertParseError(t, err, extract.ErrMalformedJSON, -1)

		var pe *extract.ParseError
		errors.As(err, &pe)
		if pe.Err == nil || !strings.Contains(err.Error(), pe.Err.Error()) {
			t.Fatalf("expected underlying decoder message in %q", err.Error())
		}
	}
}

func TestExtractMissingFields(t *testing.T) {
	cases := []struct {
		in    string
		field string
	}{
		{`[{"options":["A","B"],"answer":"A"}]`, "question"},
		{`[{"question":"   ","options":["A","B"],"answer":"A"}]`, "question"},
		{`[{"question":7,"options":["A","B"],"answer":"A"}]`, "question"},
		{`[{"question":"X","answer":"A"}]`, "options"},
		{`[{"question":"X","options":null,"answer":"A"}]`, "options"},
		{`[{"question":"X","options":["A","B"]}]`, "answer"},
		{`[{"question":"X","options":["A","B"],"answer":""}]`, "answer"},
		{`["not an object"]`, "question"},
	}
	for _, tc := range cases {
		_, err := extract.Extract(tc.in)
		assertParseError(t, err, extract.ErrMissingField, 0)

		var pe *extract.ParseError
		errors.As(err, &pe)
		if pe.Field != tc.field {
			t.Fatalf("%s: expected field %q, got %q", tc.in, tc.field, pe.Field)
		}
	}
}

func TestExtractInvalidOptions(t *testing.T) {
	inputs := []string{
		`[{"question":"X","options":"A,B","answer":"A"}]`,
		`[{"question":"X","options":[],"answer":"A"}]`,
		`[{"question":"X","options":["A",2],"answer":"A"}]`,
	}
	for _, in := range inputs {
		_, err := extract.Extract(in)
		assertParseError(t, err, extract.ErrInvalidOptions, 0)
	}
}

func TestExtractAnswerMismatchDiagnostics(t *testing.T) {
	_, err := extract.Extract(`[{"question":"X","options":["Paris","Rome"],"answer":"paris"}]`)
	assertParseError(t, err, extract.ErrAnswerNotInOptions, 0)

	var pe *extract.ParseError
	errors.As(err, &pe)
	if pe.Answer != "paris" || !reflect.DeepEqual(pe.Options, []string{"Paris", "Rome"}) {
		t.Fatalf("expected answer and options in error, got %+v", pe)
	}
	if !strings.Contains(err.Error(), `"paris"`) || !strings.Contains(err.Error(), `"Rome"`) {
		t.Fatalf("expected diagnostics in message, got %q", err.Error())
	}
}

func TestExtractReportsFirstInvalidIndex(t *testing.T) {
	valid := `{"question":"Q","options":["A","B"],"answer":"A"}`
	answerBad := `{"question":"Q","options":["A","B"],"answer":"Z"}`
	optionsBad := `{"question":"Q","options":["A"],"answer":"A"}`

	for k := 0; k < 4; k++ {
		items := []string{valid, valid, valid, valid, optionsBad}
		items[k] = answerBad
		in := "[" + strings.Join(items, ",") + "]"

		_, err := extract.Extract(in)
		assertParseError(t, err, extract.ErrAnswerNotInOptions, k)
	}
}

func TestExtractPreservesOrderAndValues(t *testing.T) {
	in := `[{"question":" first ","options":[" a ","b"],"answer":" a "},` +
		`{"question":"second","options":["x","y","z"],"answer":"z","explanation":42},` +
		`{"question":"third","options":["m","n"],"answer":"n","extra":true}]`
	got, err := extract.Extract(in)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := []string{" first ", "second", "third"}
	for i, rec := range got {
		if rec.Question != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], rec.Question)
		}
		if !rec.HasOption(rec.Answer) {
			t.Fatalf("record %d answer %q missing from options %q", i, rec.Answer, rec.Options)
		}
	}
	if got[0].Answer != " a " {
		t.Fatalf("expected answer kept verbatim, got %q", got[0].Answer)
	}
	if got[1].Explanation != "" {
		t.Fatalf("expected non-string explanation dropped, got %q", got[1].Explanation)
	}
}

func TestExtractEmptyArray(t *testing.T) {
	got, err := extract.Extract("```json\n[]\n```")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func assertParseError(t *testing.T, err error, kind error, index int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil", kind)
	}
	if !errors.Is(err, extract.ErrParse) {
		t.Fatalf("expected parse failure, got %v", err)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
	var pe *extract.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Index != index {
		t.Fatalf("expected index %d, got %d (%v)", index, pe.Index, err)
	}
}

func TestExtractFenceMarkersAreRemovedEverywhere(t *testing.T) {
	// A fence marker swallows a glued tag, even inside a JSON string.
	in := "[{\"question\":\"Which fence opens Go code?\",\"options\":[\"```go\",\"```py\"],\"answer\":\"```go\"}]"
	_, err := extract.Extract(in)
	assertParseError(t, err, extract.ErrMissingField, 0)

	if got := extract.StripFences("```Hope this helps"); got != " this helps" {
		t.Fatalf("expected glued word removed with the fence, got %q", got)
	}
}

func TestExtractReplacesInvalidUTF8(t *testing.T) {
	got, err := extract.Extract("[{\"question\":\"Q\",\"options\":[\"A\xff\",\"B\"],\"answer\":\"B\"}]")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got[0].Options[0] != "A\uFFFD" {
		t.Fatalf("expected invalid byte replaced, got %q", got[0].Options[0])
	}
}
