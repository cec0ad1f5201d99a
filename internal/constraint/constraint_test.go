package constraint

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/JonnyWalker81/librarium/backend/internal/apierror"
)

type detail struct {
	Language string `validate:"notblank"`
	Title    string `validate:"notblank"`
}

type request struct {
	Name      string   `validate:"notblank"`
	Rating    *int     `validate:"omitempty,min=1,max=5"`
	Details   []detail `validate:"required,min=1,dive"`
	Start     *time.Time
	End       *time.Time
	Published bool
	ISBN      *string
}

func date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

var (
	orderedDates = Ordered("ordered-dates", "/end", "end must be after start",
		func(r *request) *time.Time { return r.Start },
		func(r *request) *time.Time { return r.End })

	uniqueLanguage = UniqueBy("unique-language", "Details", "Language", "is duplicated in details",
		func(r *request) []detail { return r.Details },
		func(d detail) string { return d.Language })

	isbnWhenPublished = RequiredIf("isbn-when-published", "/isbn", "isbn is required for published books",
		func(r *request) bool { return r.Published },
		func(r *request) *string { return r.ISBN })

	englishThenFrench = ExpectedSequence("english-then-french", "Details", "Language", []string{"en", "fr"},
		func(r *request) []detail { return r.Details },
		func(d detail) string { return d.Language })
)

func validRequest() *request {
	return &request{
		Name:    "Dune",
		Details: []detail{{Language: "en", Title: "Dune"}, {Language: "fr", Title: "Dune"}},
		Start:   date("1920-10-08"),
		End:     date("1986-02-11"),
	}
}

func violations(t *testing.T, err error) []Violation {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	return ve.Violations
}

func TestValidatePasses(t *testing.T) {
	e := NewEvaluator()
	if err := Validate(e, validRequest(), orderedDates, uniqueLanguage, isbnWhenPublished, englishThenFrench); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestValidateFieldTags(t *testing.T) {
	e := NewEvaluator()
	r := validRequest()
	r.Name = "   "
	r.Rating = intPtr(9)
	r.Details[1].Title = ""

	got := violations(t, Validate(e, r))

	want := []Violation{
		{Rule: "notblank", Field: "Name", Value: "   ", Message: "must not be blank"},
		{Rule: "max", Field: "Rating", Value: 9, Message: "must be less than or equal to 5"},
		{Rule: "notblank", Field: "Details[1].Title", Value: "", Message: "must not be blank"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %#v, got %#v", want, got)
	}
}

func TestValidateCollectsTagsAndRules(t *testing.T) {
	e := NewEvaluator()
	r := validRequest()
	r.Name = ""
	r.End = date("1900-01-01")

	got := violations(t, Validate(e, r, orderedDates))
	if len(got) != 2 {
		t.Fatalf("Expected 2 violations, got %#v", got)
	}
	if got[0].Field != "Name" {
		t.Errorf("Expected tag violations first, got %#v", got[0])
	}
	if got[1].Rule != "ordered-dates" || got[1].Pointer != "/end" {
		t.Errorf("Unexpected rule violation %#v", got[1])
	}
}

func TestValidateRejectsNonStruct(t *testing.T) {
	err := Validate(NewEvaluator(), "not a struct")
	var ve *ValidationError
	if err == nil || errors.As(err, &ve) {
		t.Errorf("Expected a non validation error, got %v", err)
	}
}

func TestOrdered(t *testing.T) {
	tests := []struct {
		name       string
		start, end *time.Time
		fails      bool
	}{
		{"end after start", date("1900-01-01"), date("1950-01-01"), false},
		{"end equals start", date("1900-01-01"), date("1900-01-01"), true},
		{"end before start", date("1950-01-01"), date("1940-01-01"), true},
		{"end absent", date("1950-01-01"), nil, false},
		{"start absent", nil, date("1950-01-01"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderedDates.Check(&request{Start: tt.start, End: tt.end})
			if (len(got) > 0) != tt.fails {
				t.Errorf("Expected fails=%v, got %#v", tt.fails, got)
			}
		})
	}
}

func TestUniqueByReportsSecondOccurrence(t *testing.T) {
	r := &request{Details: []detail{{Language: "fr"}, {Language: "en"}, {Language: "fr"}, {Language: "en"}}}

	got := uniqueLanguage.Check(r)
	want := []Violation{{Rule: "unique-language", Field: "Details[2].Language", Value: "fr", Message: "is duplicated in details"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %#v, got %#v", want, got)
	}
}

func TestRequiredIf(t *testing.T) {
	tests := []struct {
		name      string
		published bool
		isbn      *string
		fails     bool
	}{
		{"flag off", false, nil, false},
		{"flag on with value", true, strPtr("978-0441013593"), false},
		{"flag on without value", true, nil, true},
		{"flag on with blank value", true, strPtr("  "), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isbnWhenPublished.Check(&request{Published: tt.published, ISBN: tt.isbn})
			if (len(got) > 0) != tt.fails {
				t.Fatalf("Expected fails=%v, got %#v", tt.fails, got)
			}
			if tt.fails && got[0].Pointer != "/isbn" {
				t.Errorf("Expected pointer hint /isbn, got %q", got[0].Pointer)
			}
		})
	}
}

func TestExpectedSequence(t *testing.T) {
	tests := []struct {
		name      string
		languages []string
		want      []Violation
	}{
		{"matching", []string{"en", "fr"}, nil},
		{"longer list", []string{"en", "fr", "de"}, nil},
		{"mismatch", []string{"en", "de"}, []Violation{{
			Rule: "english-then-french", Field: "Details[1].Language", Value: "de", Message: "must be fr",
		}}},
		{"shorter list", []string{"en"}, []Violation{{
			Rule: "english-then-french", Field: "Details", Message: "must contain 2 elements, missing fr",
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &request{}
			for _, l := range tt.languages {
				r.Details = append(r.Details, detail{Language: l})
			}
			if got := englishThenFrench.Check(r); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestToProblemErrors(t *testing.T) {
	got := ToProblemErrors([]Violation{
		{Field: "Details[1].Language", Value: "fr", Message: "is duplicated in details"},
		{Field: "Rating", Value: 9, Message: "must be less than or equal to 5"},
		{Field: "Details", Message: "must not be null"},
		{Message: "end must be after start", Pointer: "/end"},
		{Message: "something is off"},
	})

	want := []apierror.ProblemError{
		apierror.PointerError{Detail: `String "fr" is duplicated in details`, Pointer: "/details/1/language"},
		apierror.PointerError{Detail: `"9" must be less than or equal to 5`, Pointer: "/rating"},
		apierror.PointerError{Detail: "must not be null", Pointer: "/details"},
		apierror.PointerError{Detail: "end must be after start", Pointer: "/end"},
		apierror.DefaultError{Detail: "something is off"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %#v, got %#v", want, got)
	}
}

func TestFieldPointer(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Name", "/name"},
		{"DateOfDeath", "/date_of_death"},
		{"Details[1].Language", "/details/1/language"},
		{"Details[0].Tags[3]", "/details/0/tags/3"},
		{"AuthorID", "/author_id"},
		{"HTTPServer.MaxConns", "/http_server/max_conns"},
	}

	for _, tt := range tests {
		if got := FieldPointer(tt.in); got != tt.want {
			t.Errorf("FieldPointer(%q)=%q, expected %q", tt.in, got, tt.want)
		}
	}
}
