package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/JonnyWalker81/librarium/backend/internal/apierror"
	"github.com/JonnyWalker81/librarium/backend/internal/constraint"
	"github.com/JonnyWalker81/librarium/backend/internal/models"
	"github.com/JonnyWalker81/librarium/backend/internal/service"
	"github.com/JonnyWalker81/librarium/backend/internal/service/mocks"
	"github.com/JonnyWalker81/librarium/backend/internal/translator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type problemBody struct {
	Type     string              `json:"type"`
	Status   int                 `json:"status"`
	Detail   string              `json:"detail"`
	Instance string              `json:"instance"`
	Errors   []map[string]string `json:"errors"`
}

func newAuthorRouter(svc service.AuthorService) *gin.Engine {
	h := NewAuthorHandler(svc, translator.New(nil))
	r := gin.New()
	r.GET(AuthorsPath, h.GetAuthors)
	r.POST(AuthorsPath, h.ReferenceAuthor)
	r.GET(AuthorsPath+"/:id", h.GetAuthor)
	return r
}

func newBookRouter(svc service.BookService) *gin.Engine {
	h := NewBookHandler(svc, translator.New(nil))
	r := gin.New()
	r.GET(BooksPath, h.GetBooks)
	r.POST(BooksPath, h.ReferenceBook)
	r.GET(BooksPath+"/:id", h.GetBook)
	return r
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) problemBody {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); ct != apierror.ContentTypeProblemJSON {
		t.Errorf("Expected Content-Type=%q, got %q", apierror.ContentTypeProblemJSON, ct)
	}
	var p problemBody
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("Failed to unmarshal problem %q: %v", w.Body.String(), err)
	}
	return p
}

func TestReferenceAuthor_Created(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthorService(ctrl)

	id := uuid.New()
	svc.EXPECT().
		ReferenceAuthor(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req *models.AuthorReferencingRequest) (*models.Author, error) {
			if req.Name != "Grazia Deledda" || !req.DateOfDeath.Set || !req.DateOfDeath.Valid {
				t.Errorf("Unexpected request %+v", req)
			}
			return &models.Author{ID: id, Name: req.Name, DateOfBirth: req.DateOfBirth, DateOfDeath: req.DateOfDeath}, nil
		})

	w := serve(newAuthorRouter(svc), http.MethodPost, AuthorsPath,
		`{"name": "Grazia Deledda", "date_of_birth": "1871-09-27", "date_of_death": "1936-08-15"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status=%d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	wantLocation := AuthorsPath + "/" + id.String()
	if got := w.Header().Get("Location"); got != wantLocation {
		t.Errorf("Expected Location=%q, got %q", wantLocation, got)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to unmarshal body: %v", err)
	}
	if body["date_of_death"] != "1936-08-15" {
		t.Errorf("Expected date_of_death=%q, got %v", "1936-08-15", body["date_of_death"])
	}
	if _, ok := body["_links"]; !ok {
		t.Error("Expected _links in response")
	}
}

func TestReferenceAuthor_MalformedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthorService(ctrl)

	w := serve(newAuthorRouter(svc), http.MethodPost, AuthorsPath, `{"name": "x", "date_of_birth": "yesterday"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status=%d, got %d", http.StatusBadRequest, w.Code)
	}
	if p := decodeProblem(t, w); p.Type != apierror.TypeBadRequest {
		t.Errorf("Expected type=%q, got %q", apierror.TypeBadRequest, p.Type)
	}
}

func TestReferenceAuthor_ConstraintViolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthorService(ctrl)

	svc.EXPECT().
		ReferenceAuthor(gomock.Any(), gomock.Any()).
		Return(nil, &constraint.ValidationError{Violations: []constraint.Violation{
			{Rule: "born-before-dead", Message: "date of death must be after date of birth", Pointer: "/date_of_death"},
		}})

	w := serve(newAuthorRouter(svc), http.MethodPost, AuthorsPath,
		`{"name": "x", "date_of_birth": "1950-01-01", "date_of_death": "1940-01-01"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status=%d, got %d", http.StatusBadRequest, w.Code)
	}
	p := decodeProblem(t, w)
	if p.Type != apierror.TypeInvalidRequest {
		t.Errorf("Expected type=%q, got %q", apierror.TypeInvalidRequest, p.Type)
	}
	if p.Instance != AuthorsPath {
		t.Errorf("Expected instance=%q, got %q", AuthorsPath, p.Instance)
	}
	if len(p.Errors) != 1 || p.Errors[0]["pointer"] != "/date_of_death" {
		t.Errorf("Unexpected errors %v", p.Errors)
	}
}

func TestGetAuthor(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		target     string
		setup      func(*mocks.MockAuthorService)
		wantStatus int
		wantType   string
	}{
		{
			name:   "found",
			target: AuthorsPath + "/" + id.String(),
			setup: func(m *mocks.MockAuthorService) {
				m.EXPECT().GetAuthor(gomock.Any(), id).Return(&models.Author{ID: id, Name: "A"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "not found",
			target: AuthorsPath + "/" + id.String(),
			setup: func(m *mocks.MockAuthorService) {
				m.EXPECT().GetAuthor(gomock.Any(), id).Return(nil, fmt.Errorf("%w: %s", service.ErrAuthorNotFound, id))
			},
			wantStatus: http.StatusNotFound,
			wantType:   apierror.TypeNotFound,
		},
		{
			name:   "repository failure",
			target: AuthorsPath + "/" + id.String(),
			setup: func(m *mocks.MockAuthorService) {
				m.EXPECT().GetAuthor(gomock.Any(), id).Return(nil, errors.New("disk on fire"))
			},
			wantStatus: http.StatusInternalServerError,
			wantType:   apierror.TypeInternal,
		},
		{
			name:       "invalid id",
			target:     AuthorsPath + "/42",
			setup:      func(*mocks.MockAuthorService) {},
			wantStatus: http.StatusBadRequest,
			wantType:   apierror.TypeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockAuthorService(ctrl)
			tt.setup(svc)

			w := serve(newAuthorRouter(svc), http.MethodGet, tt.target, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status=%d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantType == "" {
				return
			}
			p := decodeProblem(t, w)
			if p.Type != tt.wantType {
				t.Errorf("Expected type=%q, got %q", tt.wantType, p.Type)
			}
			if strings.Contains(w.Body.String(), "disk on fire") {
				t.Error("Expected internal error details to stay hidden")
			}
		})
	}
}

func TestGetAuthors_Paging(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthorService(ctrl)

	authors := []models.Author{
		{ID: uuid.New(), Name: "c", DateOfBirth: models.NewDate(1900, time.January, 1)},
		{ID: uuid.New(), Name: "d", DateOfBirth: models.NewDate(1901, time.January, 1)},
	}
	svc.EXPECT().
		ListAuthors(gomock.Any(), models.PageRequest{Page: 1, Size: 2}).
		Return(authors, 5, nil)

	w := serve(newAuthorRouter(svc), http.MethodGet, AuthorsPath+"?page=1&size=2", "")
	if w.Code != http.StatusPartialContent {
		t.Fatalf("Expected status=%d, got %d", http.StatusPartialContent, w.Code)
	}

	var page models.AuthorsPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("Failed to unmarshal page: %v", err)
	}
	wantMeta := models.PageMetadata{Size: 2, TotalElements: 5, TotalPages: 3, Number: 1}
	if page.Page != wantMeta {
		t.Errorf("Expected page=%+v, got %+v", wantMeta, page.Page)
	}

	wantLinks := map[string]string{
		"self":  AuthorsPath + "?page=1&size=2",
		"first": AuthorsPath + "?page=0&size=2",
		"prev":  AuthorsPath + "?page=0&size=2",
		"next":  AuthorsPath + "?page=2&size=2",
		"last":  AuthorsPath + "?page=2&size=2",
	}
	for rel, href := range wantLinks {
		if page.Links[rel].Href != href {
			t.Errorf("Expected %s link %q, got %q", rel, href, page.Links[rel].Href)
		}
	}
	if page.Embedded == nil || len(page.Embedded.Authors) != 2 {
		t.Fatalf("Expected 2 embedded authors, got %+v", page.Embedded)
	}
}

func TestGetAuthors_EmptyPageOmitsEmbedded(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthorService(ctrl)

	svc.EXPECT().
		ListAuthors(gomock.Any(), models.PageRequest{Page: DefaultPage, Size: DefaultSize}).
		Return([]models.Author{}, 0, nil)

	w := serve(newAuthorRouter(svc), http.MethodGet, AuthorsPath, "")
	if w.Code != http.StatusPartialContent {
		t.Fatalf("Expected status=%d, got %d", http.StatusPartialContent, w.Code)
	}
	if strings.Contains(w.Body.String(), "_embedded") {
		t.Errorf("Expected no _embedded for an empty page, got %s", w.Body.String())
	}
}

func TestGetAuthors_InvalidPaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthorService(ctrl)

	w := serve(newAuthorRouter(svc), http.MethodGet, AuthorsPath+"?page=x&size=101", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status=%d, got %d", http.StatusBadRequest, w.Code)
	}
	p := decodeProblem(t, w)
	if len(p.Errors) != 2 || p.Errors[0]["parameter"] != "page" || p.Errors[1]["parameter"] != "size" {
		t.Errorf("Unexpected errors %v", p.Errors)
	}
}

func TestGetAuthors_PageOverflow(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthorService(ctrl)

	w := serve(newAuthorRouter(svc), http.MethodGet, AuthorsPath+"?page=92233720368547759&size=100", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status=%d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
	}
	p := decodeProblem(t, w)
	if len(p.Errors) != 1 || p.Errors[0]["parameter"] != "page" {
		t.Errorf("Expected one error on parameter page, got %v", p.Errors)
	}
}

func TestReferenceBook_UnknownAuthor(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockBookService(ctrl)

	unknown := uuid.New()
	svc.EXPECT().
		ReferenceBook(gomock.Any(), gomock.Any()).
		Return(nil, &constraint.ValidationError{Violations: []constraint.Violation{
			{Rule: "existing-author", Field: "Authors[0]", Value: unknown.String(), Message: "does not reference an existing author"},
		}})

	body := `{"authors": ["` + unknown.String() + `"], "original_language": "en",
		"details": [{"language": "en", "title": "T", "description": "D"}]}`
	w := serve(newBookRouter(svc), http.MethodPost, BooksPath, body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status=%d, got %d", http.StatusBadRequest, w.Code)
	}
	p := decodeProblem(t, w)
	want := `String "` + unknown.String() + `" does not reference an existing author`
	if len(p.Errors) != 1 || p.Errors[0]["pointer"] != "/authors/0" || p.Errors[0]["detail"] != want {
		t.Errorf("Unexpected errors %v", p.Errors)
	}
}

func TestReferenceBook_Created(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockBookService(ctrl)

	author := uuid.New()
	id := uuid.New()
	svc.EXPECT().
		ReferenceBook(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req *models.BookReferencingRequest) (*models.Book, error) {
			if len(req.Authors) != 1 || req.Authors[0] != author || len(req.Details) != 1 {
				t.Errorf("Unexpected request %+v", req)
			}
			return &models.Book{ID: id, Authors: req.Authors, OriginalLanguage: req.OriginalLanguage}, nil
		})

	body := `{"authors": ["` + author.String() + `"], "original_language": "sv",
		"details": [{"language": "sv", "title": "Gösta Berlings saga", "description": "D"}]}`
	w := serve(newBookRouter(svc), http.MethodPost, BooksPath, body)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status=%d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != BooksPath+"/"+id.String() {
		t.Errorf("Unexpected Location %q", got)
	}
}

func TestGetBook_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockBookService(ctrl)

	id := uuid.New()
	svc.EXPECT().GetBook(gomock.Any(), id).Return(nil, service.ErrBookNotFound)

	w := serve(newBookRouter(svc), http.MethodGet, BooksPath+"/"+id.String(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status=%d, got %d", http.StatusNotFound, w.Code)
	}
	p := decodeProblem(t, w)
	if !strings.Contains(p.Detail, id.String()) {
		t.Errorf("Expected detail to name the id, got %q", p.Detail)
	}
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler(nil)
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/openapi.yml", h.Contract)

	w := serve(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status=%d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("Unexpected body %s", w.Body.String())
	}

	w = serve(r, http.MethodGet, "/openapi.yml", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status=%d without a contract, got %d", http.StatusNotFound, w.Code)
	}
}
